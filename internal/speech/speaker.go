package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ecetin/vocabmaster/internal/logger"
	"github.com/ecetin/vocabmaster/internal/worker"
)

const ttsRequestTimeout = 10 * time.Second

// TTS synthesizes speech for quiz prompts and correct-answer playback.
// Speak is fire-and-forget: audio is fetched and cached in the background
// and nothing ever waits on it. Generated files are served by the API
// layer from AudioDir.
type TTS struct {
	audioDir string
	lang     string
	rate     float64
	client   *http.Client
	pool     *worker.Pool
	log      *logger.Logger
}

func NewTTS(audioDir, lang string, rate float64) *TTS {
	_ = os.MkdirAll(audioDir, 0o755)
	return &TTS{
		audioDir: audioDir,
		lang:     lang,
		rate:     rate,
		client:   &http.Client{Timeout: ttsRequestTimeout},
		log:      logger.Default().WithPrefix("tts"),
	}
}

func (t *TTS) AudioDir() string { return t.audioDir }

// WithPool routes synthesis through a worker pool so concurrent fetches
// stay bounded. Without a pool each Speak runs its own goroutine.
func (t *TTS) WithPool(pool *worker.Pool) *TTS {
	t.pool = pool
	return t
}

// Speak queues background synthesis of the given text. Failures are
// logged and swallowed; the quiz flow never waits on audio.
func (t *TTS) Speak(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if t.pool != nil {
		t.pool.TrySubmit(speakJob{tts: t, text: text})
		return
	}
	go func() {
		if _, err := t.EnsureAudio(text); err != nil {
			t.log.Warn("speech synthesis failed for %q: %v", text, err)
		}
	}()
}

type speakJob struct {
	tts  *TTS
	text string
}

func (j speakJob) Name() string { return "tts-fetch" }

func (j speakJob) Run(context.Context) error {
	_, err := j.tts.EnsureAudio(j.text)
	return err
}

// EnsureAudio returns the cached audio filename for the text, fetching it
// if needed.
func (t *TTS) EnsureAudio(text string) (string, error) {
	filename := t.filename(text)
	path := filepath.Join(t.audioDir, filename)
	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := t.fetch(text, path); err != nil {
		return "", err
	}
	t.log.Debug("audio cached: %s", filename)
	return filename, nil
}

func (t *TTS) filename(text string) string {
	sanitized := strings.ToLower(strings.TrimSpace(text))
	sanitized = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, sanitized)
	if sanitized == "" {
		sanitized = "word"
	}
	return fmt.Sprintf("word_%s.mp3", sanitized)
}

// fetch uses the Google Translate TTS endpoint, which needs no API key.
func (t *TTS) fetch(text, path string) error {
	endpoint := fmt.Sprintf(
		"https://translate.google.com/translate_tts?ie=UTF-8&q=%s&tl=%s&client=tw-ob&ttsspeed=%g",
		url.QueryEscape(text), url.QueryEscape(t.lang), t.rate,
	)

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tts request: status %d", resp.StatusCode)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
