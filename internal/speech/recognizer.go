package speech

import (
	"sync"
	"time"

	"github.com/ecetin/vocabmaster/internal/logger"
)

// Recognition error kinds reported by the speech-to-text collaborator,
// mapped to the guidance shown to the user. Errors never escalate past
// the practice screen.
var errorGuidance = map[string]string{
	"no-speech":           "No speech was detected. Please try speaking again.",
	"audio-capture":       "No microphone was found. Check your audio settings.",
	"not-allowed":         "Microphone access was denied. Allow microphone permissions and retry.",
	"network":             "A network error interrupted recognition. Check your connection.",
	"service-not-allowed": "Speech recognition service is unavailable right now.",
	"timeout":             "Listening timed out. Try again and speak promptly.",
}

// Guidance maps a recognition error kind to a user-facing message.
func Guidance(kind string) string {
	if msg, ok := errorGuidance[kind]; ok {
		return msg
	}
	return "Voice recognition failed. Please try again."
}

// CaptureResult is the terminal outcome of one listening attempt.
type CaptureResult struct {
	Transcript string
	Confidence float64
	ErrorKind  string // empty on success
}

// Capture is one in-flight speech-recognition attempt. The timeout is
// enforced here, independent of the collaborator's own lifecycle: if no
// result lands in time the attempt fails with kind "timeout" instead of
// hanging. Exactly one outcome is ever delivered, so a stray late
// callback from an abandoned capture is dropped.
type Capture struct {
	mu    sync.Mutex
	done  bool
	outc  chan CaptureResult
	timer *time.Timer
}

// StartCapture begins a listening attempt that expires after timeout.
func StartCapture(timeout time.Duration) *Capture {
	c := &Capture{outc: make(chan CaptureResult, 1)}
	c.timer = time.AfterFunc(timeout, func() {
		c.resolve(CaptureResult{ErrorKind: "timeout"})
	})
	logger.Default().WithPrefix("speech").Debug("capture started, timeout=%s", timeout)
	return c
}

// Result delivers a successful transcript.
func (c *Capture) Result(transcript string, confidence float64) {
	c.resolve(CaptureResult{Transcript: transcript, Confidence: confidence})
}

// Fail delivers a recognition error of the given kind.
func (c *Capture) Fail(kind string) {
	c.resolve(CaptureResult{ErrorKind: kind})
}

// Stop cancels the attempt. A stopped capture that never produced a
// result reports "no-speech".
func (c *Capture) Stop() {
	c.resolve(CaptureResult{ErrorKind: "no-speech"})
}

// Wait blocks until the capture resolves.
func (c *Capture) Wait() CaptureResult {
	return <-c.outc
}

func (c *Capture) resolve(result CaptureResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return
	}
	c.done = true
	c.timer.Stop()
	c.outc <- result
}
