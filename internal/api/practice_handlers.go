package api

import (
	"net/http"
	"time"

	"github.com/ecetin/vocabmaster/internal/errors"
	"github.com/ecetin/vocabmaster/internal/models"
	"github.com/ecetin/vocabmaster/internal/practice"
	"github.com/ecetin/vocabmaster/internal/speech"
)

func (s *Server) handlePracticeState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.Store.DailyPractice())
}

// handlePronunciation scores one recognition attempt against a target
// word. The client runs the microphone and posts either a transcript or
// the recognition error kind; the attempt still goes through a Capture
// so timeout and one-shot resolution rules hold.
func (s *Server) handlePronunciation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		WordID     string  `json:"word_id"`
		Target     string  `json:"target"`
		Transcript string  `json:"transcript"`
		Confidence float64 `json:"confidence"`
		Error      string  `json:"error"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	target := body.Target
	if body.WordID != "" {
		word, err := s.Store.WordByID(body.WordID)
		if err != nil {
			handleError(w, r, err)
			return
		}
		target = word.English
	}
	if target == "" {
		handleError(w, r, errors.NewValidationError("target", "a target word is required"))
		return
	}

	capture := speech.StartCapture(time.Duration(s.SpeechTimeout) * time.Second)
	if body.Error != "" {
		capture.Fail(body.Error)
	} else {
		capture.Result(body.Transcript, body.Confidence)
	}
	outcome := capture.Wait()

	if outcome.ErrorKind != "" {
		respondJSON(w, http.StatusOK, map[string]any{
			"recognized": false,
			"error":      outcome.ErrorKind,
			"guidance":   speech.Guidance(outcome.ErrorKind),
		})
		return
	}

	accuracy := practice.PronunciationAccuracy(target, outcome.Transcript)
	result := models.PronunciationResult{
		Target:     target,
		Spoken:     outcome.Transcript,
		Accuracy:   accuracy,
		Label:      practice.AccuracyLabel(accuracy),
		Confidence: outcome.Confidence,
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"recognized": true,
		"passed":     accuracy >= practice.PassThreshold,
		"result":     result,
	})
}
