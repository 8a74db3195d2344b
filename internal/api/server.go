package api

import (
	"github.com/ecetin/vocabmaster/internal/quiz"
	"github.com/ecetin/vocabmaster/internal/report"
	"github.com/ecetin/vocabmaster/internal/speech"
	"github.com/ecetin/vocabmaster/internal/store"
)

type Server struct {
	Store         *store.WordStore
	Quizzes       *quiz.Manager
	Reports       *report.History
	TTS           *speech.TTS
	QuizMinWords  int // minimum selection for the general (mixed) quiz mode
	SpeechTimeout int // seconds
}
