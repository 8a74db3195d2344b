package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/words", s.handleListWords)
		r.Post("/words", s.handleAddWord)
		r.Get("/words/{id}", s.handleGetWord)
		r.Put("/words/{id}", s.handleEditWord)
		r.Delete("/words/{id}", s.handleDeleteWord)
		r.Post("/words/{id}/learned", s.handleToggleLearned)
		r.Post("/words/{id}/favorite", s.handleToggleFavorite)
		r.Post("/words/{id}/difficult", s.handleToggleDifficult)
		r.Post("/words/{id}/marks", s.handleSetMarks)

		r.Get("/categories", s.handleListCategories)
		r.Post("/categories", s.handleCreateCategory)
		r.Delete("/categories/{id}", s.handleDeleteCategory)

		r.Get("/notes", s.handleListNotes)
		r.Post("/notes", s.handleAddNote)
		r.Delete("/notes/{id}", s.handleDeleteNote)

		r.Post("/quiz/start", s.handleStartQuiz)
		r.Get("/quiz/question", s.handleCurrentQuestion)
		r.Post("/quiz/answer", s.handleSubmitAnswer)
		r.Get("/quiz/summary", s.handleQuizSummary)
		r.Post("/quiz/exit", s.handleExitQuiz)

		r.Get("/practice", s.handlePracticeState)
		r.Post("/practice/pronunciation", s.handlePronunciation)

		r.Get("/reports/analysis", s.handleAnalysis)
		r.Post("/reports", s.handleGenerateReport)
		r.Get("/reports/history", s.handleReportHistory)

		r.Get("/preferences", s.handleGetPreferences)
		r.Put("/preferences", s.handleSetPreferences)

		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
	})

	r.Handle("/audio/*", http.StripPrefix("/audio/", http.FileServer(http.Dir(s.TTS.AudioDir()))))
	return r
}
