package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ecetin/vocabmaster/internal/errors"
	"github.com/ecetin/vocabmaster/internal/logger"
	"github.com/ecetin/vocabmaster/internal/models"
	"github.com/ecetin/vocabmaster/internal/practice"
	"github.com/ecetin/vocabmaster/internal/quiz"
)

func (s *Server) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Phase    string `json:"phase"`
		Category string `json:"category"`
		Filter   string `json:"filter"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	phase := quiz.Phase(body.Phase)
	if phase == "" {
		phase = quiz.PhaseMixed
	}

	selected := s.Store.FilterWords(body.Category, body.Filter, "")

	if phase == quiz.PhaseMixed && len(selected) < s.QuizMinWords {
		handleError(w, r, errors.NewValidationError("words",
			fmt.Sprintf("at least %d words are required for a mixed quiz", s.QuizMinWords)))
		return
	}

	if _, err := s.Quizzes.Start(selected, s.Store.Words(), phase); err != nil {
		handleError(w, r, err)
		return
	}

	var question *quiz.Question
	var total int
	err := s.Quizzes.Do(func(sess *quiz.Session) error {
		total = sess.TotalQuestions()
		question, _ = sess.CurrentQuestion()
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("quiz started: phase=%s words=%d questions=%d", phase, len(selected), total)
	respondJSON(w, http.StatusCreated, map[string]any{
		"phase":           phase,
		"total_questions": total,
		"question":        question,
	})
}

func (s *Server) handleCurrentQuestion(w http.ResponseWriter, r *http.Request) {
	var question *quiz.Question
	var state quiz.State
	err := s.Quizzes.Do(func(sess *quiz.Session) error {
		question, _ = sess.CurrentQuestion()
		state = sess.State()
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"state":    state.String(),
		"question": question,
	})
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Answer string `json:"answer"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	var result *quiz.Result
	var completed bool
	var summary quiz.Summary
	err := s.Quizzes.Do(func(sess *quiz.Session) error {
		res, err := sess.SubmitAnswer(body.Answer)
		if err != nil {
			return err
		}
		result = res
		if sess.State() == quiz.Completed {
			completed = true
			summary = sess.Summary()
		}
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	response := map[string]any{
		"result":    result,
		"completed": completed,
	}
	if completed {
		response["summary"] = summary
		response["practice"] = s.advancePractice(r)
	}
	respondJSON(w, http.StatusOK, response)
}

// advancePractice rolls the daily-practice counters forward after a
// completed session. The persistence failure mode matches the store's:
// the in-memory state advances even when the write fails.
func (s *Server) advancePractice(r *http.Request) models.DailyPractice {
	state := practice.Advance(s.Store.DailyPractice(), time.Now())
	if err := s.Store.SetDailyPractice(r.Context(), state); err != nil {
		logger.FromContext(r.Context()).Warn("practice state not persisted: %v", err)
	}
	return state
}

func (s *Server) handleQuizSummary(w http.ResponseWriter, r *http.Request) {
	var summary quiz.Summary
	var state quiz.State
	err := s.Quizzes.Do(func(sess *quiz.Session) error {
		summary = sess.Summary()
		state = sess.State()
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"state":   state.String(),
		"summary": summary,
	})
}

func (s *Server) handleExitQuiz(w http.ResponseWriter, r *http.Request) {
	s.Quizzes.Exit()
	respondJSON(w, http.StatusOK, map[string]any{"exited": true})
}
