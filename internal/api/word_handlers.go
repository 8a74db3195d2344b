package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ecetin/vocabmaster/internal/logger"
	"github.com/ecetin/vocabmaster/internal/models"
)

func (s *Server) handleListWords(w http.ResponseWriter, r *http.Request) {
	words := s.Store.FilterWords(
		r.URL.Query().Get("category"),
		r.URL.Query().Get("filter"),
		strings.TrimSpace(r.URL.Query().Get("search")),
	)

	respondJSON(w, http.StatusOK, map[string]any{"words": words, "count": len(words)})
}

func (s *Server) handleGetWord(w http.ResponseWriter, r *http.Request) {
	word, err := s.Store.WordByID(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, word)
}

func (s *Server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	var fields models.WordFields
	if err := decodeJSON(r, &fields); err != nil {
		handleError(w, r, err)
		return
	}

	word, err := s.Store.AddWord(r.Context(), fields)
	if err != nil {
		// The word may have been added even when persistence failed.
		if word == nil {
			handleError(w, r, err)
			return
		}
		logger.FromContext(r.Context()).Warn("word added but not persisted: %v", err)
	}
	respondJSON(w, http.StatusCreated, word)
}

func (s *Server) handleEditWord(w http.ResponseWriter, r *http.Request) {
	var fields models.WordFields
	if err := decodeJSON(r, &fields); err != nil {
		handleError(w, r, err)
		return
	}

	word, err := s.Store.EditWord(r.Context(), chi.URLParam(r, "id"), fields)
	if err != nil && word == nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, word)
}

func (s *Server) handleDeleteWord(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.DeleteWord(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (s *Server) handleToggleLearned(w http.ResponseWriter, r *http.Request) {
	toggleMembership(w, r, s.Store.ToggleLearned)
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	toggleMembership(w, r, s.Store.ToggleFavorite)
}

func (s *Server) handleToggleDifficult(w http.ResponseWriter, r *http.Request) {
	toggleMembership(w, r, s.Store.ToggleDifficult)
}

func toggleMembership(w http.ResponseWriter, r *http.Request, toggle func(context.Context, string) (bool, error)) {
	member, err := toggle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"member": member})
}

func (s *Server) handleSetMarks(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Learned   *bool `json:"learned"`
		Favorite  *bool `json:"favorite"`
		Difficult *bool `json:"difficult"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Store.SetMembership(r.Context(), chi.URLParam(r, "id"), body.Learned, body.Favorite, body.Difficult); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"updated": true})
}
