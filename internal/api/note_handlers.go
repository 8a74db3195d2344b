package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes := s.Store.Notes()
	respondJSON(w, http.StatusOK, map[string]any{"notes": notes, "count": len(notes)})
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	note, err := s.Store.AddNote(r.Context(), body.Title, body.Content)
	if err != nil && note == nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.DeleteNote(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
