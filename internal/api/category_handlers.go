package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories := s.Store.Categories()
	respondJSON(w, http.StatusOK, map[string]any{"categories": categories, "count": len(categories)})
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	category, err := s.Store.CreateCategory(r.Context(), body.Name, body.Description)
	if err != nil && category == nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
