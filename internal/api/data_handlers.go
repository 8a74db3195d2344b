package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ecetin/vocabmaster/internal/backup"
	"github.com/ecetin/vocabmaster/internal/errors"
	"github.com/ecetin/vocabmaster/internal/logger"
	"github.com/ecetin/vocabmaster/internal/models"
)

// Import payloads are whole-vocabulary backups; 8 MiB is far beyond any
// realistic export.
const maxImportBytes = 8 << 20

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.Store.Preferences())
}

func (s *Server) handleSetPreferences(w http.ResponseWriter, r *http.Request) {
	var prefs models.Preferences
	if err := decodeJSON(r, &prefs); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Store.SetPreferences(r.Context(), prefs); err != nil {
		handleError(w, r, err)
		return
	}

	// The daily goal lives in both records; keep the practice copy in step.
	if prefs.DailyGoal > 0 {
		state := s.Store.DailyPractice()
		if state.Goal != prefs.DailyGoal {
			state.Goal = prefs.DailyGoal
			if err := s.Store.SetDailyPractice(r.Context(), state); err != nil {
				logger.FromContext(r.Context()).Warn("daily goal not persisted: %v", err)
			}
		}
	}
	respondJSON(w, http.StatusOK, prefs)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := backup.Export(s.Store.Snapshot())
	if err != nil {
		handleError(w, r, err)
		return
	}

	filename := fmt.Sprintf("vocabmaster-backup-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("could not read import payload"))
		return
	}

	added, err := backup.Import(r.Context(), s.Store, raw)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("import finished: added=%d", added)
	respondJSON(w, http.StatusOK, map[string]any{"imported": added})
}
