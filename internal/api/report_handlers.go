package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ecetin/vocabmaster/internal/logger"
	"github.com/ecetin/vocabmaster/internal/report"
)

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, report.Analyze(s.Store.Snapshot()))
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	analysis := report.Analyze(s.Store.Snapshot())

	day := analysis.GeneratedAt.Format("2006-01-02")
	title := "Vocabulary Report " + day
	filename := fmt.Sprintf("vocabulary-report-%s.json", day)

	id, err := s.Reports.Record(r.Context(), title, filename)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("report generated: id=%d file=%s", id, filename)
	respondJSON(w, http.StatusCreated, map[string]any{
		"id":       id,
		"title":    title,
		"filename": filename,
		"report":   analysis,
	})
}

func (s *Server) handleReportHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err == nil && n > 0 {
			limit = n
		}
	}

	records, err := s.Reports.List(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"reports": records, "count": len(records)})
}
