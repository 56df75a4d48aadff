package web

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/thsolutions/homesheet/internal/analysis"
	"github.com/thsolutions/homesheet/internal/report"
)

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	propertyID := r.PathValue("propertyID")
	inspectionID := r.PathValue("inspectionID")

	doc, err := s.deps.Reports.Build(r.Context(), inspectionID, propertyID, report.ModeFull)
	if err != nil {
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		log.Printf("build report error: %v", err)
		return
	}

	// Snapshot persistence is best-effort; the rendered page does not depend
	// on it.
	if payload, err := json.Marshal(doc); err != nil {
		s.logger.Error("failed to encode report snapshot", "inspection_id", inspectionID, "error", err)
	} else if _, err := s.deps.Snapshots.SaveReport(r.Context(), inspectionID, propertyID, payload); err != nil {
		s.logger.Error("failed to save report snapshot", "inspection_id", inspectionID, "error", err)
	}

	stored, err := s.deps.Snapshots.LatestAnalysis(r.Context(), inspectionID)
	if err != nil {
		s.logger.Error("failed to load stored analysis", "inspection_id", inspectionID, "error", err)
	}

	if err := s.renderPage(w,
		map[string]any{"Doc": doc, "Analysis": stored},
		"base.html", "pages/report.html", "partials/status_badge.html", "partials/analysis.html",
	); err != nil {
		log.Printf("render page error: %v", err)
	}
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.deps.Summarizer == nil {
		http.Error(w, "analysis is not configured", http.StatusServiceUnavailable)
		return
	}

	propertyID := r.PathValue("propertyID")
	inspectionID := r.PathValue("inspectionID")

	doc, err := s.deps.Reports.Build(r.Context(), inspectionID, propertyID, report.ModeAnalysisFeed)
	if err != nil {
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		log.Printf("build report error: %v", err)
		return
	}

	summary, err := s.deps.Summarizer.Summarize(r.Context(), report.RenderText(doc))
	if err != nil {
		http.Error(w, "analysis failed", http.StatusBadGateway)
		log.Printf("analyze error: %v", err)
		return
	}

	result, err := s.deps.Snapshots.SaveAnalysis(r.Context(), inspectionID, summary)
	if err != nil {
		http.Error(w, "failed to save analysis", http.StatusInternalServerError)
		log.Printf("save analysis error: %v", err)
		return
	}

	if err := s.renderPartial(w, "partials/analysis.html", "analysis", result); err != nil {
		log.Printf("render partial error: %v", err)
	}
}

// handleGetAnalysis returns the stored analysis as JSON, with the structured
// issue cards parsed out of the summary text.
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	inspectionID := r.PathValue("inspectionID")

	result, err := s.deps.Snapshots.LatestAnalysis(r.Context(), inspectionID)
	if err != nil {
		http.Error(w, "failed to load analysis", http.StatusInternalServerError)
		log.Printf("load analysis error: %v", err)
		return
	}
	if result == nil {
		http.Error(w, "analysis not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"analysisText": result.Summary,
		"cards":        analysis.ParseIssueCards(result.Summary),
		"createdAt":    result.CreatedAt,
	}); err != nil {
		log.Printf("encode analysis error: %v", err)
	}
}
