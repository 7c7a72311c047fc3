// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/uchaguzi-block/db"
	"github.com/danielhkuo/uchaguzi-block/middleware"
	"github.com/danielhkuo/uchaguzi-block/models"
	"github.com/danielhkuo/uchaguzi-block/results"
)

// IntegrityReporter produces the AI integrity analysis. *assistant.Gateway
// satisfies it.
type IntegrityReporter interface {
	IntegrityReport(ctx context.Context, snapshot any) string
}

type ResultsHandler struct {
	candidates *db.CandidateStore
	reporter   IntegrityReporter
	now        func() time.Time
}

func NewResultsHandler(conn *sql.DB, reporter IntegrityReporter) *ResultsHandler {
	return &ResultsHandler{
		candidates: db.NewCandidateStore(conn),
		reporter:   reporter,
		now:        time.Now,
	}
}

// GetCandidates handles GET /candidates
func (h *ResultsHandler) GetCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.candidates.List(r.Context())
	if err != nil {
		slog.Error("failed to list candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// GetCandidate handles GET /candidates/{id}
func (h *ResultsHandler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate id is required")
		return
	}

	candidate, err := h.candidates.Get(r.Context(), id)
	if errors.Is(err, db.ErrCandidateNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}
	if err != nil {
		slog.Error("failed to get candidate", "candidate_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidate)
}

// GetResults handles GET /results
// Counts are static sample data; the summary is recomputed on every call
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.candidates.List(r.Context())
	if err != nil {
		slog.Error("failed to list candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results.Aggregate(candidates))
}

// IntegrityReport handles POST /results/integrity-report
// Sends the chart snapshot to the assistant. Always 200: assistant failures
// come back as fallback text.
func (h *ResultsHandler) IntegrityReport(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.candidates.List(r.Context())
	if err != nil {
		slog.Error("failed to list candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	report := h.reporter.IntegrityReport(r.Context(), results.Chart(candidates))

	middleware.JSONResponse(w, http.StatusOK, models.IntegrityReportResponse{
		Report:      report,
		GeneratedAt: h.now(),
	})
}

// GetDocs handles GET /docs
func GetDocs(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.DocsResponse{
		Personas: models.Personas,
		Sections: models.CapstoneSections,
	})
}
