// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/uchaguzi-block/assistant"
	"github.com/danielhkuo/uchaguzi-block/models"
	"github.com/danielhkuo/uchaguzi-block/testutil"
)

type recordingReporter struct {
	snapshot any
	report   string
}

func (r *recordingReporter) IntegrityReport(ctx context.Context, snapshot any) string {
	r.snapshot = snapshot
	return r.report
}

func TestGetCandidates(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewResultsHandler(conn, &recordingReporter{})

	w := httptest.NewRecorder()
	handler.GetCandidates(w, testutil.MakeRequest("GET", "/candidates", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var candidates []models.Candidate
	testutil.AssertJSON(t, w, &candidates)

	if len(candidates) != 3 {
		t.Fatalf("Expected 3 candidates, got %d", len(candidates))
	}
	if candidates[0].ID != "c1" || candidates[0].Name != "Amani Kenya" {
		t.Errorf("Unexpected first candidate %+v", candidates[0])
	}
	if candidates[2].Color != "#3b82f6" {
		t.Errorf("Expected c3 color #3b82f6, got %s", candidates[2].Color)
	}
}

func TestGetCandidate(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewResultsHandler(conn, &recordingReporter{})

	tests := []struct {
		name           string
		id             string
		expectedStatus int
		expectedName   string
	}{
		{"existing candidate", "c2", http.StatusOK, "Baraka Msingi"},
		{"unknown candidate", "c9", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/candidates/"+tt.id, nil, nil)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.GetCandidate(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var c models.Candidate
			testutil.AssertJSON(t, w, &c)
			if c.Name != tt.expectedName || c.Votes != 4100567 {
				t.Errorf("Unexpected candidate %+v", c)
			}
		})
	}
}

func TestGetResults(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewResultsHandler(conn, &recordingReporter{})

	w := httptest.NewRecorder()
	handler.GetResults(w, testutil.MakeRequest("GET", "/results", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var summary models.ResultsSummary
	testutil.AssertJSON(t, w, &summary)

	if summary.TotalVotes != 9821580 {
		t.Errorf("Expected total 9821580, got %d", summary.TotalVotes)
	}
	if summary.TotalVotesDisplay != "9,821,580" {
		t.Errorf("Expected display 9,821,580, got %s", summary.TotalVotesDisplay)
	}
	if summary.LeaderID != "c1" {
		t.Errorf("Expected leader c1, got %s", summary.LeaderID)
	}
	if len(summary.Chart) != 3 || summary.Chart[1].Fill != "#22c55e" {
		t.Errorf("Unexpected chart %+v", summary.Chart)
	}

	if summary.TurnoutPercent.String() != "78.4" || summary.DiasporaVotesDisplay != "142,000" || summary.RejectedPercent.String() != "0.02" {
		t.Errorf("Unexpected stat cards: turnout %s, diaspora %s, rejected %s",
			summary.TurnoutPercent, summary.DiasporaVotesDisplay, summary.RejectedPercent)
	}

	expectedShares := map[string]string{"c1": "46.02", "c2": "41.75", "c3": "12.23"}
	for _, c := range summary.Candidates {
		if got := c.Share.StringFixed(2); got != expectedShares[c.CandidateID] {
			t.Errorf("%s: expected share %s, got %s", c.CandidateID, expectedShares[c.CandidateID], got)
		}
	}
}

func TestIntegrityReport(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	reporter := &recordingReporter{report: "No anomalies in the Embakasi East tally."}
	handler := NewResultsHandler(conn, reporter)
	fixed := time.Date(2027, 8, 9, 18, 0, 0, 0, time.UTC)
	handler.now = func() time.Time { return fixed }

	w := httptest.NewRecorder()
	handler.IntegrityReport(w, testutil.MakeRequest("POST", "/results/integrity-report", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.IntegrityReportResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Report != reporter.report {
		t.Errorf("Expected report to be relayed verbatim, got %q", resp.Report)
	}
	if !resp.GeneratedAt.Equal(fixed) {
		t.Errorf("Expected generated_at %v, got %v", fixed, resp.GeneratedAt)
	}

	chart, ok := reporter.snapshot.([]models.ChartPoint)
	if !ok {
		t.Fatalf("Expected chart snapshot, got %T", reporter.snapshot)
	}
	if len(chart) != 3 || chart[0].Name != "Amani Kenya" || chart[0].Votes != 4520123 {
		t.Errorf("Unexpected snapshot %+v", chart)
	}
}

func TestIntegrityReport_OfflineGateway(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewResultsHandler(conn, assistant.NewGateway(assistant.Config{}))

	w := httptest.NewRecorder()
	handler.IntegrityReport(w, testutil.MakeRequest("POST", "/results/integrity-report", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.IntegrityReportResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Report != assistant.OfflineIntegrityReport {
		t.Errorf("Expected offline report, got %q", resp.Report)
	}
}

func TestResults_DatabaseClosed(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewResultsHandler(conn, &recordingReporter{})
	conn.Close()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"candidates", handler.GetCandidates},
		{"candidate", handler.GetCandidate},
		{"results", handler.GetResults},
		{"integrity report", handler.IntegrityReport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/", nil, nil)
			req.SetPathValue("id", "c1")
			w := httptest.NewRecorder()
			tt.handler(w, req)
			testutil.AssertStatus(t, w, http.StatusInternalServerError)
		})
	}
}

func TestGetDocs(t *testing.T) {
	w := httptest.NewRecorder()
	GetDocs(w, testutil.MakeRequest("GET", "/docs", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.DocsResponse
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Personas) != 2 || resp.Personas[0].Name != "Wanjiku" {
		t.Errorf("Unexpected personas %+v", resp.Personas)
	}
	if len(resp.Sections) != 2 || resp.Sections[1].Type != "heuristic" {
		t.Errorf("Unexpected sections %+v", resp.Sections)
	}
}
