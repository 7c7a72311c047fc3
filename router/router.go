// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/uchaguzi-block/handlers"
	"github.com/danielhkuo/uchaguzi-block/middleware"
	"github.com/danielhkuo/uchaguzi-block/shell"
)

func NewRouter(db *sql.DB, ai handlers.IntegrityReporter, sessions *shell.Store) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	resultsHandler := handlers.NewResultsHandler(db, ai)
	sessionHandler := handlers.NewSessionHandler(sessions)
	votingHandler := handlers.NewVotingHandler(sessions)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Ballot and results (public, read-only)
	mux.HandleFunc("GET /candidates", middleware.WithLogging(resultsHandler.GetCandidates))
	mux.HandleFunc("GET /candidates/{id}", middleware.WithLogging(resultsHandler.GetCandidate))
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("POST /results/integrity-report", middleware.WithLogging(resultsHandler.IntegrityReport))
	mux.HandleFunc("GET /docs", middleware.WithLogging(handlers.GetDocs))

	// App sessions
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("GET /sessions/{id}", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("DELETE /sessions/{id}", middleware.WithLogging(sessionHandler.DeleteSession))
	mux.HandleFunc("POST /sessions/{id}/view", middleware.WithLogging(sessionHandler.Navigate))

	// Vote flow (VERIFICATION view only)
	mux.HandleFunc("GET /sessions/{id}/vote", middleware.WithLogging(votingHandler.GetVote))
	mux.HandleFunc("POST /sessions/{id}/vote/verify", middleware.WithLogging(votingHandler.StartVerification))
	mux.HandleFunc("PUT /sessions/{id}/vote/selection", middleware.WithLogging(votingHandler.SelectCandidate))
	mux.HandleFunc("POST /sessions/{id}/vote/cast", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("POST /sessions/{id}/vote/abort", middleware.WithLogging(votingHandler.AbortVote))
	mux.HandleFunc("POST /sessions/{id}/vote/complete", middleware.WithLogging(votingHandler.CompleteVote))

	// Assistant chat
	mux.HandleFunc("GET /sessions/{id}/chat", middleware.WithLogging(sessionHandler.GetChat))
	mux.HandleFunc("POST /sessions/{id}/chat", middleware.WithLogging(sessionHandler.PostChat))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("uchaguzi-block API v1"))
	})

	return mux
}
