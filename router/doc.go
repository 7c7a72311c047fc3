// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Uchaguzi Block API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, gateway, store)

# Endpoints

Health:

	GET /health

Ballot and results (public):

	GET  /candidates               - Candidate list
	GET  /candidates/{id}          - One candidate
	GET  /results                  - Totals, shares, chart data
	POST /results/integrity-report - AI analysis of the chart data
	GET  /docs                     - Personas and project sections

App sessions:

	POST   /sessions           - New session at HOME
	GET    /sessions/{id}      - View and vote state
	DELETE /sessions/{id}      - Discard session
	POST   /sessions/{id}/view - Navigate

Vote flow (VERIFICATION view only):

	GET  /sessions/{id}/vote           - Flow state
	POST /sessions/{id}/vote/verify    - Start identity scan
	PUT  /sessions/{id}/vote/selection - Choose a candidate
	POST /sessions/{id}/vote/cast      - Submit
	POST /sessions/{id}/vote/abort     - Cancel scan or submission
	POST /sessions/{id}/vote/complete  - Leave the receipt

Assistant:

	GET  /sessions/{id}/chat - Transcript
	POST /sessions/{id}/chat - Ask a question

# Handler Initialization

Ballot handlers read the candidate table; session handlers share the
in-memory store:

	resultsHandler := handlers.NewResultsHandler(db, ai)
	sessionHandler := handlers.NewSessionHandler(sessions)
	votingHandler := handlers.NewVotingHandler(sessions)
*/
package router
