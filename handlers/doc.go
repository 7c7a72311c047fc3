// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Uchaguzi Block API.

# Handler Types

  - ResultsHandler: ballot listing and lookup, results dashboard, AI integrity report
  - SessionHandler: app session lifecycle, navigation and chat
  - VotingHandler: the vote-cast flow of a session

ResultsHandler reads the seeded candidate table; the others work on the
in-memory session store:

	resultsHandler := handlers.NewResultsHandler(db, gateway)
	sessionHandler := handlers.NewSessionHandler(store)

# App Sessions

An app session stands in for one browser tab. It starts at HOME:

	POST   /sessions           → CreateSession
	GET    /sessions/{id}      → GetSession (view + vote state)
	POST   /sessions/{id}/view → Navigate
	DELETE /sessions/{id}      → DeleteSession

Unknown or expired session ids are 404.

# Voting Flow

Only available while the session is in the VERIFICATION view, otherwise 409:

	POST /sessions/{id}/vote/verify    → StartVerification (202, scan runs)
	PUT  /sessions/{id}/vote/selection → SelectCandidate
	POST /sessions/{id}/vote/cast      → CastVote (202, submission runs)
	POST /sessions/{id}/vote/abort     → AbortVote
	POST /sessions/{id}/vote/complete  → CompleteVote (receipt → HOME)

Out-of-order actions are 409. An unknown candidate id is 400.

# Assistant

Chat is only open while the session is in the EDUCATION view, otherwise 409.
Each visit to EDUCATION starts a new transcript:

	GET  /sessions/{id}/chat → GetChat (transcript)
	POST /sessions/{id}/chat → PostChat (reply + transcript)

Chat and integrity reports never fail on the AI side. When the AI service is
not configured or fails, the reply is the fallback text from package
assistant.
*/
package handlers
