// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Uchaguzi Block API server.

Uchaguzi Block is a demonstration voting kiosk backend: simulated biometric
verification, a single-choice ballot, a mock blockchain receipt, a static
results dashboard and an AI chat assistant. Nothing is actually verified,
signed or written to a ledger.

# Starting the Server

With no configuration the server runs on an in-memory SQLite ballot and the
assistant in demo mode:

	go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

A .env file in the working directory is loaded first if present.

# Configuration

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: :memory: for sqlite)
  - GEMINI_API_KEY or API_KEY (-gemini-key): Enables the live assistant
  - GEMINI_MODEL, GEMINI_BASE_URL, AI_TIMEOUT: Assistant transport
  - SCAN_DURATION, SUBMIT_DURATION: Simulated delays (3s, 2s)
  - VOTE_LOCATION: Location printed on receipts
  - SESSION_TTL: Idle app session expiry (default: 30m)
  - LOG_LEVEL: debug, info, warn or error

# Architecture

  - handlers: HTTP request handlers (results, sessions, voting)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, request validation
  - models: Request/response types and static content
  - shell: App sessions, navigation and the session store
  - flow: Vote-cast state machine
  - results: Vote totals and shares
  - assistant: Gemini gateway and chat transcript
  - ledger: Mock transaction hashes
  - db: Candidate table schema, seeding and queries
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
