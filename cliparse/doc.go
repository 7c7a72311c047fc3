// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Connection string (default: ":memory:" for sqlite)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - GeminiAPIKey: Assistant credential (empty = offline demo mode)
  - GeminiModel: Model name (default: gemini-2.5-flash)
  - GeminiBaseURL: API root (default: https://generativelanguage.googleapis.com)
  - AITimeout: Per-request assistant timeout (default: 30s)
  - ScanDuration: Simulated biometric scan (default: 3s)
  - SubmitDuration: Simulated ledger write (default: 2s)
  - VoteLocation: Receipt location label
  - SessionTTL: Idle app session expiry (default: 30m)
  - LogLevel: debug, info, warn or error (default: info)

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	-gemini-key    Gemini API key
	-gemini-model  Gemini model
	-gemini-url    Gemini base URL
	-ai-timeout    Assistant timeout
	-scan          Scan duration
	-submit        Submit duration
	-location      Receipt location
	-session-ttl   Session expiry
	-log-level     Log level

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	GEMINI_API_KEY  → -gemini-key (API_KEY also accepted)
	GEMINI_MODEL    → -gemini-model
	GEMINI_BASE_URL → -gemini-url
	AI_TIMEOUT      → -ai-timeout
	SCAN_DURATION   → -scan
	SUBMIT_DURATION → -submit
	VOTE_LOCATION   → -location
	SESSION_TTL     → -session-ttl
	LOG_LEVEL       → -log-level

CLI flags take precedence over environment variables. main loads a .env
file (if present) before parsing.

# Validation

ParseFlags returns an error if:

  - PORT or a duration is not parseable
  - DATABASE_TYPE is neither sqlite nor postgres
  - DATABASE_TYPE is postgres and no DATABASE_URL is given
  - LOG_LEVEL is unknown
*/
package cliparse
