// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - NavigateRequest: view
  - SelectCandidateRequest: candidate_id
  - ChatRequest: text

Request types carry validate tags checked by middleware.DecodeAndValidate.

# Response Types

Types for JSON responses:

  - CreateSessionResponse: session_id, view
  - SessionResponse: session_id, view, vote, created_at
  - ChatResponse: reply, messages
  - IntegrityReportResponse: report, generated_at
  - DocsResponse: personas, sections
  - ErrorResponse: error, message

# Domain Types

Core entities:

  - Candidate: Ballot entry with a fixed sample vote count
  - VoteRecord: Receipt of a simulated cast (tx_hash, timestamp, location)
  - ChatMessage: One line of an assistant transcript
  - FlowState: Snapshot of the vote-cast state machine

# Views and Steps

The app session moves between views:

	HOME, VERIFICATION, RESULTS, EDUCATION, CAPSTONE_DOCS

While in VERIFICATION the vote flow moves forward only:

	VERIFY → BALLOT → SUBMITTING → RECEIPT

# Results Types

  - ResultsSummary: total, leader, per-candidate shares and chart points
  - CandidateResult: votes, humanized votes, share percent (decimal)
  - ChartPoint: name, votes, fill (also the integrity snapshot payload)

# Static Content

Personas and CapstoneSections hold the project deliverables served at
GET /docs.
*/
package models
