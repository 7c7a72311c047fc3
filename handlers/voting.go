// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/uchaguzi-block/flow"
	"github.com/danielhkuo/uchaguzi-block/middleware"
	"github.com/danielhkuo/uchaguzi-block/models"
	"github.com/danielhkuo/uchaguzi-block/shell"
)

type VotingHandler struct {
	sessions *shell.Store
}

func NewVotingHandler(sessions *shell.Store) *VotingHandler {
	return &VotingHandler{sessions: sessions}
}

// errorStatus maps flow and shell errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, shell.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, flow.ErrUnknownCandidate),
		errors.Is(err, shell.ErrUnknownView),
		errors.Is(err, shell.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, shell.ErrNoActiveVote),
		errors.Is(err, shell.ErrChatClosed),
		errors.Is(err, flow.ErrInvalidTransition),
		errors.Is(err, flow.ErrAlreadyScanning),
		errors.Is(err, flow.ErrNoSelection),
		errors.Is(err, flow.ErrClosed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// activeFlow loads the session and its vote flow. Outside the VERIFICATION
// view there is no flow and the request is a 409.
func (h *VotingHandler) activeFlow(w http.ResponseWriter, r *http.Request) (*flow.Flow, bool) {
	s, ok := loadSession(h.sessions, w, r)
	if !ok {
		return nil, false
	}

	f, err := s.Vote()
	if err != nil {
		middleware.ErrorResponse(w, errorStatus(err), err.Error())
		return nil, false
	}
	return f, true
}

// GetVote handles GET /sessions/{id}/vote
func (h *VotingHandler) GetVote(w http.ResponseWriter, r *http.Request) {
	f, ok := h.activeFlow(w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, f.State())
}

// StartVerification handles POST /sessions/{id}/vote/verify
// Returns 202 while the simulated scan runs
func (h *VotingHandler) StartVerification(w http.ResponseWriter, r *http.Request) {
	f, ok := h.activeFlow(w, r)
	if !ok {
		return
	}

	if err := f.StartVerification(); err != nil {
		middleware.ErrorResponse(w, errorStatus(err), err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusAccepted, f.State())
}

// SelectCandidate handles PUT /sessions/{id}/vote/selection
// Replaces any earlier selection
func (h *VotingHandler) SelectCandidate(w http.ResponseWriter, r *http.Request) {
	f, ok := h.activeFlow(w, r)
	if !ok {
		return
	}

	var req models.SelectCandidateRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, badRequestMessage(err))
		return
	}

	if err := f.Select(req.CandidateID); err != nil {
		middleware.ErrorResponse(w, errorStatus(err), err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, f.State())
}

// CastVote handles POST /sessions/{id}/vote/cast
// Returns 202 while the simulated submission runs
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	f, ok := h.activeFlow(w, r)
	if !ok {
		return
	}

	if err := f.Cast(); err != nil {
		middleware.ErrorResponse(w, errorStatus(err), err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusAccepted, f.State())
}

// AbortVote handles POST /sessions/{id}/vote/abort
// 409 if no scan or submission is pending
func (h *VotingHandler) AbortVote(w http.ResponseWriter, r *http.Request) {
	f, ok := h.activeFlow(w, r)
	if !ok {
		return
	}

	if !f.Abort() {
		middleware.ErrorResponse(w, http.StatusConflict, "nothing to abort")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, f.State())
}

// CompleteVote handles POST /sessions/{id}/vote/complete
// Drops the receipt and returns the session to HOME
func (h *VotingHandler) CompleteVote(w http.ResponseWriter, r *http.Request) {
	s, ok := loadSession(h.sessions, w, r)
	if !ok {
		return
	}

	if err := s.CompleteVote(); err != nil {
		middleware.ErrorResponse(w, errorStatus(err), err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, s.Snapshot())
}
