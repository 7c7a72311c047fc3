// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/uchaguzi-block/middleware"
	"github.com/danielhkuo/uchaguzi-block/models"
	"github.com/danielhkuo/uchaguzi-block/shell"
)

type SessionHandler struct {
	sessions *shell.Store
}

func NewSessionHandler(sessions *shell.Store) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// loadSession resolves the {id} path value, writing a 404 if it is unknown
func loadSession(sessions *shell.Store, w http.ResponseWriter, r *http.Request) (*shell.Shell, bool) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session id is required")
		return nil, false
	}

	s, err := sessions.Get(id)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return s, true
}

// badRequestMessage hides decoder internals for malformed JSON
func badRequestMessage(err error) string {
	if errors.Is(err, middleware.ErrValidation) {
		return err.Error()
	}
	return "Invalid JSON"
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID: s.ID,
		View:      s.View(),
	})
}

// GetSession handles GET /sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := loadSession(h.sessions, w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, s.Snapshot())
}

// DeleteSession handles DELETE /sessions/{id}
// Any pending scan or submission is cancelled
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(r.PathValue("id")); err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Navigate handles POST /sessions/{id}/view
func (h *SessionHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	s, ok := loadSession(h.sessions, w, r)
	if !ok {
		return
	}

	var req models.NavigateRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, badRequestMessage(err))
		return
	}

	if err := s.Navigate(r.Context(), req.View); err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			slog.Error("failed to navigate", "session_id", s.ID, "view", req.View, "error", err)
			middleware.ErrorResponse(w, status, "Database error")
			return
		}
		middleware.ErrorResponse(w, status, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, s.Snapshot())
}

// GetChat handles GET /sessions/{id}/chat
// 409 outside the EDUCATION view
func (h *SessionHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	s, ok := loadSession(h.sessions, w, r)
	if !ok {
		return
	}

	messages, err := s.Transcript()
	if err != nil {
		middleware.ErrorResponse(w, errorStatus(err), err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ChatResponse{
		Messages: messages,
	})
}

// PostChat handles POST /sessions/{id}/chat
// 409 outside the EDUCATION view. The assistant itself never fails; offline
// or broken upstreams produce fallback text.
func (h *SessionHandler) PostChat(w http.ResponseWriter, r *http.Request) {
	s, ok := loadSession(h.sessions, w, r)
	if !ok {
		return
	}

	var req models.ChatRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, badRequestMessage(err))
		return
	}

	reply, err := s.Chat(r.Context(), req.Text)
	if err != nil {
		middleware.ErrorResponse(w, errorStatus(err), err.Error())
		return
	}

	// The view may have changed while the assistant was answering
	messages, err := s.Transcript()
	if err != nil {
		middleware.ErrorResponse(w, errorStatus(err), err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ChatResponse{
		Reply:    &reply,
		Messages: messages,
	})
}
