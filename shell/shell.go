// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/uchaguzi-block/assistant"
	"github.com/danielhkuo/uchaguzi-block/flow"
	"github.com/danielhkuo/uchaguzi-block/models"
)

var (
	ErrUnknownView  = errors.New("unknown view")
	ErrNoActiveVote = errors.New("no vote in progress")
	ErrEmptyMessage = errors.New("message is empty")
	ErrChatClosed   = errors.New("chat is only open in the EDUCATION view")
)

// CandidateSource supplies the ballot for a new vote flow
type CandidateSource interface {
	List(ctx context.Context) ([]models.Candidate, error)
}

// Assistant answers chat prompts. *assistant.Gateway satisfies it.
type Assistant interface {
	ChatReply(ctx context.Context, prompt string) string
}

// Deps are shared by every shell
type Deps struct {
	Candidates CandidateSource
	Assistant  Assistant
	Flow       flow.Config
	Now        func() time.Time
}

// Shell is the top-level controller for one app session. It holds the
// current view, the vote flow while VERIFICATION is open and the chat
// transcript while EDUCATION is open.
type Shell struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	deps     Deps
	view     models.ViewState
	vote     *flow.Flow
	chat     *assistant.Conversation
	lastSeen time.Time
	closed   bool
}

func New(id string, deps Deps) *Shell {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	now := deps.Now()
	return &Shell{
		ID:        id,
		CreatedAt: now,
		deps:      deps,
		view:      models.ViewHome,
		lastSeen:  now,
	}
}

func ValidView(v models.ViewState) bool {
	switch v {
	case models.ViewHome, models.ViewVerification, models.ViewResults,
		models.ViewEducation, models.ViewCapstoneDocs:
		return true
	}
	return false
}

// Navigate switches views. Entering VERIFICATION always starts a fresh
// flow; leaving it discards the flow and cancels pending transitions.
// EDUCATION works the same way for the chat transcript.
func (s *Shell) Navigate(ctx context.Context, view models.ViewState) error {
	if !ValidView(view) {
		return fmt.Errorf("%w: %q", ErrUnknownView, view)
	}

	var ballot []models.Candidate
	if view == models.ViewVerification {
		var err error
		ballot, err = s.deps.Candidates.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to load ballot: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionNotFound
	}
	s.touch()

	s.discardVote()
	s.chat = nil
	switch view {
	case models.ViewVerification:
		s.vote = flow.New(ballot, s.deps.Flow)
	case models.ViewEducation:
		s.chat = assistant.NewConversation(s.deps.Now)
	}
	s.view = view
	return nil
}

// View returns the current view
func (s *Shell) View() models.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Vote returns the active flow, or ErrNoActiveVote outside VERIFICATION
func (s *Shell) Vote() (*flow.Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionNotFound
	}
	s.touch()

	if s.vote == nil {
		return nil, ErrNoActiveVote
	}
	return s.vote, nil
}

// CompleteVote is the "Return to Home" action on the receipt. The receipt
// is discarded along with the flow.
func (s *Shell) CompleteVote() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionNotFound
	}
	s.touch()

	if s.vote == nil {
		return ErrNoActiveVote
	}
	if s.vote.Step() != models.StepReceipt {
		return flow.ErrInvalidTransition
	}

	s.discardVote()
	s.view = models.ViewHome
	return nil
}

// Chat sends a user message and appends the assistant reply. Outside
// EDUCATION it returns ErrChatClosed. Blank input is rejected without
// calling the assistant.
func (s *Shell) Chat(ctx context.Context, text string) (models.ChatMessage, error) {
	chat, err := s.openChat()
	if err != nil {
		return models.ChatMessage{}, err
	}
	if strings.TrimSpace(text) == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	chat.Append(models.RoleUser, text)
	reply := s.deps.Assistant.ChatReply(ctx, text)
	return chat.Append(models.RoleAssistant, reply), nil
}

// Transcript returns the chat messages of the current EDUCATION visit
func (s *Shell) Transcript() ([]models.ChatMessage, error) {
	chat, err := s.openChat()
	if err != nil {
		return nil, err
	}
	return chat.Messages(), nil
}

func (s *Shell) openChat() (*assistant.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionNotFound
	}
	s.touch()
	if s.chat == nil {
		return nil, ErrChatClosed
	}
	return s.chat, nil
}

// Snapshot renders the session
func (s *Shell) Snapshot() models.SessionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := models.SessionResponse{
		SessionID: s.ID,
		View:      s.view,
		CreatedAt: s.CreatedAt,
	}
	if s.vote != nil {
		state := s.vote.State()
		resp.Vote = &state
	}
	return resp
}

// Close releases the session's flow. A closed shell answers every later
// call with ErrSessionNotFound.
func (s *Shell) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discardVote()
	s.chat = nil
	s.closed = true
}

func (s *Shell) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// touch must be called with mu held
func (s *Shell) touch() {
	s.lastSeen = s.deps.Now()
}

// discardVote must be called with mu held
func (s *Shell) discardVote() {
	if s.vote != nil {
		s.vote.Close()
		s.vote = nil
	}
}
