// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shell

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Store keeps app sessions in memory. Nothing survives a restart.
type Store struct {
	mu       sync.Mutex
	deps     Deps
	ttl      time.Duration
	sessions map[string]*Shell
}

func NewStore(deps Deps, ttl time.Duration) *Store {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Store{
		deps:     deps,
		ttl:      ttl,
		sessions: make(map[string]*Shell),
	}
}

// Create starts a new session at HOME
func (st *Store) Create() *Shell {
	s := New(uuid.NewString(), st.deps)

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	slog.Info("session created", "session_id", s.ID)
	return s
}

func (st *Store) Get(id string) (*Shell, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete closes and forgets a session
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	return nil
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed. A zero TTL disables expiry.
func (st *Store) Sweep() int {
	if st.ttl <= 0 {
		return 0
	}
	cutoff := st.deps.Now().Add(-st.ttl)

	st.mu.Lock()
	var expired []*Shell
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	if len(expired) > 0 {
		slog.Info("expired idle sessions", "count", len(expired))
	}
	return len(expired)
}

// RunSweeper sweeps every interval until ctx is done
func (st *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}

// CloseAll discards every session, cancelling pending transitions
func (st *Store) CloseAll() {
	st.mu.Lock()
	sessions := st.sessions
	st.sessions = make(map[string]*Shell)
	st.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
