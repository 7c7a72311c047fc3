// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/uchaguzi-block/cliparse"
	"github.com/danielhkuo/uchaguzi-block/db"
	"github.com/danielhkuo/uchaguzi-block/flow"
)

// SetupTestDB creates a fresh in-memory database seeded with the sample ballot
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	if err := db.SeedCandidates(context.Background(), conn, db.SampleCandidates); err != nil {
		t.Fatalf("Failed to seed candidates: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration (offline assistant)
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    ":memory:",
		DatabaseType:   "sqlite",
		GeminiModel:    "gemini-2.5-flash",
		GeminiBaseURL:  "http://127.0.0.1:0",
		AITimeout:      time.Second,
		ScanDuration:   3 * time.Second,
		SubmitDuration: 2 * time.Second,
		VoteLocation:   "Nairobi - Embakasi East (Virtual)",
		SessionTTL:     30 * time.Minute,
		LogLevel:       "info",
	}
}

// ManualScheduler is a flow.Scheduler whose timers only fire when told to
type ManualScheduler struct {
	mu     sync.Mutex
	timers []*ManualTimer
}

type ManualTimer struct {
	s       *ManualScheduler
	d       time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) flow.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &ManualTimer{s: s, d: d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (t *ManualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Pending returns the durations of timers that have neither fired nor stopped
func (s *ManualScheduler) Pending() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []time.Duration
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			out = append(out, t.d)
		}
	}
	return out
}

// FireAll runs every live timer and returns how many fired
func (s *ManualScheduler) FireAll() int {
	s.mu.Lock()
	var live []*ManualTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			live = append(live, t)
		}
	}
	s.mu.Unlock()

	for _, t := range live {
		t.fn()
	}
	return len(live)
}

// FireStopped runs callbacks of timers that were stopped, simulating a timer
// whose callback raced with Stop
func (s *ManualScheduler) FireStopped() int {
	s.mu.Lock()
	var stale []*ManualTimer
	for _, t := range s.timers {
		if t.stopped {
			stale = append(stale, t)
		}
	}
	s.mu.Unlock()

	for _, t := range stale {
		t.fn()
	}
	return len(stale)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
