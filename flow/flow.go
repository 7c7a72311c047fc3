// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package flow

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/danielhkuo/uchaguzi-block/ledger"
	"github.com/danielhkuo/uchaguzi-block/models"
)

var (
	ErrInvalidTransition = errors.New("action not allowed in current step")
	ErrAlreadyScanning   = errors.New("verification already in progress")
	ErrNoSelection       = errors.New("no candidate selected")
	ErrUnknownCandidate  = errors.New("candidate is not on the ballot")
	ErrClosed            = errors.New("flow is closed")
)

// Timer is a handle to a scheduled transition. *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d. Implementations must call fn on a
// goroutine other than the caller's.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// RealScheduler schedules with time.AfterFunc
var RealScheduler Scheduler = realScheduler{}

type Config struct {
	ScanDuration   time.Duration
	SubmitDuration time.Duration
	Location       string
	Scheduler      Scheduler
	Now            func() time.Time
	TxHash         func() string
}

// DefaultConfig mirrors the demo timings: 3s scan, 2s ledger write.
func DefaultConfig() Config {
	return Config{
		ScanDuration:   3 * time.Second,
		SubmitDuration: 2 * time.Second,
		Location:       "Nairobi - Embakasi East (Virtual)",
		Scheduler:      RealScheduler,
		Now:            time.Now,
		TxHash:         ledger.GenerateTxHash,
	}
}

// Flow is the vote-cast state machine for one visit to the voting view.
// Steps only move forward: VERIFY → BALLOT → SUBMITTING → RECEIPT.
// Abort is the single exception and only undoes a transition that has
// not completed yet.
type Flow struct {
	mu  sync.Mutex
	cfg Config

	candidates []models.Candidate
	step       models.Step
	scanning   bool
	selected   *models.Candidate
	receipt    *models.VoteRecord

	pending Timer
	gen     uint64 // bumped whenever a pending transition is scheduled or cancelled
	closed  bool
}

// New creates a flow at VERIFY over the given ballot. Zero-valued config
// fields fall back to DefaultConfig.
func New(candidates []models.Candidate, cfg Config) *Flow {
	def := DefaultConfig()
	if cfg.ScanDuration <= 0 {
		cfg.ScanDuration = def.ScanDuration
	}
	if cfg.SubmitDuration <= 0 {
		cfg.SubmitDuration = def.SubmitDuration
	}
	if cfg.Location == "" {
		cfg.Location = def.Location
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = def.Scheduler
	}
	if cfg.Now == nil {
		cfg.Now = def.Now
	}
	if cfg.TxHash == nil {
		cfg.TxHash = def.TxHash
	}

	ballot := make([]models.Candidate, len(candidates))
	copy(ballot, candidates)

	return &Flow{
		cfg:        cfg,
		candidates: ballot,
		step:       models.StepVerify,
	}
}

// StartVerification begins the simulated biometric scan. The scan always
// succeeds and advances to BALLOT after ScanDuration.
func (f *Flow) StartVerification() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	if f.step != models.StepVerify {
		return ErrInvalidTransition
	}
	if f.scanning {
		return ErrAlreadyScanning
	}

	f.scanning = true
	f.schedule(f.cfg.ScanDuration, f.finishVerification)
	return nil
}

func (f *Flow) finishVerification(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || gen != f.gen || !f.scanning {
		return
	}
	f.scanning = false
	f.pending = nil
	f.step = models.StepBallot
	slog.Debug("identity verified")
}

// Select marks a candidate as chosen. Reselecting replaces the choice.
func (f *Flow) Select(candidateID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	if f.step != models.StepBallot {
		return ErrInvalidTransition
	}

	c, ok := lo.Find(f.candidates, func(c models.Candidate) bool {
		return c.ID == candidateID
	})
	if !ok {
		return ErrUnknownCandidate
	}

	f.selected = &c
	return nil
}

// CanCast reports whether the cast action is enabled
func (f *Flow) CanCast() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canCast()
}

func (f *Flow) canCast() bool {
	return !f.closed && f.step == models.StepBallot && f.selected != nil
}

// Cast submits the selected candidate. A receipt is issued after
// SubmitDuration; the simulated ledger write never fails.
func (f *Flow) Cast() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	if f.step != models.StepBallot {
		return ErrInvalidTransition
	}
	if f.selected == nil {
		return ErrNoSelection
	}

	f.step = models.StepSubmitting
	f.schedule(f.cfg.SubmitDuration, f.finishSubmission)
	return nil
}

func (f *Flow) finishSubmission(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || gen != f.gen || f.step != models.StepSubmitting {
		return
	}

	f.receipt = &models.VoteRecord{
		TxHash:      f.cfg.TxHash(),
		Timestamp:   f.cfg.Now(),
		CandidateID: f.selected.ID,
		Location:    f.cfg.Location,
	}
	f.pending = nil
	f.step = models.StepReceipt

	slog.Info("vote recorded",
		"candidate_id", f.receipt.CandidateID,
		"tx", ledger.ShortHash(f.receipt.TxHash),
	)
}

// Abort cancels a transition that has been scheduled but not completed.
// A running scan returns to an idle VERIFY; a pending submission returns
// to BALLOT with the selection kept. Returns false if nothing was pending.
func (f *Flow) Abort() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || f.pending == nil {
		return false
	}

	f.cancelPending()
	switch {
	case f.scanning:
		f.scanning = false
	case f.step == models.StepSubmitting:
		f.step = models.StepBallot
	}
	return true
}

// Close discards the flow. Pending transitions are cancelled and any
// callback that still fires is ignored.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.cancelPending()
	f.closed = true
}

// Step returns the current step
func (f *Flow) Step() models.Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Receipt returns a copy of the receipt, or nil before RECEIPT.
func (f *Flow) Receipt() *models.VoteRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.receipt == nil {
		return nil
	}
	r := *f.receipt
	return &r
}

// State returns a snapshot suitable for rendering
func (f *Flow) State() models.FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()

	state := models.FlowState{
		Step:     f.step,
		Scanning: f.scanning,
		CanCast:  f.canCast(),
	}
	if f.selected != nil {
		state.SelectedCandidateID = lo.ToPtr(f.selected.ID)
	}
	if f.receipt != nil {
		r := *f.receipt
		state.Receipt = &r
	}
	if f.step == models.StepBallot {
		state.Candidates = append([]models.Candidate(nil), f.candidates...)
	}
	return state
}

// schedule must be called with mu held
func (f *Flow) schedule(d time.Duration, fn func(gen uint64)) {
	f.gen++
	gen := f.gen
	f.pending = f.cfg.Scheduler.AfterFunc(d, func() { fn(gen) })
}

// cancelPending must be called with mu held
func (f *Flow) cancelPending() {
	if f.pending != nil {
		f.pending.Stop()
		f.pending = nil
	}
	f.gen++
}
