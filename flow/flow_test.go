package flow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/uchaguzi-block/db"
	"github.com/danielhkuo/uchaguzi-block/flow"
	"github.com/danielhkuo/uchaguzi-block/ledger"
	"github.com/danielhkuo/uchaguzi-block/models"
	"github.com/danielhkuo/uchaguzi-block/testutil"
)

var fixedNow = time.Date(2027, 8, 9, 10, 30, 0, 0, time.UTC)

func newFlow(t *testing.T) (*flow.Flow, *testutil.ManualScheduler) {
	t.Helper()
	sched := &testutil.ManualScheduler{}
	f := flow.New(db.SampleCandidates, flow.Config{
		Scheduler: sched,
		Now:       func() time.Time { return fixedNow },
	})
	return f, sched
}

// toBallot drives a fresh flow through verification
func toBallot(t *testing.T, f *flow.Flow, sched *testutil.ManualScheduler) {
	t.Helper()
	require.NoError(t, f.StartVerification())
	require.Equal(t, 1, sched.FireAll())
	require.Equal(t, models.StepBallot, f.Step())
}

func TestFlow_Verification(t *testing.T) {
	req := require.New(t)
	f, sched := newFlow(t)

	// Given a new flow
	req.Equal(models.StepVerify, f.Step())
	req.False(f.State().Scanning)

	// When the scan starts
	req.NoError(f.StartVerification())

	// Then it is scanning for 3s and still at VERIFY
	req.True(f.State().Scanning)
	req.Equal(models.StepVerify, f.Step())
	req.Equal([]time.Duration{3 * time.Second}, sched.Pending())

	// And a second trigger is rejected
	req.ErrorIs(f.StartVerification(), flow.ErrAlreadyScanning)

	// When the scan completes
	sched.FireAll()

	// Then the ballot is shown
	state := f.State()
	req.Equal(models.StepBallot, state.Step)
	req.False(state.Scanning)
	req.Len(state.Candidates, 3)
	req.False(state.CanCast)
}

func TestFlow_SelectionLastWriteWins(t *testing.T) {
	req := require.New(t)
	f, sched := newFlow(t)
	toBallot(t, f, sched)

	req.NoError(f.Select("c1"))
	req.NoError(f.Select("c2"))

	state := f.State()
	req.NotNil(state.SelectedCandidateID)
	req.Equal("c2", *state.SelectedCandidateID)

	// Reselecting the same candidate is idempotent
	req.NoError(f.Select("c2"))
	req.Equal("c2", *f.State().SelectedCandidateID)
}

func TestFlow_SelectUnknownCandidate(t *testing.T) {
	req := require.New(t)
	f, sched := newFlow(t)
	toBallot(t, f, sched)

	req.ErrorIs(f.Select("c9"), flow.ErrUnknownCandidate)
	req.Nil(f.State().SelectedCandidateID)
}

func TestFlow_CastEnablement(t *testing.T) {
	req := require.New(t)
	f, sched := newFlow(t)

	req.False(f.CanCast())
	toBallot(t, f, sched)

	// Disabled without a selection
	req.False(f.CanCast())
	req.ErrorIs(f.Cast(), flow.ErrNoSelection)
	req.Equal(models.StepBallot, f.Step())

	// Enabled once a candidate is selected
	req.NoError(f.Select("c3"))
	req.True(f.CanCast())
}

func TestFlow_CastIssuesReceipt(t *testing.T) {
	req := require.New(t)
	f, sched := newFlow(t)
	toBallot(t, f, sched)

	req.NoError(f.Select("c1"))
	req.NoError(f.Cast())

	req.Equal(models.StepSubmitting, f.Step())
	req.False(f.CanCast())
	req.Nil(f.Receipt())
	req.Equal([]time.Duration{2 * time.Second}, sched.Pending())

	sched.FireAll()

	req.Equal(models.StepReceipt, f.Step())
	receipt := f.Receipt()
	req.NotNil(receipt)
	req.True(ledger.ValidTxHash(receipt.TxHash))
	req.Len(receipt.TxHash, 42)
	req.Equal("c1", receipt.CandidateID)
	req.Equal(fixedNow, receipt.Timestamp)
	req.Equal("Nairobi - Embakasi East (Virtual)", receipt.Location)
}

func TestFlow_NoSecondCast(t *testing.T) {
	req := require.New(t)
	f, sched := newFlow(t)
	toBallot(t, f, sched)

	req.NoError(f.Select("c1"))
	req.NoError(f.Cast())
	req.ErrorIs(f.Cast(), flow.ErrInvalidTransition)
	sched.FireAll()

	// RECEIPT is terminal
	req.ErrorIs(f.Cast(), flow.ErrInvalidTransition)
	req.ErrorIs(f.Select("c2"), flow.ErrInvalidTransition)
	req.ErrorIs(f.StartVerification(), flow.ErrInvalidTransition)
	req.False(f.Abort())
	req.Equal("c1", f.Receipt().CandidateID)
}

func TestFlow_ActionsOutOfOrder(t *testing.T) {
	req := require.New(t)
	f, _ := newFlow(t)

	req.ErrorIs(f.Select("c1"), flow.ErrInvalidTransition)
	req.ErrorIs(f.Cast(), flow.ErrInvalidTransition)
	req.False(f.Abort())
}

func TestFlow_AbortScan(t *testing.T) {
	req := require.New(t)
	f, sched := newFlow(t)

	req.NoError(f.StartVerification())
	req.True(f.Abort())

	req.Empty(sched.Pending())
	req.Equal(models.StepVerify, f.Step())
	req.False(f.State().Scanning)

	// A callback that raced with Stop is ignored
	sched.FireStopped()
	req.Equal(models.StepVerify, f.Step())

	// The scan can be restarted
	req.NoError(f.StartVerification())
	sched.FireAll()
	req.Equal(models.StepBallot, f.Step())
}

func TestFlow_AbortSubmission(t *testing.T) {
	req := require.New(t)
	f, sched := newFlow(t)
	toBallot(t, f, sched)

	req.NoError(f.Select("c2"))
	req.NoError(f.Cast())
	req.True(f.Abort())

	req.Equal(models.StepBallot, f.Step())
	req.Equal("c2", *f.State().SelectedCandidateID)
	req.True(f.CanCast())

	sched.FireStopped()
	req.Equal(models.StepBallot, f.Step())
	req.Nil(f.Receipt())
}

func TestFlow_CloseCancelsPending(t *testing.T) {
	req := require.New(t)
	f, sched := newFlow(t)

	req.NoError(f.StartVerification())
	f.Close()
	req.Empty(sched.Pending())

	sched.FireStopped()
	req.Equal(models.StepVerify, f.Step())
	req.ErrorIs(f.StartVerification(), flow.ErrClosed)

	// Close is idempotent
	f.Close()
}

func TestFlow_RealScheduler(t *testing.T) {
	f := flow.New(db.SampleCandidates, flow.Config{
		ScanDuration:   time.Millisecond,
		SubmitDuration: time.Millisecond,
	})
	defer f.Close()

	require.NoError(t, f.StartVerification())
	require.Eventually(t, func() bool {
		return f.Step() == models.StepBallot
	}, time.Second, time.Millisecond)

	require.NoError(t, f.Select("c1"))
	require.NoError(t, f.Cast())
	require.Eventually(t, func() bool {
		return f.Step() == models.StepReceipt
	}, time.Second, time.Millisecond)
}

func TestFlow_BallotIsCopied(t *testing.T) {
	ballot := append([]models.Candidate(nil), db.SampleCandidates...)
	sched := &testutil.ManualScheduler{}
	f := flow.New(ballot, flow.Config{Scheduler: sched})
	ballot[0].ID = "mutated"

	require.NoError(t, f.StartVerification())
	sched.FireAll()
	require.NoError(t, f.Select("c1"))
}
