// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/uchaguzi-block/ledger"
	"github.com/danielhkuo/uchaguzi-block/models"
	"github.com/danielhkuo/uchaguzi-block/testutil"
)

// TestFullVotingWorkflow walks one app session through the whole kiosk:
// 1. Create session
// 2. Open the voting view
// 3. Scan, select, change selection, cast
// 4. Read the receipt
// 5. Return home
// 6. Check results and chat still work
func TestFullVotingWorkflow(t *testing.T) {
	store, sched := setupTestStore(t)
	sessionHandler := NewSessionHandler(store)
	votingHandler := NewVotingHandler(store)

	// Step 1: Create a session
	w := httptest.NewRecorder()
	sessionHandler.CreateSession(w, testutil.MakeRequest("POST", "/sessions", nil, nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Create session failed: %d - %s", w.Code, w.Body.String())
	}
	var created models.CreateSessionResponse
	testutil.AssertJSON(t, w, &created)
	id := created.SessionID
	t.Logf("Step 1 - Created session: %s", id)

	// Step 2: Navigate to VERIFICATION
	w = httptest.NewRecorder()
	sessionHandler.Navigate(w, withID(testutil.MakeRequest("POST", "/sessions/"+id+"/view",
		models.NavigateRequest{View: models.ViewVerification}, nil), id))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 2 - Navigate failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 3: Scan, select, reselect, cast
	if w := doVote(votingHandler.StartVerification, "POST", id, "/verify", nil); w.Code != http.StatusAccepted {
		t.Fatalf("Step 3 - Verify failed: %d - %s", w.Code, w.Body.String())
	}
	if sched.FireAll() != 1 {
		t.Fatal("Step 3 - Expected one scan timer")
	}
	for _, candidateID := range []string{"c2", "c1"} {
		w := doVote(votingHandler.SelectCandidate, "PUT", id, "/selection", models.SelectCandidateRequest{CandidateID: candidateID})
		if w.Code != http.StatusOK {
			t.Fatalf("Step 3 - Select %s failed: %d - %s", candidateID, w.Code, w.Body.String())
		}
	}
	if w := doVote(votingHandler.CastVote, "POST", id, "/cast", nil); w.Code != http.StatusAccepted {
		t.Fatalf("Step 3 - Cast failed: %d - %s", w.Code, w.Body.String())
	}
	if pending := sched.Pending(); len(pending) != 1 || pending[0] != testutil.GetTestConfig().SubmitDuration {
		t.Fatalf("Step 3 - Expected one submission timer, got %v", pending)
	}
	sched.FireAll()
	t.Log("Step 3 - Vote cast")

	// Step 4: Receipt
	w = httptest.NewRecorder()
	sessionHandler.GetSession(w, withID(testutil.MakeRequest("GET", "/sessions/"+id, nil, nil), id))
	var session models.SessionResponse
	testutil.AssertJSON(t, w, &session)
	if session.Vote == nil || session.Vote.Receipt == nil {
		t.Fatalf("Step 4 - Expected receipt, got %+v", session.Vote)
	}
	receipt := session.Vote.Receipt
	if receipt.CandidateID != "c1" {
		t.Errorf("Step 4 - Expected receipt for c1, got %s", receipt.CandidateID)
	}
	if !ledger.ValidTxHash(receipt.TxHash) || len(receipt.TxHash) != 42 {
		t.Errorf("Step 4 - Invalid tx hash %q", receipt.TxHash)
	}
	t.Logf("Step 4 - Receipt %s", ledger.ShortHash(receipt.TxHash))

	// Step 5: Return home
	if w := doVote(votingHandler.CompleteVote, "POST", id, "/complete", nil); w.Code != http.StatusOK {
		t.Fatalf("Step 5 - Complete failed: %d - %s", w.Code, w.Body.String())
	}
	if store.Len() != 1 {
		t.Errorf("Step 5 - Session should survive returning home")
	}

	// Step 6: Chat answers once the session opens EDUCATION
	w = httptest.NewRecorder()
	sessionHandler.Navigate(w, withID(testutil.MakeRequest("POST", "/sessions/"+id+"/view",
		models.NavigateRequest{View: models.ViewEducation}, nil), id))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 6 - Navigate failed: %d - %s", w.Code, w.Body.String())
	}
	w = httptest.NewRecorder()
	sessionHandler.PostChat(w, withID(testutil.MakeRequest("POST", "/sessions/"+id+"/chat",
		models.ChatRequest{Text: "Was my vote counted?"}, nil), id))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 6 - Chat failed: %d - %s", w.Code, w.Body.String())
	}
	t.Log("Step 6 - Workflow complete")
}
