// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package shell is the view controller for an app session.

An app session stands in for one browser tab. It has a current view and,
only while that view is VERIFICATION, a vote flow. Likewise it holds an
assistant transcript only while the view is EDUCATION.

# Navigation

	s := store.Create()                          // HOME
	s.Navigate(ctx, models.ViewVerification)     // fresh flow
	f, _ := s.Vote()
	...
	s.CompleteVote()                             // RECEIPT → HOME, receipt dropped

Leaving VERIFICATION by any route closes the flow, so a pending scan or
submission never completes in the background.

# Chat

	s.Navigate(ctx, models.ViewEducation)        // transcript starts at the greeting
	reply, err := s.Chat(ctx, "How do I vote from London?")

Every visit to EDUCATION starts a new transcript. Chat and Transcript
return ErrChatClosed in any other view. Blank messages return
ErrEmptyMessage and never reach the assistant.

# Store

Sessions are kept in memory under a random UUID:

	st := shell.NewStore(deps, cfg.SessionTTL)
	go st.RunSweeper(ctx, time.Minute)

Sessions idle longer than the TTL are closed and forgotten. A closed
session answers every call with ErrSessionNotFound.
*/
package shell
