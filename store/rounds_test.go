package store

import (
	"testing"
	"time"
)

func TestCreateRoundReusesActiveBettingRound(t *testing.T) {
	s := newTestStore(t)
	userID := seatedUser(t, s, 1)

	first, ok := s.CreateRound(userID)
	if !ok {
		t.Fatal("CreateRound failed")
	}
	second, ok := s.CreateRound(userID)
	if !ok || second.RoundID != first.RoundID {
		t.Fatalf("expected the same BETTING round to be reused, got %+v vs %+v", first, second)
	}
}

func TestCreateRoundRequiresSeating(t *testing.T) {
	s := newTestStore(t)
	user, _ := s.Authenticate("testuser1", "password123", fixedToken)
	if _, ok := s.CreateRound(user.UserID); ok {
		t.Fatal("expected CreateRound to fail for an unseated user")
	}
}

func TestFinishRoundRemovesFromActiveSet(t *testing.T) {
	s := newTestStore(t)
	userID := seatedUser(t, s, 1)

	round, ok := s.CreateRound(userID)
	if !ok {
		t.Fatal("CreateRound failed")
	}
	s.FinishRound(round.RoundID)
	if _, ok := s.GetRound(round.RoundID); ok {
		t.Fatal("expected the round to be gone after FinishRound")
	}
	s.FinishRound(round.RoundID) // removing again is a no-op
}

func TestSweepStaleRoundsRemovesOldRounds(t *testing.T) {
	s := newTestStore(t)
	userID := seatedUser(t, s, 1)
	_, _, bet := s.PlaceBet(betParams(userID, 3, 100, ""))

	// Force the round to look old by sweeping with a zero timeout.
	swept := s.SweepStaleRounds(time.Now().Add(time.Hour), 0)
	if swept != 1 {
		t.Fatalf("swept = %d, want 1", swept)
	}
	if _, ok := s.GetRound(bet.RoundID); ok {
		t.Fatal("expected the stale round to be removed")
	}

	// The bet's debit is not refunded — matching the lossy sweep contract.
	user, _ := s.GetUser(userID)
	if user.Balance != 900 {
		t.Fatalf("Balance = %d, want 900 (debit not refunded by the sweep)", user.Balance)
	}
}

func TestSnapshotReflectsActiveRound(t *testing.T) {
	s := newTestStore(t)
	userID := seatedUser(t, s, 1)

	empty, ok := s.Snapshot(userID)
	if !ok || empty.RoundID != "" {
		t.Fatalf("expected no active round before betting, got %+v", empty)
	}

	_, _, bet := s.PlaceBet(betParams(userID, 3, 100, ""))
	view, ok := s.Snapshot(userID)
	if !ok {
		t.Fatal("Snapshot failed")
	}
	if view.RoundID != bet.RoundID || len(view.Bets) != 1 {
		t.Fatalf("view = %+v, want round %s with 1 bet", view, bet.RoundID)
	}
	if view.Balance != 900 {
		t.Fatalf("Balance = %d, want 900", view.Balance)
	}
}
