package store

import (
	"time"

	"dicehouse/domain"
)

// RoundView is a read-only snapshot of a round's identity, handed back
// to callers that only need to know which round they're acting on.
type RoundView struct {
	RoundID  string
	UserID   int
	RoomID   int
	Status   domain.RoundStatus
	BetCount int
}

func viewOf(r *domain.Round) RoundView {
	return RoundView{
		RoundID:  r.RoundID,
		UserID:   r.UserID,
		RoomID:   r.RoomID,
		Status:   r.Status,
		BetCount: len(r.Bets),
	}
}

// CreateRound opens a betting round for userID, who must be seated in a
// room. An existing BETTING round for that user is returned instead of
// a new one being created, so a user never has two open at once.
func (s *Store) CreateRound(userID int) (RoundView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.createRoundLocked(userID)
	if !ok {
		return RoundView{}, false
	}
	return viewOf(r), true
}

func (s *Store) createRoundLocked(userID int) (*domain.Round, bool) {
	user, ok := s.users[userID]
	if !ok || user.CurrentRoom == 0 {
		return nil, false
	}

	for _, r := range s.rounds {
		if r.UserID == userID && r.Status == domain.StatusBetting {
			return r, true
		}
	}

	round := domain.NewRound(userID, user.CurrentRoom)
	s.rounds[round.RoundID] = round
	return round, true
}

// GetRound returns a read-only view of a round.
func (s *Store) GetRound(roundID string) (RoundView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rounds[roundID]
	if !ok {
		return RoundView{}, false
	}
	return viewOf(r), true
}

// FinishRound removes a round from the active set.
func (s *Store) FinishRound(roundID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rounds, roundID)
}

// SweepStaleRounds removes every round older than staleAfter relative
// to now. Pending debits are not refunded; an abandoned round's stakes
// are forfeit.
func (s *Store) SweepStaleRounds(now time.Time, staleAfter time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stale []string
	for id, r := range s.rounds {
		if now.Sub(r.CreatedAt) > staleAfter {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		delete(s.rounds, id)
	}
	return len(stale)
}
