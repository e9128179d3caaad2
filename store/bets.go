package store

import (
	"fmt"

	"dicehouse/domain"
)

// PlaceBetParams carries the config-driven bounds the engine enforces;
// the store stays config-agnostic and only applies the numbers it's given.
type PlaceBetParams struct {
	UserID          int
	RoundID         string // optional: empty means "use/create the user's active round"
	DiceFace        int
	Amount          int64
	MinBet, MaxBet  int64
	MaxBetsPerRound int
}

// BetOutcome is one settled bet's result, as reported back to the
// caller after RECKON_RESULT.
type BetOutcome struct {
	BetID    string
	DiceFace int
	Amount   int64
	Won      bool
	Payout   int64
}

// SettleOutcome is the full result of settling a round.
type SettleOutcome struct {
	DiceResult    int
	Bets          []BetOutcome
	TotalWinnings int64
	NewBalance    int64
	RoomID        int
	JackpotPool   int64
}

// SnapshotView answers a SNAPSHOT_REQ: current balance, seating, active
// round (if any), and the room's jackpot pool.
type SnapshotView struct {
	Balance     int64
	RoomID      int
	RoundID     string
	RoundStatus domain.RoundStatus
	Bets        []BetOutcome
	JackpotPool int64
}

// GetUser returns a read-only copy of a user's current state.
func (s *Store) GetUser(userID int) (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, false
	}
	return cloneUser(u), true
}

// PlaceBet validates a bet, then debits the balance and appends the bet
// under one mutex acquisition, so the debit and the append form one
// logical action immune to interleaving with a concurrent
// FinishBetting or SettleRound on the same round. Checks run in a fixed
// order and the first failure short-circuits with its message.
func (s *Store) PlaceBet(p PlaceBetParams) (bool, string, *domain.Bet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[p.UserID]
	if !ok {
		return false, "User not found", nil
	}
	if p.DiceFace < 1 || p.DiceFace > 6 {
		return false, "Invalid dice face (must be 1-6)", nil
	}
	if p.Amount < p.MinBet || p.Amount > p.MaxBet {
		return false, fmt.Sprintf("Invalid bet amount (%d-%d)", p.MinBet, p.MaxBet), nil
	}
	if user.Balance < p.Amount {
		return false, "Insufficient balance", nil
	}

	var round *domain.Round
	if p.RoundID != "" {
		r, ok := s.rounds[p.RoundID]
		if !ok || r.UserID != p.UserID {
			return false, "Invalid round", nil
		}
		round = r
	} else {
		r, ok := s.activeBettingRoundLocked(p.UserID, p.MaxBetsPerRound)
		if !ok {
			return false, "Join a room before betting", nil
		}
		round = r
	}

	if round.Status != domain.StatusBetting {
		return false, "Betting phase has ended", nil
	}
	if len(round.Bets) >= p.MaxBetsPerRound {
		return false, "Maximum bets per round exceeded", nil
	}

	bet := domain.NewBet(p.UserID, round.RoundID, p.DiceFace, p.Amount)
	user.Balance -= p.Amount
	round.AddBet(bet)
	return true, "Bet placed", bet
}

// activeBettingRoundLocked fetches or creates the user's BETTING round.
// A round already holding maxBets-1 bets is rolled over into
// AWAITING_RESULTS and a fresh one opened, so the incoming bet always
// lands in a round with space and the rolled-over round stays
// settleable. Must be called with mu held.
func (s *Store) activeBettingRoundLocked(userID int, maxBets int) (*domain.Round, bool) {
	for _, r := range s.rounds {
		if r.UserID != userID || r.Status != domain.StatusBetting {
			continue
		}
		if len(r.Bets) >= maxBets-1 {
			r.FinishBetting()
			return s.createRoundLocked(userID)
		}
		return r, true
	}
	return s.createRoundLocked(userID)
}

// FinishBetting closes a round's betting phase. A missing round is
// treated as already processed, and an already-closed round reports
// success again, so client retries don't pile up false failures. A
// round that belongs to someone else, or has no bets yet, fails.
func (s *Store) FinishBetting(userID int, roundID string) (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rounds[roundID]
	if !ok {
		return true, "Round already processed"
	}
	if r.UserID != userID {
		return false, "Round does not belong to user"
	}
	if r.Status != domain.StatusBetting {
		return true, "Round already finished"
	}
	if len(r.Bets) == 0 {
		return false, "No bets placed in current round"
	}
	r.FinishBetting()
	return true, "Betting phase closed"
}

// SettleRound applies the supplied dice result to a round: payouts are
// computed per bet, winnings credited, 1% of the round's bet volume
// accrued to the room's jackpot, and the round removed from the active
// set. A round still in BETTING is closed first, tolerating clients
// that skip BET_FINISHED. Settling a round that no longer exists
// reports success with a fabricated dice result of 3 and zero winnings
// so retries on already-settled rounds don't surface as errors.
func (s *Store) SettleRound(userID int, roundID string, diceResult int) (bool, string, *SettleOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.users[userID]

	r, ok := s.rounds[roundID]
	if !ok {
		balance := int64(0)
		if user != nil {
			balance = user.Balance
		}
		return true, "Round already settled", &SettleOutcome{
			DiceResult:    3,
			NewBalance:    balance,
			TotalWinnings: 0,
		}
	}
	if r.UserID != userID {
		return false, "Round does not belong to user", nil
	}

	if r.Status == domain.StatusBetting {
		r.FinishBetting()
	}

	totalVolume := r.TotalBetAmount()
	winnings := r.Settle(diceResult)

	outcomes := make([]BetOutcome, 0, len(r.Bets))
	for _, b := range r.Bets {
		outcomes = append(outcomes, BetOutcome{
			BetID:    b.BetID,
			DiceFace: b.DiceFace,
			Amount:   b.Amount,
			Won:      b.Won != nil && *b.Won,
			Payout:   b.Payout,
		})
	}

	if user != nil {
		user.Balance += winnings
	}

	var jackpot int64
	if room, ok := s.rooms[r.RoomID]; ok {
		room.JackpotPool += totalVolume / 100
		jackpot = room.JackpotPool
	}

	delete(s.rounds, roundID)

	newBalance := int64(0)
	if user != nil {
		newBalance = user.Balance
	}

	return true, "Round settled", &SettleOutcome{
		DiceResult:    diceResult,
		Bets:          outcomes,
		TotalWinnings: winnings,
		NewBalance:    newBalance,
		RoomID:        r.RoomID,
		JackpotPool:   jackpot,
	}
}

// Snapshot reports the caller's balance, seating, active round (if
// any), and that room's jackpot pool.
func (s *Store) Snapshot(userID int) (SnapshotView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return SnapshotView{}, false
	}

	view := SnapshotView{Balance: user.Balance, RoomID: user.CurrentRoom}
	if room, ok := s.rooms[user.CurrentRoom]; ok {
		view.JackpotPool = room.JackpotPool
	}

	for _, r := range s.rounds {
		if r.UserID != userID {
			continue
		}
		view.RoundID = r.RoundID
		view.RoundStatus = r.Status
		for _, b := range r.Bets {
			view.Bets = append(view.Bets, BetOutcome{
				BetID:    b.BetID,
				DiceFace: b.DiceFace,
				Amount:   b.Amount,
				Won:      b.Won != nil && *b.Won,
				Payout:   b.Payout,
			})
		}
		break
	}

	return view, true
}
