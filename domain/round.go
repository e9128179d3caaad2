package domain

import (
	"time"

	"github.com/google/uuid"
)

// RoundStatus is the lifecycle state of a Round. The zero value is
// intentionally invalid (use NewRound, which always starts a round in
// StatusBetting) so a nil-Round bug can't silently read as "betting".
type RoundStatus int

const (
	StatusBetting RoundStatus = iota + 1
	StatusAwaitingResults
)

// String renders a RoundStatus for logs and test failure messages.
func (s RoundStatus) String() string {
	switch s {
	case StatusBetting:
		return "BETTING"
	case StatusAwaitingResults:
		return "AWAITING_RESULTS"
	default:
		return "UNKNOWN"
	}
}

// PayoutMultiplier is the fair payout on a uniform six-sided die: a
// winning bet pays amount * PayoutMultiplier.
const PayoutMultiplier = 6

// Round is a single user's betting envelope against one upcoming dice
// roll. Once Status leaves StatusBetting no further bets may be
// appended (store.Store enforces this by refusing to append once the
// status flips).
type Round struct {
	RoundID       string
	UserID        int
	RoomID        int
	Bets          []*Bet
	Status        RoundStatus
	DiceResult    *int
	TotalWinnings int64
	CreatedAt     time.Time
	FinishedAt    *time.Time
}

// NewRound starts a fresh round in the betting phase. roomID must be
// the user's current room at the moment of creation.
func NewRound(userID, roomID int) *Round {
	return &Round{
		RoundID:   uuid.NewString(),
		UserID:    userID,
		RoomID:    roomID,
		Status:    StatusBetting,
		CreatedAt: time.Now(),
	}
}

// AddBet appends a bet. Callers must already have checked the round is
// still in StatusBetting and under the per-round bet cap.
func (r *Round) AddBet(b *Bet) {
	r.Bets = append(r.Bets, b)
}

// FinishBetting transitions BETTING -> AWAITING_RESULTS.
func (r *Round) FinishBetting() {
	r.Status = StatusAwaitingResults
}

// Settle rolls the given dice face against every bet, marking each won
// or lost and computing its payout, and returns the sum of payouts.
func (r *Round) Settle(dice int) int64 {
	r.DiceResult = &dice
	var total int64
	for _, b := range r.Bets {
		won := b.DiceFace == dice
		b.Won = &won
		if won {
			b.Payout = b.Amount * PayoutMultiplier
		} else {
			b.Payout = 0
		}
		total += b.Payout
	}
	r.TotalWinnings = total
	now := time.Now()
	r.FinishedAt = &now
	return total
}

// TotalBetAmount sums every bet placed in the round, used for jackpot
// accrual (1% of total bet volume, floor division).
func (r *Round) TotalBetAmount() int64 {
	var total int64
	for _, b := range r.Bets {
		total += b.Amount
	}
	return total
}
