package domain

import (
	"time"

	"github.com/google/uuid"
)

// Bet is a single wager against one dice face within a round. Won is
// nil (unknown) until the round settles.
type Bet struct {
	BetID     string
	UserID    int
	RoundID   string
	DiceFace  int
	Amount    int64
	Won       *bool
	Payout    int64
	CreatedAt time.Time
}

// NewBet builds an unsettled bet with a fresh id.
func NewBet(userID int, roundID string, diceFace int, amount int64) *Bet {
	return &Bet{
		BetID:     uuid.NewString(),
		UserID:    userID,
		RoundID:   roundID,
		DiceFace:  diceFace,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
}
