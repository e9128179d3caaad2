// Package engine implements the game rules: placing bets, closing
// betting, rolling the dice and settling a round, on top of the
// primitives store.Store exposes. All state mutation happens inside the
// store under its single mutex; the engine supplies config-driven
// bounds and the dice roll itself.
package engine

import (
	"time"

	"dicehouse/domain"
	"dicehouse/store"
)

// Engine wires the game rules to a backing store, a dice roller, and
// the config-driven bounds that shape every decision.
type Engine struct {
	store             *store.Store
	dice              DiceRoller
	minBet            int64
	maxBet            int64
	maxBetsPerRound   int
	staleRoundTimeout time.Duration
}

// New builds an Engine against store s, rolling dice with roller and
// enforcing the given bet bounds.
func New(s *store.Store, roller DiceRoller, minBet, maxBet int64, maxBetsPerRound int, staleRoundTimeout time.Duration) *Engine {
	return &Engine{
		store:             s,
		dice:              roller,
		minBet:            minBet,
		maxBet:            maxBet,
		maxBetsPerRound:   maxBetsPerRound,
		staleRoundTimeout: staleRoundTimeout,
	}
}

// PlaceBet validates, debits and appends atomically via the store, and
// returns the created bet on success.
func (e *Engine) PlaceBet(userID int, diceFace int, amount int64, roundID string) (bool, string, *domain.Bet) {
	return e.store.PlaceBet(store.PlaceBetParams{
		UserID:          userID,
		RoundID:         roundID,
		DiceFace:        diceFace,
		Amount:          amount,
		MinBet:          e.minBet,
		MaxBet:          e.maxBet,
		MaxBetsPerRound: e.maxBetsPerRound,
	})
}

// FinishBetting closes a round's betting phase.
func (e *Engine) FinishBetting(userID int, roundID string) (bool, string) {
	return e.store.FinishBetting(userID, roundID)
}

// Settle rolls the dice and settles the round. The roll happens here,
// outside the store's lock, then the result is committed atomically.
func (e *Engine) Settle(userID int, roundID string) (bool, string, *store.SettleOutcome) {
	result := e.dice.Roll()
	return e.store.SettleRound(userID, roundID, result)
}

// Snapshot reports the user's balance, seating and active round.
func (e *Engine) Snapshot(userID int) (store.SnapshotView, bool) {
	return e.store.Snapshot(userID)
}

// SweepStaleRounds removes rounds older than the configured stale-round
// timeout.
func (e *Engine) SweepStaleRounds(now time.Time) int {
	return e.store.SweepStaleRounds(now, e.staleRoundTimeout)
}
