// Package domain holds the pure data types shared by the store and the
// game engine: users, rooms, bets and rounds.
package domain

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor applied to every stored password hash.
const bcryptCost = 12

// User is a single account. Balance is always non-negative and a user
// holds at most one live session token at a time (store.Store enforces
// both by serializing every mutation behind its single mutex).
type User struct {
	UserID       int
	Username     string
	PasswordHash string
	Balance      int64
	SessionToken string
	LastActivity time.Time
	CurrentRoom  int // 0 means "no room"
	CreatedAt    time.Time
}

// NewUser hashes password with bcrypt and returns a funded account.
func NewUser(userID int, username, password string, balance int64) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &User{
		UserID:       userID,
		Username:     username,
		PasswordHash: string(hash),
		Balance:      balance,
		CreatedAt:    now,
		LastActivity: now,
	}, nil
}

// VerifyPassword does a constant-time comparison against the stored hash.
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// SessionExpired reports whether the user's session token, if any, is
// stale relative to timeout.
func (u *User) SessionExpired(now time.Time, timeout time.Duration) bool {
	if u.SessionToken == "" {
		return true
	}
	return now.Sub(u.LastActivity) > timeout
}

// HasLiveSession reports whether the user currently holds an unexpired
// session token.
func (u *User) HasLiveSession(now time.Time, timeout time.Duration) bool {
	return u.SessionToken != "" && !u.SessionExpired(now, timeout)
}
