// Package store owns every piece of process-wide, mutable game state:
// users, rooms, active rounds and the connection<->user binding. A
// single mutex serializes every mutation — there is deliberately no
// per-entity locking, because the critical sections here are short and
// never touch I/O.
package store

import (
	"sync"
	"time"

	"dicehouse/domain"
)

// ConnID identifies a single WebSocket connection without the store
// needing to import the transport package (avoids an import cycle and
// keeps the store testable without a real socket).
type ConnID string

// Store is the single source of truth for the running game. Every
// exported method acquires mu for its own duration; none of them block
// on I/O while holding it.
type Store struct {
	mu sync.Mutex

	users       map[int]*domain.User
	usersByName map[string]int
	rooms       map[int]*domain.Room
	rounds      map[string]*domain.Round

	connToUser map[ConnID]int
	userToConn map[int]ConnID

	nextUserID int

	sessionTimeout time.Duration
}

// New builds an empty store. Seed data (default rooms/users) is
// applied separately by Bootstrap so tests can build a bare store.
func New(sessionTimeout time.Duration) *Store {
	return &Store{
		users:          make(map[int]*domain.User),
		usersByName:    make(map[string]int),
		rooms:          make(map[int]*domain.Room),
		rounds:         make(map[string]*domain.Round),
		connToUser:     make(map[ConnID]int),
		userToConn:     make(map[int]ConnID),
		nextUserID:     1,
		sessionTimeout: sessionTimeout,
	}
}
