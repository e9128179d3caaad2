package store

import (
	"fmt"
	"log"

	"dicehouse/domain"
)

// seedUser is one entry of the fixed account roster created at startup
// so every fresh process has the same known logins.
type seedUser struct {
	username string
	password string
}

var defaultSeedUsers = []seedUser{
	{"testuser1", "password123"},
	{"testuser2", "password123"},
	{"alice", "alicepass"},
	{"bob", "bobpass"},
	{"charlie", "charliepass"},
}

// Bootstrap creates the default room pool and seed user roster. It is
// called once at process startup (cmd/dicehouse/main.go).
func (s *Store) Bootstrap(roomCount, maxRoomCapacity int, defaultBalance int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 1; i <= roomCount; i++ {
		s.rooms[i] = domain.NewRoom(i, fmt.Sprintf("Room %d", i), maxRoomCapacity)
	}

	for _, su := range defaultSeedUsers {
		user, err := domain.NewUser(s.nextUserID, su.username, su.password, defaultBalance)
		if err != nil {
			return err
		}
		s.users[user.UserID] = user
		s.usersByName[user.Username] = user.UserID
		s.nextUserID++
	}

	log.Printf("🚀 Bootstrapped %d rooms and %d seed users", roomCount, len(defaultSeedUsers))
	return nil
}
