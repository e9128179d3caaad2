package store

import "dicehouse/domain"

// JoinRoom seats a user in roomID. If the user is already seated
// elsewhere they're removed from that room first; joining a full or
// missing room leaves state untouched and returns false.
func (s *Store) JoinRoom(userID, roomID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return false
	}
	room, ok := s.rooms[roomID]
	if !ok {
		return false
	}

	if user.CurrentRoom != 0 && user.CurrentRoom != roomID {
		s.removeFromRoomLocked(userID)
	}

	if !room.AddPlayer(userID) {
		return false
	}
	user.CurrentRoom = roomID
	return true
}

// LeaveRoom is idempotent: leaving while seated nowhere is a no-op.
func (s *Store) LeaveRoom(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeFromRoomLocked(userID)
}

// removeFromRoomLocked must be called with mu held.
func (s *Store) removeFromRoomLocked(userID int) {
	user, ok := s.users[userID]
	if !ok || user.CurrentRoom == 0 {
		return
	}
	if room, ok := s.rooms[user.CurrentRoom]; ok {
		room.RemovePlayer(userID)
	}
	user.CurrentRoom = 0
}

// GetRoom returns a shallow copy of the room (the player set is shared
// by reference for read-only inspection by callers that never mutate
// it outside the store).
func (s *Store) GetRoom(roomID int) (*domain.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[roomID]
	if !ok {
		return nil, false
	}
	cp := *room
	return &cp, true
}
