package engine

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// DiceRoller produces the next dice face (1-6). Injectable so tests can
// supply a deterministic sequence.
type DiceRoller interface {
	Roll() int
}

// seededRoller wraps a math/rand source whose seed is derived by
// hashing bytes the caller drew from crypto/rand, so the sequence is
// unpredictable across restarts but replayable for a known seed.
type seededRoller struct {
	rng *rand.Rand
}

// NewSeededRoller seeds a *rand.Rand from a 32-byte crypto/rand seed so
// every server start gets an unpredictable but reproducible-if-logged
// sequence.
func NewSeededRoller(seed []byte) DiceRoller {
	hash := sha256.Sum256(seed)
	seedInt := int64(binary.BigEndian.Uint64(hash[:8]))
	return &seededRoller{rng: rand.New(rand.NewSource(seedInt))}
}

// Roll returns a uniform value in [1, 6].
func (r *seededRoller) Roll() int {
	return r.rng.Intn(6) + 1
}
