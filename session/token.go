// Package session provides the two per-connection concerns sitting
// above the state store: session token minting and per-user message
// rate limiting.
package session

import (
	"crypto/rand"
	"encoding/hex"
)

// NewToken mints a fresh session token: 32 bytes from crypto/rand,
// hex-encoded.
func NewToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
