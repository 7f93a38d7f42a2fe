package uid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewGameID returns a random 128-bit hex identifier for a game session.
func NewGameID() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// NewSessionID returns a cryptographically secure 256-bit session ID.
func NewSessionID() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate session ID: %v", err)
	}
	return hex.EncodeToString(bytes), nil
}
