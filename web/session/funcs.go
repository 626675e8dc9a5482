package session

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateWebSessionID returns 32 hex chars from 128 random bits.
func GenerateWebSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
