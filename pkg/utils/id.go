package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenShortID generates a random 8-character hex string to be used as a room
// identifier.
func GenShortID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
