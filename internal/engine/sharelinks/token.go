package sharelinks

import (
	"crypto/rand"
	"encoding/hex"
)

// TokenLength is the length of a share token in hex characters.
const TokenLength = 64

// GenerateToken mints an unguessable URL token for a share link.
func GenerateToken() (string, error) {
	buf := make([]byte, TokenLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
