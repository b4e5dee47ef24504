// Package token produces the opaque refresh tokens handed to dashboard
// sessions. Only the SHA-256 digest of a token is ever stored, so the
// refresh_tokens table holds nothing replayable.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// NewOpaque returns a URL-safe random token built from size bytes of entropy.
func NewOpaque(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Hash returns the hex-encoded SHA-256 digest used as the storage key.
func Hash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
