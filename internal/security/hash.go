package security

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashData returns the SHA-256 hex digest of s. One-way; used for the card
// number fingerprint only.
func HashData(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
