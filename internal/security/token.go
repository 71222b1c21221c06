package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// sessionTokenBytes is the raw entropy of a session token. 32 bytes
// hex-encode to 64 characters; collisions at this length are treated
// as cryptographically negligible, with the storage-level unique
// constraint as the fallback.
const sessionTokenBytes = 32

// NewSessionToken returns a fresh opaque session token. The token is
// the sole bearer credential for a session, so it must come from the
// platform CSPRNG; this function is the only place tokens are minted.
func NewSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
