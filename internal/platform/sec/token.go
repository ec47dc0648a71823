// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken produces a high-entropy opaque token string.
//
// # Security Property
//
// The token's unpredictability — not its structure — is what makes it safe.
// It is NOT a signed token: possession of the exact string is the credential.
func GenerateSecureToken(byteLength int) (string, error) {
	buffer := make([]byte, byteLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}

// HashToken computes the deterministic SHA-256 hex digest of a raw token.
//
// Only this digest is ever persisted; the raw token is handed to the client
// exactly once and cannot be recovered from storage.
func HashToken(rawToken string) string {
	digest := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(digest[:])
}
