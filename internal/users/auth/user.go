// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, RefreshToken) and logic for
authentication, authorization, and the session-token rotation lifecycle.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/taibuivan/algoarena/internal/platform/sec"
)

// # Domain Entities

// User represents a registered participant of the AlgoArena platform.
type User struct {
	ID           string       `json:"_id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"-"`
}

// Identity converts the account into the request-scoped identity attached by
// the protect middleware.
func (u *User) Identity() *sec.Identity {
	return &sec.Identity{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}

// RefreshToken is one revocable entry in the refresh-token ledger.
//
// # Invariants
//
//   - Only the SHA-256 hash of the opaque token is ever stored.
//   - Rotation marks the record revoked and stamps ReplacedByTokenHash,
//     producing exactly one active successor per chain.
//   - A revoked token presented again is evidence of theft or replay and
//     invalidates every active token for the owning user.
type RefreshToken struct {
	ID                  string     `json:"id"`
	UserID              string     `json:"user_id"`
	TokenHash           string     `json:"-"` // Hashed value of the refresh token. Omitted for security.
	ExpiresAt           time.Time  `json:"expires_at"`
	RevokedAt           *time.Time `json:"revoked_at,omitempty"`
	ReplacedByTokenHash *string    `json:"-"`
	IPAddress           string     `json:"ip_address"`
	UserAgent           string     `json:"user_agent"`
	CreatedAt           time.Time  `json:"created_at"`
}

// IsRevoked reports whether the ledger entry has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired reports whether the ledger entry has passed its absolute expiry.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// IsActive reports whether the entry can still be exchanged for a new session.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return !t.IsRevoked() && !t.IsExpired(now)
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldToken           = "token"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldMessage         = "message"
)
