// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/taibuivan/algoarena/internal/platform/sec"
)

// # Store Errors

// ErrSessionRevoked is returned by SessionRepository.Rotate when the token
// being rotated was revoked by a concurrent request. The losing caller must be
// treated as a potential replay and re-authenticate.
var ErrSessionRevoked = errors.New("auth: refresh token already revoked")

// # Repository Contracts

// UserRepository persists user accounts.
type UserRepository interface {
	/*
		Create inserts a new user account.

		Parameters:
		  - ctx: context for cancellation.
		  - user: the account to persist; ID and timestamps must be set.

		Returns:
		  - error: apperr.Duplicate when username or email is already taken.
	*/
	Create(ctx context.Context, user *User) error

	// FindByID returns the account with the given ID, or apperr.NotFound.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email, or apperr.NotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByUsername returns the account with the given username, or apperr.NotFound.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// UpdateRole changes the account role. Takes effect on the user's next
	// request because roles are resolved live, never embedded in tokens.
	UpdateRole(ctx context.Context, userID string, role sec.UserRole) error
}

// SessionRepository persists the refresh-token ledger.
type SessionRepository interface {
	// Create appends a new ledger entry for a freshly issued session.
	Create(ctx context.Context, token *RefreshToken) error

	/*
		FindByTokenHash looks up a ledger entry by token hash.

		Revoked and expired entries ARE returned: the service layer needs to
		see a revoked entry to detect replay of a rotated token.

		Returns:
		  - *RefreshToken: the matching entry.
		  - error: apperr.NotFound when no entry matches.
	*/
	FindByTokenHash(ctx context.Context, tokenHash string) (*RefreshToken, error)

	/*
		Rotate atomically revokes the old entry and inserts its replacement.

		The revoke is conditional on the entry still being active, so exactly
		one of any set of concurrent rotations of the same token succeeds.

		Returns:
		  - error: ErrSessionRevoked when a concurrent rotation won the race.
	*/
	Rotate(ctx context.Context, oldID string, replacement *RefreshToken) error

	// Revoke marks a single ledger entry revoked. Revoking an already-revoked
	// entry is a no-op, which makes logout idempotent.
	Revoke(ctx context.Context, id string) error

	// RevokeAll revokes every active entry belonging to the user.
	RevokeAll(ctx context.Context, userID string) error

	// RevokeOthers revokes every active entry belonging to the user except
	// the one identified by keepID.
	RevokeOthers(ctx context.Context, userID, keepID string) error

	// DeleteExpired removes entries whose expiry passed before the cutoff and
	// returns how many rows were removed. Run periodically by the janitor.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// ResetTokenRepository stores short-lived password-reset tokens.
type ResetTokenRepository interface {
	// Save stores the hashed reset token for the user with a TTL.
	Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error

	// Consume redeems the hashed reset token exactly once, returning the user
	// it was issued to, or apperr.NotFound when missing or expired.
	Consume(ctx context.Context, tokenHash string) (string, error)
}
