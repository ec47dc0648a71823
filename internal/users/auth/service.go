// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/taibuivan/algoarena/internal/platform/apperr"
	"github.com/taibuivan/algoarena/internal/platform/ctxutil"
	"github.com/taibuivan/algoarena/internal/platform/sec"
)

// TokenProvider mints stateless access tokens for issued sessions.
type TokenProvider interface {
	GenerateAccessToken(userID, sessionID string) (string, error)
}

// ClientMeta captures request metadata recorded on each refresh-token ledger
// entry for audit purposes.
type ClientMeta struct {
	IPAddress string
	UserAgent string
}

// RegisterInput is the payload for creating a new account.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput is the payload for authenticating with credentials.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthSession is the result of a successful register, login, or refresh: a
// stateless access token plus the opaque refresh token backing the session.
type AuthSession struct {
	User             *User
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

/*
Service implements the authentication and session lifecycle.

# Session Model

Sessions are a server-side ledger of hashed refresh tokens. Access tokens are
short-lived JWTs verified statelessly; refresh tokens are long-lived opaque
strings exchanged exactly once each. Rotation, replay detection, and revocation
all operate on the ledger.
*/
type Service struct {
	users       UserRepository
	sessions    SessionRepository
	resetTokens ResetTokenRepository
	tokens      TokenProvider
	refreshTTL  time.Duration

	now func() time.Time // swappable for tests
}

// NewService wires the authentication service.
func NewService(
	users UserRepository,
	sessions SessionRepository,
	resetTokens ResetTokenRepository,
	tokens TokenProvider,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		users:       users,
		sessions:    sessions,
		resetTokens: resetTokens,
		tokens:      tokens,
		refreshTTL:  refreshTTL,
		now:         time.Now,
	}
}

// # Registration & Login

/*
Register creates a new account and immediately issues a session for it, so a
fresh registration behaves exactly like a login.

Parameters:
  - ctx: request context.
  - input: validated registration payload.
  - meta: client metadata stamped on the session ledger entry.

Returns:
  - *AuthSession: the issued session.
  - error: apperr.Duplicate when the username or email is taken.
*/
func (service *Service) Register(ctx context.Context, input RegisterInput, meta ClientMeta) (*AuthSession, error) {
	// ── 1. Reject taken identifiers with a precise message ──
	if _, err := service.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Duplicate("Email already in use")
	} else if !isNotFound(err) {
		return nil, err
	}
	if _, err := service.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperr.Duplicate("Username already taken")
	} else if !isNotFound(err) {
		return nil, err
	}

	// ── 2. Create the account ──
	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	currentTime := service.now()
	user := &User{
		ID:           newID(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         sec.RoleUser,
		CreatedAt:    currentTime,
		UpdatedAt:    currentTime,
	}
	if err := service.users.Create(ctx, user); err != nil {
		// The unique index is the last line of defense against a race between
		// the pre-check and the insert.
		return nil, err
	}

	return service.issueSession(ctx, user, meta)
}

// Login authenticates credentials and issues a new session.
//
// A wrong password and an unknown email return the identical generic error so
// responses cannot be used to enumerate accounts.
func (service *Service) Login(ctx context.Context, input LoginInput, meta ClientMeta) (*AuthSession, error) {
	user, err := service.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.InvalidCredentials()
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	return service.issueSession(ctx, user, meta)
}

// # Session Rotation

/*
Refresh exchanges a valid refresh token for a fresh access/refresh pair,
revoking the presented token in the same transaction.

# Replay Detection

A presented token that exists but is already revoked means the token leaked:
either it was stolen and rotated by the thief, or the legitimate rotation was
intercepted. Every active session for the owning user is revoked, forcing a
full re-authentication everywhere.
*/
func (service *Service) Refresh(ctx context.Context, rawToken string, meta ClientMeta) (*AuthSession, error) {
	if rawToken == "" {
		return nil, apperr.InvalidSession("Refresh token required")
	}

	// ── 1. Locate the ledger entry ──
	entry, err := service.sessions.FindByTokenHash(ctx, sec.HashToken(rawToken))
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.InvalidSession("Invalid refresh token")
		}
		return nil, err
	}

	currentTime := service.now()

	// ── 2. Replay check ──
	if entry.IsRevoked() {
		ctxutil.GetLogger(ctx).Warn("revoked refresh token presented, revoking all user sessions",
			"user_id", entry.UserID,
			"session_id", entry.ID,
		)
		if err := service.sessions.RevokeAll(ctx, entry.UserID); err != nil {
			return nil, err
		}
		return nil, apperr.InvalidSession("Session invalidated")
	}
	if entry.IsExpired(currentTime) {
		return nil, apperr.InvalidSession("Refresh token expired")
	}

	// ── 3. Confirm the account still exists ──
	user, err := service.users.FindByID(ctx, entry.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.InvalidSession("Account no longer exists")
		}
		return nil, err
	}

	// ── 4. Rotate: revoke old, insert successor, atomically ──
	rawReplacement, err := sec.GenerateSecureToken(RefreshTokenByteLength)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	replacement := &RefreshToken{
		ID:        newID(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(rawReplacement),
		ExpiresAt: currentTime.Add(service.refreshTTL),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		CreatedAt: currentTime,
	}
	if err := service.sessions.Rotate(ctx, entry.ID, replacement); err != nil {
		if errors.Is(err, ErrSessionRevoked) {
			// Lost a rotation race. The winner holds the live session; this
			// caller fails closed and must re-authenticate.
			return nil, apperr.InvalidSession("Session invalidated")
		}
		return nil, err
	}

	accessToken, err := service.tokens.GenerateAccessToken(user.ID, replacement.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &AuthSession{
		User:             user,
		AccessToken:      accessToken,
		RefreshToken:     rawReplacement,
		RefreshExpiresAt: replacement.ExpiresAt,
	}, nil
}

// # Revocation

// Logout revokes the session behind the presented refresh token.
//
// Logout is idempotent: an unknown, already-revoked, or absent token succeeds
// silently so clients can always clear their state.
func (service *Service) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	entry, err := service.sessions.FindByTokenHash(ctx, sec.HashToken(rawToken))
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	return service.sessions.Revoke(ctx, entry.ID)
}

// LogoutAll revokes every active session belonging to the user.
func (service *Service) LogoutAll(ctx context.Context, userID string) error {
	return service.sessions.RevokeAll(ctx, userID)
}

// # Identity

// GetUser returns the account with the given ID.
func (service *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	return service.users.FindByID(ctx, userID)
}

// LoadIdentity resolves the live identity for an access-token subject. It
// implements the middleware's identity loader so role changes and account
// deletions take effect on the next request, not at token expiry.
func (service *Service) LoadIdentity(ctx context.Context, userID string) (*sec.Identity, error) {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Identity(), nil
}

// SetUserRole changes an account's role. The change is visible on the user's
// very next request because roles are never embedded in access tokens.
func (service *Service) SetUserRole(ctx context.Context, userID string, role sec.UserRole) (*User, error) {
	if !role.IsValid() {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "role",
			Message: "Unknown role",
		})
	}
	if err := service.users.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	return service.users.FindByID(ctx, userID)
}

// # Password Management

/*
RequestPasswordReset issues a single-use reset token for the account behind the
email, valid for [ResetTokenTTL].

Returns:
  - string: the raw reset token, or "" when the email is unknown. The caller
    must respond identically in both cases to avoid account enumeration.
*/
func (service *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := service.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return "", nil
		}
		return "", err
	}

	rawToken, err := sec.GenerateSecureToken(ResetTokenByteLength)
	if err != nil {
		return "", apperr.Internal(err)
	}
	if err := service.resetTokens.Save(ctx, sec.HashToken(rawToken), user.ID, ResetTokenTTL); err != nil {
		return "", err
	}
	return rawToken, nil
}

// ResetPassword redeems a reset token, replaces the password, and revokes
// every active session for the account.
func (service *Service) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	userID, err := service.resetTokens.Consume(ctx, sec.HashToken(rawToken))
	if err != nil {
		if isNotFound(err) {
			return apperr.Unauthorized("Invalid or expired reset token")
		}
		return err
	}

	passwordHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := service.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return err
	}
	return service.sessions.RevokeAll(ctx, userID)
}

// ChangePassword replaces the caller's password after verifying the current
// one, then revokes every other session while keeping the current one alive.
func (service *Service) ChangePassword(ctx context.Context, userID, sessionID, currentPassword, newPassword string) error {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.InvalidCredentials()
	}

	passwordHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := service.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return err
	}
	return service.sessions.RevokeOthers(ctx, userID, sessionID)
}

// # Maintenance

// PurgeExpiredSessions deletes ledger entries that expired before now. Invoked
// hourly by the cron janitor.
func (service *Service) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return service.sessions.DeleteExpired(ctx, service.now())
}

// # Helpers

// issueSession mints a fresh refresh-token ledger entry plus a bound access token.
func (service *Service) issueSession(ctx context.Context, user *User, meta ClientMeta) (*AuthSession, error) {
	rawToken, err := sec.GenerateSecureToken(RefreshTokenByteLength)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	currentTime := service.now()
	entry := &RefreshToken{
		ID:        newID(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(rawToken),
		ExpiresAt: currentTime.Add(service.refreshTTL),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		CreatedAt: currentTime,
	}
	if err := service.sessions.Create(ctx, entry); err != nil {
		return nil, err
	}

	accessToken, err := service.tokens.GenerateAccessToken(user.ID, entry.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &AuthSession{
		User:             user,
		AccessToken:      accessToken,
		RefreshToken:     rawToken,
		RefreshExpiresAt: entry.ExpiresAt,
	}, nil
}

// newID generates a time-ordered UUIDv7, falling back to v4 when the clock
// source is unavailable.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func isNotFound(err error) bool {
	ae := apperr.As(err)
	return ae != nil && ae.Code == "NOT_FOUND"
}
