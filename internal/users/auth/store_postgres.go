// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/algoarena/internal/platform/dberr"
	"github.com/taibuivan/algoarena/internal/platform/sec"
)

// # User Repository (Postgres)

// PostgresUserRepository implements UserRepository backed by the users.account table.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a Postgres-backed user repository.
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = `id, username, email, passwordhash, role, createdat, updatedat`

func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	_, err := repository.pool.Exec(ctx, `
		INSERT INTO users.account (id, username, email, passwordhash, role, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Username, user.Email, user.PasswordHash, string(user.Role), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	return nil
}

func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return repository.findOne(ctx, `WHERE id = $1`, id)
}

func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return repository.findOne(ctx, `WHERE email = $1`, email)
}

func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return repository.findOne(ctx, `WHERE username = $1`, username)
}

func (repository *PostgresUserRepository) findOne(ctx context.Context, clause string, arg any) (*User, error) {
	row := repository.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM users.account %s`, userColumns, clause), arg)

	var user User
	var role string
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	user.Role = sec.UserRole(role)
	return &user, nil
}

func (repository *PostgresUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	tag, err := repository.pool.Exec(ctx, `
		UPDATE users.account SET passwordhash = $2, updatedat = now()
		WHERE id = $1`,
		userID, passwordHash,
	)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "User")
	}
	return nil
}

func (repository *PostgresUserRepository) UpdateRole(ctx context.Context, userID string, role sec.UserRole) error {
	tag, err := repository.pool.Exec(ctx, `
		UPDATE users.account SET role = $2, updatedat = now()
		WHERE id = $1`,
		userID, string(role),
	)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "User")
	}
	return nil
}

// # Session Repository (Postgres)

// PostgresSessionRepository implements SessionRepository backed by the
// users.refresh_token ledger table.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSessionRepository creates a Postgres-backed session repository.
func NewPostgresSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

const sessionColumns = `id, userid, tokenhash, expiresat, revokedat, replacedbytokenhash, ipaddress, useragent, createdat`

func (repository *PostgresSessionRepository) Create(ctx context.Context, token *RefreshToken) error {
	_, err := repository.pool.Exec(ctx, `
		INSERT INTO users.refresh_token (id, userid, tokenhash, expiresat, ipaddress, useragent, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		token.ID, token.UserID, token.TokenHash, token.ExpiresAt, token.IPAddress, token.UserAgent, token.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Session")
	}
	return nil
}

func (repository *PostgresSessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*RefreshToken, error) {
	row := repository.pool.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM users.refresh_token
		WHERE tokenhash = $1`,
		tokenHash,
	)

	var token RefreshToken
	err := row.Scan(
		&token.ID, &token.UserID, &token.TokenHash, &token.ExpiresAt,
		&token.RevokedAt, &token.ReplacedByTokenHash,
		&token.IPAddress, &token.UserAgent, &token.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Session")
	}
	return &token, nil
}

/*
Rotate revokes the old ledger entry and inserts its replacement in a single
transaction.

The revoke is a conditional UPDATE guarded by `revokedat IS NULL`; when it
affects zero rows a concurrent rotation already won and ErrSessionRevoked is
returned so the caller fails closed.
*/
func (repository *PostgresSessionRepository) Rotate(ctx context.Context, oldID string, replacement *RefreshToken) error {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "Session")
	}
	defer tx.Rollback(ctx)

	// ── 1. Conditionally revoke the old entry ──
	tag, err := tx.Exec(ctx, `
		UPDATE users.refresh_token
		SET revokedat = now(), replacedbytokenhash = $2
		WHERE id = $1 AND revokedat IS NULL`,
		oldID, replacement.TokenHash,
	)
	if err != nil {
		return dberr.Wrap(err, "Session")
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionRevoked
	}

	// ── 2. Insert the replacement entry ──
	_, err = tx.Exec(ctx, `
		INSERT INTO users.refresh_token (id, userid, tokenhash, expiresat, ipaddress, useragent, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		replacement.ID, replacement.UserID, replacement.TokenHash, replacement.ExpiresAt,
		replacement.IPAddress, replacement.UserAgent, replacement.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Session")
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "Session")
	}
	return nil
}

func (repository *PostgresSessionRepository) Revoke(ctx context.Context, id string) error {
	_, err := repository.pool.Exec(ctx, `
		UPDATE users.refresh_token SET revokedat = now()
		WHERE id = $1 AND revokedat IS NULL`,
		id,
	)
	if err != nil {
		return dberr.Wrap(err, "Session")
	}
	return nil
}

func (repository *PostgresSessionRepository) RevokeAll(ctx context.Context, userID string) error {
	_, err := repository.pool.Exec(ctx, `
		UPDATE users.refresh_token SET revokedat = now()
		WHERE userid = $1 AND revokedat IS NULL`,
		userID,
	)
	if err != nil {
		return dberr.Wrap(err, "Session")
	}
	return nil
}

func (repository *PostgresSessionRepository) RevokeOthers(ctx context.Context, userID, keepID string) error {
	_, err := repository.pool.Exec(ctx, `
		UPDATE users.refresh_token SET revokedat = now()
		WHERE userid = $1 AND id <> $2 AND revokedat IS NULL`,
		userID, keepID,
	)
	if err != nil {
		return dberr.Wrap(err, "Session")
	}
	return nil
}

func (repository *PostgresSessionRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := repository.pool.Exec(ctx, `
		DELETE FROM users.refresh_token WHERE expiresat < $1`,
		cutoff,
	)
	if err != nil {
		return 0, dberr.Wrap(err, "Session")
	}
	return tag.RowsAffected(), nil
}
