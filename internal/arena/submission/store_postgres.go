// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/algoarena/internal/platform/dberr"
	"github.com/taibuivan/algoarena/pkg/pagination"
)

// PostgresRepository implements Repository backed by the arena.submission table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed submission repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const submissionColumns = `id, challengeid, userid, repositoryurl, code, language, status, gradedby, gradedat, submittedat`

func (repository *PostgresRepository) Create(ctx context.Context, submission *Submission) error {
	_, err := repository.pool.Exec(ctx, `
		INSERT INTO arena.submission (id, challengeid, userid, repositoryurl, code, language, status, submittedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		submission.ID, submission.ChallengeID, submission.UserID,
		submission.RepositoryURL, submission.Code, submission.Language,
		submission.Status, submission.SubmittedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Submission")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Submission, error) {
	row := repository.pool.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM arena.submission WHERE id = $1`, id)

	var submission Submission
	err := row.Scan(
		&submission.ID, &submission.ChallengeID, &submission.UserID,
		&submission.RepositoryURL, &submission.Code, &submission.Language,
		&submission.Status, &submission.GradedBy, &submission.GradedAt,
		&submission.SubmittedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Submission")
	}
	return &submission, nil
}

func (repository *PostgresRepository) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]Submission, int64, error) {
	where, args := buildListFilter(filter)

	var total int64
	err := repository.pool.QueryRow(ctx,
		`SELECT count(*) FROM arena.submission `+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Submission")
	}

	query := fmt.Sprintf(
		`SELECT %s FROM arena.submission %s ORDER BY submittedat DESC LIMIT $%d OFFSET $%d`,
		submissionColumns, where, len(args)+1, len(args)+2,
	)
	rows, err := repository.pool.Query(ctx, query, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Submission")
	}
	defer rows.Close()

	submissions := make([]Submission, 0, page.Limit)
	for rows.Next() {
		var submission Submission
		err := rows.Scan(
			&submission.ID, &submission.ChallengeID, &submission.UserID,
			&submission.RepositoryURL, &submission.Code, &submission.Language,
			&submission.Status, &submission.GradedBy, &submission.GradedAt,
			&submission.SubmittedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Submission")
		}
		submissions = append(submissions, submission)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Submission")
	}

	return submissions, total, nil
}

func (repository *PostgresRepository) HasPendingSince(ctx context.Context, userID, challengeID string, cutoff time.Time) (bool, error) {
	var exists bool
	err := repository.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM arena.submission
			WHERE userid = $1 AND challengeid = $2 AND status = $3 AND submittedat > $4
		)`,
		userID, challengeID, StatusPending, cutoff,
	).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "Submission")
	}
	return exists, nil
}

func (repository *PostgresRepository) Grade(ctx context.Context, id, status, gradedBy string, gradedAt time.Time) error {
	tag, err := repository.pool.Exec(ctx, `
		UPDATE arena.submission
		SET status = $2, gradedby = $3, gradedat = $4
		WHERE id = $1`,
		id, status, gradedBy, gradedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Submission")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Submission")
	}
	return nil
}

func buildListFilter(filter ListFilter) (string, []any) {
	where := ""
	args := []any{}

	appendCondition := func(column, value string) {
		if value == "" {
			return
		}
		if where == "" {
			where = "WHERE "
		} else {
			where += " AND "
		}
		args = append(args, value)
		where += fmt.Sprintf("%s = $%d", column, len(args))
	}

	appendCondition("status", filter.Status)
	appendCondition("challengeid", filter.ChallengeID)
	appendCondition("userid", filter.UserID)
	return where, args
}
