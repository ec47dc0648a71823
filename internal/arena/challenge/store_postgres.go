// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package challenge

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/algoarena/internal/platform/dberr"
	"github.com/taibuivan/algoarena/pkg/pagination"
)

// PostgresRepository implements Repository backed by the arena.challenge table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed challenge repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const challengeColumns = `id, slug, title, description, difficulty, points, category, createdat, updatedat`

func (repository *PostgresRepository) Create(ctx context.Context, challenge *Challenge) error {
	_, err := repository.pool.Exec(ctx, `
		INSERT INTO arena.challenge (id, slug, title, description, difficulty, points, category, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		challenge.ID, challenge.Slug, challenge.Title, challenge.Description,
		challenge.Difficulty, challenge.Points, challenge.Category,
		challenge.CreatedAt, challenge.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Challenge")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Challenge, error) {
	return repository.findOne(ctx, `WHERE id = $1`, id)
}

func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Challenge, error) {
	return repository.findOne(ctx, `WHERE slug = $1`, slug)
}

func (repository *PostgresRepository) findOne(ctx context.Context, clause string, arg any) (*Challenge, error) {
	row := repository.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM arena.challenge %s`, challengeColumns, clause), arg)

	var challenge Challenge
	err := row.Scan(
		&challenge.ID, &challenge.Slug, &challenge.Title, &challenge.Description,
		&challenge.Difficulty, &challenge.Points, &challenge.Category,
		&challenge.CreatedAt, &challenge.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Challenge")
	}
	return &challenge, nil
}

func (repository *PostgresRepository) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]Challenge, int64, error) {
	where, args := buildListFilter(filter)

	var total int64
	err := repository.pool.QueryRow(ctx,
		`SELECT count(*) FROM arena.challenge `+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Challenge")
	}

	query := fmt.Sprintf(
		`SELECT %s FROM arena.challenge %s ORDER BY createdat DESC LIMIT $%d OFFSET $%d`,
		challengeColumns, where, len(args)+1, len(args)+2,
	)
	rows, err := repository.pool.Query(ctx, query, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Challenge")
	}
	defer rows.Close()

	challenges := make([]Challenge, 0, page.Limit)
	for rows.Next() {
		var challenge Challenge
		err := rows.Scan(
			&challenge.ID, &challenge.Slug, &challenge.Title, &challenge.Description,
			&challenge.Difficulty, &challenge.Points, &challenge.Category,
			&challenge.CreatedAt, &challenge.UpdatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Challenge")
		}
		challenges = append(challenges, challenge)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Challenge")
	}

	return challenges, total, nil
}

func (repository *PostgresRepository) Update(ctx context.Context, challenge *Challenge) error {
	tag, err := repository.pool.Exec(ctx, `
		UPDATE arena.challenge
		SET title = $2, description = $3, difficulty = $4, points = $5, category = $6, updatedat = $7
		WHERE id = $1`,
		challenge.ID, challenge.Title, challenge.Description,
		challenge.Difficulty, challenge.Points, challenge.Category, challenge.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Challenge")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Challenge")
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := repository.pool.Exec(ctx, `DELETE FROM arena.challenge WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "Challenge")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Challenge")
	}
	return nil
}

// buildListFilter assembles the WHERE clause for List and its query arguments.
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

	appendCondition("difficulty", filter.Difficulty)
	appendCondition("category", filter.Category)
	return where, args
}
