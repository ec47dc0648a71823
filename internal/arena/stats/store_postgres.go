// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/algoarena/internal/platform/dberr"
)

// PostgresRepository implements Repository over the arena and users schemas.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed stats repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) DashboardSummary(ctx context.Context, userID string) (*DashboardSummary, error) {
	summary := &DashboardSummary{RecentActivity: []ActivityItem{}}

	// ── 1. Counters ──
	err := repository.pool.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM arena.challenge),
			count(s.id),
			count(DISTINCT s.challengeid) FILTER (WHERE s.status = 'Accepted'),
			count(s.id) FILTER (WHERE s.status = 'Pending')
		FROM arena.submission s
		WHERE s.userid = $1`,
		userID,
	).Scan(&summary.TotalChallenges, &summary.TotalSubmissions, &summary.Solved, &summary.Pending)
	if err != nil {
		return nil, dberr.Wrap(err, "dashboard")
	}

	// ── 2. Rank by accepted points among all users ──
	err = repository.pool.QueryRow(ctx, `
		WITH solved AS (
			SELECT DISTINCT s.userid, s.challengeid
			FROM arena.submission s
			WHERE s.status = 'Accepted'
		), scores AS (
			SELECT solved.userid, coalesce(sum(c.points), 0) AS points
			FROM solved
			JOIN arena.challenge c ON c.id = solved.challengeid
			GROUP BY solved.userid
		)
		SELECT coalesce(
			(SELECT rank FROM (
				SELECT userid, rank() OVER (ORDER BY points DESC) AS rank FROM scores
			) ranked WHERE userid = $1),
			(SELECT count(*) + 1 FROM scores)
		)`,
		userID,
	).Scan(&summary.Rank)
	if err != nil {
		return nil, dberr.Wrap(err, "dashboard")
	}

	// ── 3. Recent activity ──
	rows, err := repository.pool.Query(ctx, `
		SELECT s.id, c.title, s.status, s.submittedat
		FROM arena.submission s
		JOIN arena.challenge c ON c.id = s.challengeid
		WHERE s.userid = $1
		ORDER BY s.submittedat DESC
		LIMIT $2`,
		userID, RecentActivityLimit,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "dashboard")
	}
	defer rows.Close()

	for rows.Next() {
		var item ActivityItem
		if err := rows.Scan(&item.SubmissionID, &item.ChallengeTitle, &item.Status, &item.SubmittedAt); err != nil {
			return nil, dberr.Wrap(err, "dashboard")
		}
		summary.RecentActivity = append(summary.RecentActivity, item)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "dashboard")
	}

	return summary, nil
}

func (repository *PostgresRepository) ProfileStats(ctx context.Context, userID string) (*ProfileStats, error) {
	stats := &ProfileStats{}
	err := repository.pool.QueryRow(ctx, `
		SELECT
			count(s.id),
			count(s.id) FILTER (WHERE s.status = 'Accepted'),
			count(s.id) FILTER (WHERE s.status = 'Rejected'),
			count(s.id) FILTER (WHERE s.status = 'Pending'),
			coalesce(sum(c.points) FILTER (WHERE s.status = 'Accepted'), 0)
		FROM arena.submission s
		JOIN arena.challenge c ON c.id = s.challengeid
		WHERE s.userid = $1`,
		userID,
	).Scan(&stats.TotalSubmissions, &stats.Accepted, &stats.Rejected, &stats.Pending, &stats.Points)
	if err != nil {
		return nil, dberr.Wrap(err, "profile")
	}

	if stats.TotalSubmissions > 0 {
		stats.AcceptanceRate = float64(stats.Accepted) / float64(stats.TotalSubmissions) * 100
	}
	return stats, nil
}

func (repository *PostgresRepository) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	// A challenge counts once per user no matter how many accepted
	// submissions it has.
	rows, err := repository.pool.Query(ctx, `
		WITH solved AS (
			SELECT DISTINCT s.userid, s.challengeid
			FROM arena.submission s
			WHERE s.status = 'Accepted'
		)
		SELECT
			rank() OVER (ORDER BY coalesce(sum(c.points), 0) DESC, count(solved.challengeid) DESC),
			u.id, u.username,
			coalesce(sum(c.points), 0),
			count(solved.challengeid)
		FROM solved
		JOIN arena.challenge c ON c.id = solved.challengeid
		JOIN users.account u ON u.id = solved.userid
		GROUP BY u.id, u.username
		ORDER BY 1
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "leaderboard")
	}
	defer rows.Close()

	entries := make([]LeaderboardEntry, 0, limit)
	for rows.Next() {
		var entry LeaderboardEntry
		if err := rows.Scan(&entry.Rank, &entry.UserID, &entry.Username, &entry.Points, &entry.Solved); err != nil {
			return nil, dberr.Wrap(err, "leaderboard")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "leaderboard")
	}

	return entries, nil
}
