// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"time"
)

// Repository runs the read-only aggregation queries.
type Repository interface {
	// DashboardSummary computes the personal overview for a user.
	DashboardSummary(ctx context.Context, userID string) (*DashboardSummary, error)

	// ProfileStats computes the submission-history summary for a user.
	ProfileStats(ctx context.Context, userID string) (*ProfileStats, error)

	// Leaderboard computes the top accepted-points ranking.
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}

// Cache holds a computed leaderboard between aggregation runs.
type Cache interface {
	// GetLeaderboard returns the cached ranking, or ok=false on a miss. Cache
	// errors are reported but callers should fall back to the repository.
	GetLeaderboard(ctx context.Context) (entries []LeaderboardEntry, ok bool, err error)

	// SetLeaderboard stores the ranking for ttl.
	SetLeaderboard(ctx context.Context, entries []LeaderboardEntry, ttl time.Duration) error
}
