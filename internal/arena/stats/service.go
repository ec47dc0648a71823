// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"

	"github.com/taibuivan/algoarena/internal/platform/ctxutil"
)

// Service serves the aggregation endpoints, caching the leaderboard.
type Service struct {
	repository Repository
	cache      Cache
}

// NewService wires the stats service.
func NewService(repository Repository, cache Cache) *Service {
	return &Service{repository: repository, cache: cache}
}

// Dashboard returns the caller's personal overview.
func (service *Service) Dashboard(ctx context.Context, userID string) (*DashboardSummary, error) {
	return service.repository.DashboardSummary(ctx, userID)
}

// Profile returns the caller's submission-history summary.
func (service *Service) Profile(ctx context.Context, userID string) (*ProfileStats, error) {
	return service.repository.ProfileStats(ctx, userID)
}

/*
Leaderboard returns the accepted-points ranking, served from cache when a copy
younger than [LeaderboardCacheTTL] exists.

A broken cache never breaks the endpoint: read and write failures are logged
and the ranking is computed from the database.
*/
func (service *Service) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	entries, found, err := service.cache.GetLeaderboard(ctx)
	if err != nil {
		ctxutil.GetLogger(ctx).Warn("leaderboard cache read failed", "error", err)
	} else if found {
		return entries, nil
	}

	entries, err = service.repository.Leaderboard(ctx, LeaderboardSize)
	if err != nil {
		return nil, err
	}

	if err := service.cache.SetLeaderboard(ctx, entries, LeaderboardCacheTTL); err != nil {
		ctxutil.GetLogger(ctx).Warn("leaderboard cache write failed", "error", err)
	}
	return entries, nil
}
