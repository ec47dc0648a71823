// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/algoarena/internal/arena/stats"
)

// fakeRepo counts aggregation calls so tests can assert cache behaviour.
type fakeRepo struct {
	leaderboardCalls int
	entries          []stats.LeaderboardEntry
	dashboard        *stats.DashboardSummary
	profile          *stats.ProfileStats
}

func (repo *fakeRepo) DashboardSummary(_ context.Context, _ string) (*stats.DashboardSummary, error) {
	return repo.dashboard, nil
}

func (repo *fakeRepo) ProfileStats(_ context.Context, _ string) (*stats.ProfileStats, error) {
	return repo.profile, nil
}

func (repo *fakeRepo) Leaderboard(_ context.Context, _ int) ([]stats.LeaderboardEntry, error) {
	repo.leaderboardCalls++
	return repo.entries, nil
}

// brokenCache always fails, exercising the fall-through path.
type brokenCache struct{}

func (brokenCache) GetLeaderboard(_ context.Context) ([]stats.LeaderboardEntry, bool, error) {
	return nil, false, errors.New("redis gone")
}

func (brokenCache) SetLeaderboard(_ context.Context, _ []stats.LeaderboardEntry, _ time.Duration) error {
	return errors.New("redis gone")
}

func newRedisCache(t *testing.T) (*stats.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return stats.NewRedisCache(client), server
}

var ranking = []stats.LeaderboardEntry{
	{Rank: 1, UserID: "user-1", Username: "alice", Points: 500, Solved: 5},
	{Rank: 2, UserID: "user-2", Username: "bob", Points: 300, Solved: 3},
}

/*
TestService_Leaderboard_Caching verifies that the aggregation runs once per
cache window: the second call is served from Redis.
*/
func TestService_Leaderboard_Caching(t *testing.T) {
	repo := &fakeRepo{entries: ranking}
	cache, server := newRedisCache(t)
	service := stats.NewService(repo, cache)
	ctx := context.Background()

	first, err := service.Leaderboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, ranking, first)
	assert.Equal(t, 1, repo.leaderboardCalls)

	second, err := service.Leaderboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, ranking, second)
	assert.Equal(t, 1, repo.leaderboardCalls, "second call must hit the cache")

	// After the TTL the aggregation runs again.
	server.FastForward(2 * stats.LeaderboardCacheTTL)
	_, err = service.Leaderboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.leaderboardCalls)
}

/*
TestService_Leaderboard_BrokenCache verifies that cache failures degrade to
direct aggregation instead of failing the endpoint.
*/
func TestService_Leaderboard_BrokenCache(t *testing.T) {
	repo := &fakeRepo{entries: ranking}
	service := stats.NewService(repo, brokenCache{})

	entries, err := service.Leaderboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ranking, entries)
	assert.Equal(t, 1, repo.leaderboardCalls)
}

func TestService_DashboardAndProfile(t *testing.T) {
	repo := &fakeRepo{
		dashboard: &stats.DashboardSummary{TotalChallenges: 12, Solved: 4, Rank: 2},
		profile:   &stats.ProfileStats{TotalSubmissions: 10, Accepted: 4, AcceptanceRate: 40, Points: 400},
	}
	service := stats.NewService(repo, brokenCache{})
	ctx := context.Background()

	dashboard, err := service.Dashboard(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), dashboard.Solved)

	profile, err := service.Profile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, float64(40), profile.AcceptanceRate)
}

func TestRedisCache_CorruptEntryIsMiss(t *testing.T) {
	cache, server := newRedisCache(t)

	require.NoError(t, server.Set("stats:leaderboard:top", "{not json"))

	_, found, err := cache.GetLeaderboard(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
}
