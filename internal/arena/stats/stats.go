// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package stats implements the read-only aggregation surface: the user
// dashboard, profile statistics, and the points leaderboard.
package stats

import "time"

// # Aggregation Results

// DashboardSummary is the personal overview shown after login.
type DashboardSummary struct {
	TotalChallenges  int64          `json:"total_challenges"`
	TotalSubmissions int64          `json:"total_submissions"`
	Solved           int64          `json:"solved"`
	Pending          int64          `json:"pending"`
	Rank             int64          `json:"rank"`
	RecentActivity   []ActivityItem `json:"recent_activity"`
}

// ActivityItem is one row of the dashboard's recent-activity feed.
type ActivityItem struct {
	SubmissionID   string    `json:"submission_id"`
	ChallengeTitle string    `json:"challenge_title"`
	Status         string    `json:"status"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// ProfileStats summarises a user's submission history.
type ProfileStats struct {
	TotalSubmissions int64 `json:"total_submissions"`
	Accepted         int64 `json:"accepted"`
	Rejected         int64 `json:"rejected"`
	Pending          int64 `json:"pending"`
	// AcceptanceRate is accepted/total in percent, 0 when nothing submitted.
	AcceptanceRate float64 `json:"acceptance_rate"`
	Points         int64   `json:"points"`
}

// LeaderboardEntry is one ranked row of the public leaderboard.
type LeaderboardEntry struct {
	Rank     int64  `json:"rank"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Points   int64  `json:"points"`
	Solved   int64  `json:"solved"`
}

// # Constants

const (
	// RecentActivityLimit caps the dashboard activity feed.
	RecentActivityLimit = 5
	// LeaderboardSize is how many ranked rows the leaderboard returns.
	LeaderboardSize = 50
	// LeaderboardCacheTTL is how long a computed leaderboard is served from
	// cache before the aggregation runs again.
	LeaderboardCacheTTL = 60 * time.Second
)
