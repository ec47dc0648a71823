// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package submission

import (
	"context"
	"time"

	"github.com/taibuivan/algoarena/pkg/pagination"
)

// ListFilter narrows the admin submission listing.
type ListFilter struct {
	// Status filters by review state when non-empty.
	Status string
	// ChallengeID filters by challenge when non-empty.
	ChallengeID string
	// UserID filters by submitter when non-empty.
	UserID string
}

// Repository persists submissions.
type Repository interface {
	// Create inserts a new submission.
	Create(ctx context.Context, submission *Submission) error

	// FindByID returns the submission with the given ID, or apperr.NotFound.
	FindByID(ctx context.Context, id string) (*Submission, error)

	// List returns one page of submissions matching the filter plus the total,
	// newest first.
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]Submission, int64, error)

	// HasPendingSince reports whether the user has a pending submission for
	// the challenge created after the cutoff.
	HasPendingSince(ctx context.Context, userID, challengeID string, cutoff time.Time) (bool, error)

	// Grade sets the review verdict and stamps the grader and grading time.
	Grade(ctx context.Context, id, status, gradedBy string, gradedAt time.Time) error
}
