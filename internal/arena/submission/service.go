// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package submission

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taibuivan/algoarena/internal/arena/challenge"
	"github.com/taibuivan/algoarena/internal/platform/apperr"
	"github.com/taibuivan/algoarena/internal/platform/sec"
	"github.com/taibuivan/algoarena/pkg/pagination"
)

// ChallengeCatalogue resolves challenge references on submission.
type ChallengeCatalogue interface {
	GetByID(ctx context.Context, id string) (*challenge.Challenge, error)
}

// SubmitInput is the payload for handing in a solution. Exactly one of
// RepositoryURL or Code must be set.
type SubmitInput struct {
	ChallengeID   string  `json:"challenge_id"`
	RepositoryURL *string `json:"repository_url,omitempty"`
	Code          *string `json:"code,omitempty"`
	Language      string  `json:"language"`
}

// GradeInput is the payload for an admin verdict.
type GradeInput struct {
	Status string `json:"status"`
}

// Service implements the submission workflow.
//
// # Authorization Model
//
// Listing all submissions and grading are admin surfaces enforced at the
// router. Reading a single submission is enforced here: only the submitting
// user or an admin may see it, any other authenticated caller gets 403.
type Service struct {
	submissions Repository
	catalogue   ChallengeCatalogue

	now func() time.Time
}

// NewService wires the submission service.
func NewService(submissions Repository, catalogue ChallengeCatalogue) *Service {
	return &Service{submissions: submissions, catalogue: catalogue, now: time.Now}
}

/*
Submit hands in a solution for a challenge.

# Throttle Policy

One pending submission per challenge per user per hour: while an ungraded
submission younger than the window exists, another submission for the same
challenge is rejected with 409 so graders are not flooded with near-duplicates.
*/
func (service *Service) Submit(ctx context.Context, userID string, input SubmitInput) (*Submission, error) {
	// The challenge must exist before anything is persisted.
	if _, err := service.catalogue.GetByID(ctx, input.ChallengeID); err != nil {
		return nil, err
	}

	currentTime := service.now()
	pending, err := service.submissions.HasPendingSince(
		ctx, userID, input.ChallengeID, currentTime.Add(-PendingThrottleWindow))
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperr.Conflict("You already have a pending submission for this challenge")
	}

	entry := &Submission{
		ID:            newID(),
		ChallengeID:   input.ChallengeID,
		UserID:        userID,
		RepositoryURL: input.RepositoryURL,
		Code:          input.Code,
		Language:      input.Language,
		Status:        StatusPending,
		SubmittedAt:   currentTime,
	}
	if err := service.submissions.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Get returns a single submission, visible only to its owner or an admin.
func (service *Service) Get(ctx context.Context, viewer *sec.Identity, id string) (*Submission, error) {
	entry, err := service.submissions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.UserID != viewer.ID && !viewer.IsAdmin() {
		return nil, apperr.Forbidden("You do not have access to this submission")
	}
	return entry, nil
}

// List returns one page of submissions matching the filter. Admin only.
func (service *Service) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]Submission, pagination.Meta, error) {
	submissions, total, err := service.submissions.List(ctx, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return submissions, pagination.NewMeta(page.Page, page.Limit, int(total)), nil
}

// ListMine returns one page of the caller's own submissions.
func (service *Service) ListMine(ctx context.Context, userID string, page pagination.Params) ([]Submission, pagination.Meta, error) {
	return service.List(ctx, ListFilter{UserID: userID}, page)
}

// Grade records an admin verdict, stamping who graded and when. Re-grading is
// allowed; the stamp always reflects the most recent verdict.
func (service *Service) Grade(ctx context.Context, grader *sec.Identity, id string, input GradeInput) (*Submission, error) {
	if input.Status != StatusAccepted && input.Status != StatusRejected {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldStatus,
			Message: "Must be Accepted or Rejected",
		})
	}

	if err := service.submissions.Grade(ctx, id, input.Status, grader.ID, service.now()); err != nil {
		return nil, err
	}
	return service.submissions.FindByID(ctx, id)
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
