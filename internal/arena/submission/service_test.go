// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package submission_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/algoarena/internal/arena/challenge"
	"github.com/taibuivan/algoarena/internal/arena/submission"
	"github.com/taibuivan/algoarena/internal/platform/apperr"
	"github.com/taibuivan/algoarena/internal/platform/sec"
	"github.com/taibuivan/algoarena/pkg/pagination"
)

// # In-Memory Fakes

type fakeRepo struct {
	entries map[string]*submission.Submission
	order   []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{entries: map[string]*submission.Submission{}}
}

func (repo *fakeRepo) Create(_ context.Context, entry *submission.Submission) error {
	clone := *entry
	repo.entries[entry.ID] = &clone
	repo.order = append(repo.order, entry.ID)
	return nil
}

func (repo *fakeRepo) FindByID(_ context.Context, id string) (*submission.Submission, error) {
	if entry, ok := repo.entries[id]; ok {
		clone := *entry
		return &clone, nil
	}
	return nil, apperr.NotFound("submission")
}

func (repo *fakeRepo) List(_ context.Context, filter submission.ListFilter, page pagination.Params) ([]submission.Submission, int64, error) {
	matched := []submission.Submission{}
	for _, id := range repo.order {
		entry := repo.entries[id]
		if filter.Status != "" && entry.Status != filter.Status {
			continue
		}
		if filter.ChallengeID != "" && entry.ChallengeID != filter.ChallengeID {
			continue
		}
		if filter.UserID != "" && entry.UserID != filter.UserID {
			continue
		}
		matched = append(matched, *entry)
	}
	total := int64(len(matched))

	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (repo *fakeRepo) HasPendingSince(_ context.Context, userID, challengeID string, cutoff time.Time) (bool, error) {
	for _, entry := range repo.entries {
		if entry.UserID == userID && entry.ChallengeID == challengeID &&
			entry.Status == submission.StatusPending && entry.SubmittedAt.After(cutoff) {
			return true, nil
		}
	}
	return false, nil
}

func (repo *fakeRepo) Grade(_ context.Context, id, status, gradedBy string, gradedAt time.Time) error {
	entry, ok := repo.entries[id]
	if !ok {
		return apperr.NotFound("submission")
	}
	entry.Status = status
	entry.GradedBy = &gradedBy
	entry.GradedAt = &gradedAt
	return nil
}

type fakeCatalogue struct {
	challenges map[string]*challenge.Challenge
}

func (catalogue *fakeCatalogue) GetByID(_ context.Context, id string) (*challenge.Challenge, error) {
	if entry, ok := catalogue.challenges[id]; ok {
		return entry, nil
	}
	return nil, apperr.NotFound("Challenge")
}

// # Harness

const challengeID = "0198c5f6-0000-7000-8000-000000000001"

func newService() (*submission.Service, *fakeRepo) {
	repo := newFakeRepo()
	catalogue := &fakeCatalogue{challenges: map[string]*challenge.Challenge{
		challengeID: {ID: challengeID, Title: "Two Sum", Points: 100},
	}}
	return submission.NewService(repo, catalogue), repo
}

func identity(id string, role sec.UserRole) *sec.Identity {
	return &sec.Identity{ID: id, Username: "u-" + id, Role: role}
}

func codePtr(code string) *string { return &code }

func submitOne(t *testing.T, service *submission.Service, userID string) *submission.Submission {
	t.Helper()
	entry, err := service.Submit(context.Background(), userID, submission.SubmitInput{
		ChallengeID: challengeID,
		Code:        codePtr("print(42)"),
		Language:    submission.LanguagePython,
	})
	require.NoError(t, err)
	return entry
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, code, ae.Code)
}

// # Submission

func TestService_Submit(t *testing.T) {
	service, _ := newService()

	entry := submitOne(t, service, "user-1")

	assert.Equal(t, submission.StatusPending, entry.Status)
	assert.Equal(t, "user-1", entry.UserID)
	assert.Nil(t, entry.GradedBy)
	assert.Nil(t, entry.GradedAt)
}

func TestService_Submit_UnknownChallenge(t *testing.T) {
	service, _ := newService()

	_, err := service.Submit(context.Background(), "user-1", submission.SubmitInput{
		ChallengeID: "0198c5f6-0000-7000-8000-00000000dead",
		Code:        codePtr("print(42)"),
		Language:    submission.LanguagePython,
	})
	assertCode(t, err, "NOT_FOUND")
}

/*
TestService_Submit_PendingThrottle verifies the one-pending-per-challenge
policy: a second submission inside the window gets 409, but grading the first
one lifts the block, and other users are never affected.
*/
func TestService_Submit_PendingThrottle(t *testing.T) {
	service, _ := newService()

	first := submitOne(t, service, "user-1")

	_, err := service.Submit(context.Background(), "user-1", submission.SubmitInput{
		ChallengeID: challengeID,
		Code:        codePtr("print(43)"),
		Language:    submission.LanguagePython,
	})
	assertCode(t, err, "CONFLICT")

	// A different user is not throttled.
	submitOne(t, service, "user-2")

	// Grading clears the pending state and lifts the throttle.
	_, err = service.Grade(context.Background(), identity("admin-1", sec.RoleAdmin),
		first.ID, submission.GradeInput{Status: submission.StatusRejected})
	require.NoError(t, err)

	submitOne(t, service, "user-1")
}

// # Visibility

/*
TestService_Get_OwnerOrAdmin verifies the visibility rule: the owner and any
admin read the submission, every other authenticated user gets 403.
*/
func TestService_Get_OwnerOrAdmin(t *testing.T) {
	service, _ := newService()
	entry := submitOne(t, service, "user-1")

	tests := []struct {
		name     string
		viewer   *sec.Identity
		wantCode string
	}{
		{"owner_reads", identity("user-1", sec.RoleUser), ""},
		{"admin_reads", identity("admin-1", sec.RoleAdmin), ""},
		{"stranger_forbidden", identity("user-2", sec.RoleUser), "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.Get(context.Background(), tt.viewer, entry.ID)
			if tt.wantCode != "" {
				assertCode(t, err, tt.wantCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, entry.ID, got.ID)
		})
	}
}

// # Grading

func TestService_Grade_StampsVerdict(t *testing.T) {
	service, repo := newService()
	entry := submitOne(t, service, "user-1")

	graded, err := service.Grade(context.Background(), identity("admin-1", sec.RoleAdmin),
		entry.ID, submission.GradeInput{Status: submission.StatusAccepted})
	require.NoError(t, err)

	assert.Equal(t, submission.StatusAccepted, graded.Status)
	require.NotNil(t, graded.GradedBy)
	assert.Equal(t, "admin-1", *graded.GradedBy)
	require.NotNil(t, graded.GradedAt)
	assert.False(t, graded.GradedAt.IsZero())

	// The verdict is persisted, not just returned.
	stored, err := repo.FindByID(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, submission.StatusAccepted, stored.Status)
}

func TestService_Grade_InvalidStatus(t *testing.T) {
	service, _ := newService()
	entry := submitOne(t, service, "user-1")

	for _, status := range []string{"", submission.StatusPending, "Approved"} {
		_, err := service.Grade(context.Background(), identity("admin-1", sec.RoleAdmin),
			entry.ID, submission.GradeInput{Status: status})
		assertCode(t, err, "VALIDATION_ERROR")
	}
}

// # Listing

func TestService_ListMine(t *testing.T) {
	service, _ := newService()
	submitOne(t, service, "user-1")
	submitOne(t, service, "user-2")

	entries, meta, err := service.ListMine(context.Background(), "user-1", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "user-1", entries[0].UserID)
	assert.Equal(t, 1, meta.Total)
}

func TestService_List_StatusFilter(t *testing.T) {
	service, _ := newService()
	first := submitOne(t, service, "user-1")
	submitOne(t, service, "user-2")

	_, err := service.Grade(context.Background(), identity("admin-1", sec.RoleAdmin),
		first.ID, submission.GradeInput{Status: submission.StatusAccepted})
	require.NoError(t, err)

	pending, meta, err := service.List(context.Background(),
		submission.ListFilter{Status: submission.StatusPending},
		pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)

	require.Len(t, pending, 1)
	assert.Equal(t, 1, meta.Total)
	assert.Equal(t, submission.StatusPending, pending[0].Status)
}
