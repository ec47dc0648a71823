// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package challenge_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/algoarena/internal/arena/challenge"
	"github.com/taibuivan/algoarena/internal/platform/apperr"
	"github.com/taibuivan/algoarena/pkg/pagination"
)

// fakeRepo keys challenges by ID and enforces slug uniqueness like the
// database constraint does.
type fakeRepo struct {
	entries map[string]*challenge.Challenge
	order   []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{entries: map[string]*challenge.Challenge{}}
}

func (repo *fakeRepo) Create(_ context.Context, entry *challenge.Challenge) error {
	for _, existing := range repo.entries {
		if existing.Slug == entry.Slug {
			return apperr.Duplicate("challenge already exists")
		}
	}
	clone := *entry
	repo.entries[entry.ID] = &clone
	repo.order = append(repo.order, entry.ID)
	return nil
}

func (repo *fakeRepo) FindByID(_ context.Context, id string) (*challenge.Challenge, error) {
	if entry, ok := repo.entries[id]; ok {
		clone := *entry
		return &clone, nil
	}
	return nil, apperr.NotFound("Challenge")
}

func (repo *fakeRepo) FindBySlug(_ context.Context, slug string) (*challenge.Challenge, error) {
	for _, entry := range repo.entries {
		if entry.Slug == slug {
			clone := *entry
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Challenge")
}

func (repo *fakeRepo) List(_ context.Context, filter challenge.ListFilter, page pagination.Params) ([]challenge.Challenge, int64, error) {
	matched := []challenge.Challenge{}
	for _, id := range repo.order {
		entry := repo.entries[id]
		if filter.Difficulty != "" && entry.Difficulty != filter.Difficulty {
			continue
		}
		if filter.Category != "" && entry.Category != filter.Category {
			continue
		}
		matched = append(matched, *entry)
	}
	return matched, int64(len(matched)), nil
}

func (repo *fakeRepo) Update(_ context.Context, entry *challenge.Challenge) error {
	if _, ok := repo.entries[entry.ID]; !ok {
		return apperr.NotFound("Challenge")
	}
	clone := *entry
	repo.entries[entry.ID] = &clone
	return nil
}

func (repo *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := repo.entries[id]; !ok {
		return apperr.NotFound("Challenge")
	}
	delete(repo.entries, id)
	return nil
}

func create(t *testing.T, service *challenge.Service, title string) *challenge.Challenge {
	t.Helper()
	entry, err := service.Create(context.Background(), challenge.CreateInput{
		Title:       title,
		Description: "Find the two numbers that sum to the target.",
		Difficulty:  challenge.DifficultyEasy,
	})
	require.NoError(t, err)
	return entry
}

/*
TestService_Create_Defaults verifies slug derivation and the points/category
defaults.
*/
func TestService_Create_Defaults(t *testing.T) {
	service := challenge.NewService(newFakeRepo())

	entry := create(t, service, "Two Sum")

	assert.Equal(t, "two-sum", entry.Slug)
	assert.Equal(t, challenge.DefaultPoints, entry.Points)
	assert.Equal(t, challenge.DefaultCategory, entry.Category)

	found, err := service.GetBySlug(context.Background(), "two-sum")
	require.NoError(t, err)
	assert.Equal(t, entry.ID, found.ID)
}

/*
TestService_Create_SlugCollision verifies that two challenges may share a
title: the second gets a suffixed slug instead of failing.
*/
func TestService_Create_SlugCollision(t *testing.T) {
	service := challenge.NewService(newFakeRepo())

	first := create(t, service, "Two Sum")
	second := create(t, service, "Two Sum")

	assert.Equal(t, "two-sum", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "two-sum-")
}

func TestService_Update_KeepsSlug(t *testing.T) {
	service := challenge.NewService(newFakeRepo())
	entry := create(t, service, "Two Sum")

	updated, err := service.Update(context.Background(), entry.ID, challenge.UpdateInput{
		Title:       "Two Sum II",
		Description: "Now with a sorted input.",
		Difficulty:  challenge.DifficultyMedium,
		Points:      250,
	})
	require.NoError(t, err)

	assert.Equal(t, "Two Sum II", updated.Title)
	assert.Equal(t, 250, updated.Points)
	// Existing links keep resolving.
	assert.Equal(t, "two-sum", updated.Slug)
}

func TestService_Delete(t *testing.T) {
	service := challenge.NewService(newFakeRepo())
	entry := create(t, service, "Two Sum")

	require.NoError(t, service.Delete(context.Background(), entry.ID))

	_, err := service.GetByID(context.Background(), entry.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_List_Filter(t *testing.T) {
	service := challenge.NewService(newFakeRepo())
	create(t, service, "Two Sum")

	_, err := service.Create(context.Background(), challenge.CreateInput{
		Title:       "Median of Streams",
		Description: "Maintain a running median.",
		Difficulty:  challenge.DifficultyHard,
		Points:      400,
	})
	require.NoError(t, err)

	hard, meta, err := service.List(context.Background(),
		challenge.ListFilter{Difficulty: challenge.DifficultyHard},
		pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)

	require.Len(t, hard, 1)
	assert.Equal(t, "Median of Streams", hard[0].Title)
	assert.Equal(t, 1, meta.Total)
}
