// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package challenge

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taibuivan/algoarena/internal/platform/apperr"
	"github.com/taibuivan/algoarena/pkg/pagination"
	"github.com/taibuivan/algoarena/pkg/slug"
)

// CreateInput is the payload for authoring a new challenge.
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Points      int    `json:"points"`
	Category    string `json:"category"`
}

// UpdateInput is the payload for editing an existing challenge.
type UpdateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Points      int    `json:"points"`
	Category    string `json:"category"`
}

// Service implements catalogue operations. Role gating happens at the router;
// the service assumes its callers are already authorized.
type Service struct {
	challenges Repository

	now func() time.Time
}

// NewService wires the challenge service.
func NewService(challenges Repository) *Service {
	return &Service{challenges: challenges, now: time.Now}
}

// List returns one page of the catalogue.
func (service *Service) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]Challenge, pagination.Meta, error) {
	challenges, total, err := service.challenges.List(ctx, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return challenges, pagination.NewMeta(page.Page, page.Limit, int(total)), nil
}

// GetBySlug returns a single catalogue entry.
func (service *Service) GetBySlug(ctx context.Context, challengeSlug string) (*Challenge, error) {
	return service.challenges.FindBySlug(ctx, challengeSlug)
}

// GetByID returns a single catalogue entry by ID.
func (service *Service) GetByID(ctx context.Context, id string) (*Challenge, error) {
	return service.challenges.FindByID(ctx, id)
}

/*
Create authors a new challenge.

The slug is derived from the title; on a collision a short random suffix is
appended and the insert retried once, so two challenges may share a title but
never a slug.
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*Challenge, error) {
	currentTime := service.now()
	entry := &Challenge{
		ID:          newID(),
		Slug:        slug.From(input.Title),
		Title:       input.Title,
		Description: input.Description,
		Difficulty:  input.Difficulty,
		Points:      input.Points,
		Category:    input.Category,
		CreatedAt:   currentTime,
		UpdatedAt:   currentTime,
	}
	if entry.Points == 0 {
		entry.Points = DefaultPoints
	}
	if entry.Category == "" {
		entry.Category = DefaultCategory
	}

	err := service.challenges.Create(ctx, entry)
	if isDuplicate(err) {
		entry.Slug = entry.Slug + "-" + newID()[:8]
		err = service.challenges.Create(ctx, entry)
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Update edits an existing challenge. The slug is immutable so existing links
// and submissions keep resolving.
func (service *Service) Update(ctx context.Context, id string, input UpdateInput) (*Challenge, error) {
	entry, err := service.challenges.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry.Title = input.Title
	entry.Description = input.Description
	entry.Difficulty = input.Difficulty
	entry.Points = input.Points
	entry.Category = input.Category
	entry.UpdatedAt = service.now()
	if entry.Points == 0 {
		entry.Points = DefaultPoints
	}
	if entry.Category == "" {
		entry.Category = DefaultCategory
	}

	if err := service.challenges.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes a challenge from the catalogue.
func (service *Service) Delete(ctx context.Context, id string) error {
	return service.challenges.Delete(ctx, id)
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func isDuplicate(err error) bool {
	ae := apperr.As(err)
	return ae != nil && ae.Code == "DUPLICATE"
}
