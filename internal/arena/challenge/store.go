// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package challenge

import (
	"context"

	"github.com/taibuivan/algoarena/pkg/pagination"
)

// ListFilter narrows the public catalogue listing.
type ListFilter struct {
	// Difficulty filters by tier when non-empty.
	Difficulty string
	// Category filters by category when non-empty.
	Category string
}

// Repository persists the challenge catalogue.
type Repository interface {
	// Create inserts a new challenge. Returns apperr.Duplicate when the slug
	// is already taken.
	Create(ctx context.Context, challenge *Challenge) error

	// FindByID returns the challenge with the given ID, or apperr.NotFound.
	FindByID(ctx context.Context, id string) (*Challenge, error)

	// FindBySlug returns the challenge with the given slug, or apperr.NotFound.
	FindBySlug(ctx context.Context, slug string) (*Challenge, error)

	// List returns one page of the catalogue plus the unfiltered total for
	// pagination metadata. Ordered by creation time, newest first.
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]Challenge, int64, error)

	// Update replaces the mutable fields of an existing challenge.
	Update(ctx context.Context, challenge *Challenge) error

	// Delete removes a challenge. Returns apperr.NotFound when absent.
	Delete(ctx context.Context, id string) error
}
