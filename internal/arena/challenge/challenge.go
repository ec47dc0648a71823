// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package challenge implements the coding-challenge catalogue: public
// browsing plus admin-only authoring.
package challenge

import "time"

// # Domain Entity

// Challenge is one entry in the public challenge catalogue.
type Challenge struct {
	ID          string    `json:"_id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Difficulty  string    `json:"difficulty"`
	Points      int       `json:"points"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// # Catalogue Constants

// Recognised difficulty tiers.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

const (
	// DefaultPoints is awarded for an accepted solution unless overridden.
	DefaultPoints = 100
	// DefaultCategory applies when the author leaves the category blank.
	DefaultCategory = "Logic"

	// TitleMaxLength caps challenge titles.
	TitleMaxLength = 120
	// DescriptionMaxLength caps challenge descriptions.
	DescriptionMaxLength = 20000
	// PointsMax caps the reward for a single challenge.
	PointsMax = 1000
)

// Field identifiers used in validation errors.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDifficulty  = "difficulty"
	FieldPoints      = "points"
	FieldCategory    = "category"
)
