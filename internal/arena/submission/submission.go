// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package submission implements solution submissions: creation with the
// pending-throttle policy, owner-or-admin visibility, and admin grading.
package submission

import "time"

// # Domain Entity

// Submission is one solution handed in for a challenge, as code text or a
// repository link.
type Submission struct {
	ID            string     `json:"_id"`
	ChallengeID   string     `json:"challenge_id"`
	UserID        string     `json:"user_id"`
	RepositoryURL *string    `json:"repository_url,omitempty"`
	Code          *string    `json:"code,omitempty"`
	Language      string     `json:"language"`
	Status        string     `json:"status"`
	GradedBy      *string    `json:"graded_by,omitempty"`
	GradedAt      *time.Time `json:"graded_at,omitempty"`
	SubmittedAt   time.Time  `json:"submitted_at"`
}

// IsPending reports whether the submission awaits review.
func (s *Submission) IsPending() bool {
	return s.Status == StatusPending
}

// # Submission Constants

// Review states.
const (
	StatusPending  = "Pending"
	StatusAccepted = "Accepted"
	StatusRejected = "Rejected"
)

// Accepted submission languages.
const (
	LanguageJavaScript = "javascript"
	LanguageTypeScript = "typescript"
	LanguagePython     = "python"
	LanguageJava       = "java"
	LanguageCpp        = "cpp"
	LanguageGo         = "go"
	LanguageOther      = "other"
)

// Languages lists every accepted language value.
var Languages = []string{
	LanguageJavaScript, LanguageTypeScript, LanguagePython,
	LanguageJava, LanguageCpp, LanguageGo, LanguageOther,
}

const (
	// CodeMaxLength caps inline code submissions.
	CodeMaxLength = 100000

	// PendingThrottleWindow is how long one pending submission blocks another
	// for the same challenge by the same user.
	PendingThrottleWindow = 1 * time.Hour
)

// Field identifiers used in validation errors.
const (
	FieldChallengeID   = "challenge_id"
	FieldRepositoryURL = "repository_url"
	FieldCode          = "code"
	FieldLanguage      = "language"
	FieldStatus        = "status"
)
