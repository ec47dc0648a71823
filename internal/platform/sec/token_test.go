// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/algoarena/internal/platform/sec"
)

func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	// 32 bytes hex-encoded.
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, sec.HashToken("abc"), sec.HashToken("abc"))
	assert.NotEqual(t, sec.HashToken("abc"), sec.HashToken("abd"))

	// SHA-256 hex digest length, regardless of input size.
	assert.Len(t, sec.HashToken(""), 64)
	assert.Len(t, sec.HashToken("a-rather-long-opaque-refresh-token-value"), 64)
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("hunter2hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, "hunter2hunter2", hash)
	assert.True(t, sec.CheckPasswordHash("hunter2hunter2", hash))
	assert.False(t, sec.CheckPasswordHash("wrong-password", hash))
}

func TestUserRole_Hierarchy(t *testing.T) {
	tests := []struct {
		name    string
		role    sec.UserRole
		target  sec.UserRole
		atLeast bool
	}{
		{"admin_meets_admin", sec.RoleAdmin, sec.RoleAdmin, true},
		{"admin_meets_user", sec.RoleAdmin, sec.RoleUser, true},
		{"user_meets_user", sec.RoleUser, sec.RoleUser, true},
		{"user_below_admin", sec.RoleUser, sec.RoleAdmin, false},
		{"unknown_below_user", sec.UserRole("ghost"), sec.RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.atLeast, tt.role.AtLeast(tt.target))
		})
	}

	assert.True(t, sec.RoleAdmin.IsValid())
	assert.True(t, sec.RoleUser.IsValid())
	assert.False(t, sec.UserRole("superuser").IsValid())
}
