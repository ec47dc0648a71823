// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constants

const (
	// UsernameMinLength is the minimum number of characters for a username.
	UsernameMinLength = 3
	// UsernameMaxLength is the maximum number of characters for a username.
	UsernameMaxLength = 32
	// PasswordMinLength is the minimum number of characters for a password.
	PasswordMinLength = 8
	// PasswordMaxLength caps password input; bcrypt silently truncates at 72 bytes.
	PasswordMaxLength = 72

	// RefreshTokenByteLength is the entropy, in bytes, of an opaque refresh token.
	RefreshTokenByteLength = 32
	// ResetTokenByteLength is the entropy, in bytes, of a password-reset token.
	ResetTokenByteLength = 32

	// ResetTokenTTL is how long a password-reset token stays redeemable.
	ResetTokenTTL = 1 * time.Hour
)
