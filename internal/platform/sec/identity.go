// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Identity is the authenticated caller attached to a request context by the
// protect middleware.
//
// # Why not reuse AccessClaims?
//
// Claims only prove what the token asserted at signing time. Identity is the
// live account state loaded from the credential store on each protected
// request, so deleted accounts are rejected and role changes apply instantly.
type Identity struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`

	// SessionID is carried over from the access token claims so handlers can
	// correlate actions with the refresh session that minted the token.
	SessionID string `json:"-"`
}

// IsAdmin reports whether the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
