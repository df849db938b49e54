// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// RoleAdmin manages the whole catalogue: projects, artists, categories, media.
	RoleAdmin UserRole = "admin"

	// RoleEditor can prepare content drafts but cannot use the admin endpoints.
	RoleEditor UserRole = "editor"

	// RoleMember is the default role for registered users.
	RoleMember UserRole = "member"
)

// IsValid reports whether r is a recognised role.
func (r UserRole) IsValid() bool {
	return r.level() > 0
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleEditor:
		return 20
	case RoleMember:
		return 10
	default:
		return 0
	}
}
