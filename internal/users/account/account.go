// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account lets a signed-in user read their profile and change their username.

Accounts are provisioned by the external identity provider; this package only
edits the username column and never creates or deletes rows.
*/
package account

import (
	"regexp"
	"time"
)

// User is the account row as exposed to its owner.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UsernameInput is the body of PATCH /api/profile.
type UsernameInput struct {
	Username string `json:"username"`
}

// UsernameResult is returned after a successful rename.
type UsernameResult struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

const (
	FieldUsername = "username"

	usernameMinLen = 3
	usernameMaxLen = 30
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

const (
	msgUsernameUnchanged = "new username is the same as the current one"
	msgUsernameTaken     = "This username is already taken"
	msgUsernameUpdated   = "Username updated"
)
