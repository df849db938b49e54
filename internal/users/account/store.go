// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import "context"

// AccountRepository defines persistence for user accounts.
type AccountRepository interface {
	/*
		FindByID returns the account with the given id.

		Returns:
		  - *User: The account
		  - error: apperr.NotFound when the identity provider has not provisioned it
	*/
	FindByID(context context.Context, id string) (*User, error)

	// UsernameTaken reports whether any other account uses username, ignoring case.
	UsernameTaken(context context.Context, username, excludeID string) (bool, error)

	/*
		UpdateUsername renames the account and refreshes UpdatedAt.

		Returns:
		  - *User: The updated row
		  - error: apperr.Conflict when a concurrent rename took the name first
	*/
	UpdateUsername(context context.Context, id, username string) (*User, error)
}
