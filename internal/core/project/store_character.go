// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import "context"

// # Character Data Access

// CharacterRepository manages the characters that belong to a project.
type CharacterRepository interface {
	/*
		ProjectIDBySlug resolves a slug to its primary key.

		Returns:
		  - int64: The project id
		  - error: apperr.NotFound if missing
	*/
	ProjectIDBySlug(context context.Context, slug string) (int64, error)

	// ListCharacters returns a project's characters ordered by name.
	ListCharacters(context context.Context, projectID int64) ([]*Character, error)

	/*
		CreateCharacter inserts a character and populates its ID and CreatedAt.

		Returns:
		  - error: apperr.Conflict when the project already has a character with this name
	*/
	CreateCharacter(context context.Context, character *Character) error

	/*
		DeleteCharacter removes a character. Voice-actor links to it are
		removed by the database cascade.

		Returns:
		  - error: apperr.NotFound when the character is not part of the project
	*/
	DeleteCharacter(context context.Context, projectID, characterID int64) error
}
