// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dublab/studio/internal/platform/apperr"
	"github.com/dublab/studio/internal/platform/database/schema"
	"github.com/dublab/studio/internal/platform/dberr"
)

// # Character Repository Implementation

var characterColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s",
	schema.CoreCharacter.ID, schema.CoreCharacter.ProjectID, schema.CoreCharacter.Name,
	schema.CoreCharacter.Description, schema.CoreCharacter.ImagePublicID, schema.CoreCharacter.CreatedAt)

func (repository *projectRepository) ProjectIDBySlug(context context.Context, slug string) (int64, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CoreProject.ID, schema.CoreProject.Table, schema.CoreProject.Slug)

	var id int64
	err := repository.pool.QueryRow(context, query, slug).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperr.NotFound("Project")
	}
	if err != nil {
		return 0, dberr.Wrap(err, "find_project_id")
	}
	return id, nil
}

func (repository *projectRepository) ListCharacters(context context.Context, projectID int64) ([]*Character, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		characterColumns, schema.CoreCharacter.Table, schema.CoreCharacter.ProjectID, schema.CoreCharacter.Name)

	rows, err := repository.pool.Query(context, query, projectID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_characters")
	}
	defer rows.Close()

	characters := make([]*Character, 0)
	for rows.Next() {
		c := &Character{}
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Name, &c.Description, &c.ImagePublicID, &c.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_character")
		}
		characters = append(characters, c)
	}

	return characters, dberr.Wrap(rows.Err(), "list_characters")
}

func (repository *projectRepository) CreateCharacter(context context.Context, character *Character) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`,
		schema.CoreCharacter.Table,
		schema.CoreCharacter.ProjectID, schema.CoreCharacter.Name, schema.CoreCharacter.Description, schema.CoreCharacter.ImagePublicID,
		schema.CoreCharacter.ID, schema.CoreCharacter.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		character.ProjectID, character.Name, character.Description, character.ImagePublicID,
	).Scan(&character.ID, &character.CreatedAt)

	switch {
	case dberr.IsUniqueViolation(err):
		return apperr.Conflict(msgCharacterExists)
	case dberr.IsForeignKeyViolation(err):
		return apperr.NotFound("Project")
	}
	return dberr.Wrap(err, "create_character")
}

func (repository *projectRepository) DeleteCharacter(context context.Context, projectID, characterID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CoreCharacter.Table, schema.CoreCharacter.ID, schema.CoreCharacter.ProjectID)

	cmd, err := repository.pool.Exec(context, query, characterID, projectID)
	if err != nil {
		return dberr.Wrap(err, "delete_character")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Character")
	}
	return nil
}
