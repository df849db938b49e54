// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dublab/studio/internal/platform/validate"
	"github.com/dublab/studio/pkg/imageurl"
)

const (
	characterNameMaxLen        = 100
	characterDescriptionMaxLen = 5000
)

var characterTransform = imageurl.Transform{Width: 256, Height: 256, Crop: "fill", Gravity: "face"}

// # Characters

func (service *Service) ListCharacters(context context.Context, slug string) ([]*Character, error) {
	projectID, err := service.repo.ProjectIDBySlug(context, slug)
	if err != nil {
		return nil, err
	}

	characters, err := service.repo.ListCharacters(context, projectID)
	if err != nil {
		return nil, err
	}

	for _, character := range characters {
		service.decorateCharacter(character)
	}
	return characters, nil
}

func (service *Service) CreateCharacter(context context.Context, slug string, input CharacterInput) (*Character, error) {
	character := &Character{
		Name:          strings.TrimSpace(input.Name),
		Description:   trimmedOrNil(input.Description),
		ImagePublicID: trimmedOrNil(input.ImagePublicID),
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, character.Name).MaxLen(FieldName, character.Name, characterNameMaxLen)
	if character.Description != nil {
		validator.MaxLen(FieldDescription, *character.Description, characterDescriptionMaxLen)
	}
	if character.ImagePublicID != nil {
		validator.MaxLen("imagePublicId", *character.ImagePublicID, publicIDMaxLen)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	projectID, err := service.repo.ProjectIDBySlug(context, slug)
	if err != nil {
		return nil, err
	}
	character.ProjectID = projectID

	if err := service.repo.CreateCharacter(context, character); err != nil {
		return nil, err
	}

	service.decorateCharacter(character)
	service.logger.Info("character_created",
		slog.Int64("project_id", projectID),
		slog.Int64("character_id", character.ID),
	)
	return character, nil
}

// DeleteCharacter removes a character; voice-actor links to it go with it.
func (service *Service) DeleteCharacter(context context.Context, slug string, characterID int64) error {
	projectID, err := service.repo.ProjectIDBySlug(context, slug)
	if err != nil {
		return err
	}

	if err := service.repo.DeleteCharacter(context, projectID, characterID); err != nil {
		return err
	}

	service.logger.Warn("character_deleted",
		slog.Int64("project_id", projectID),
		slog.Int64("character_id", characterID),
	)
	return nil
}

func (service *Service) decorateCharacter(character *Character) {
	character.ImageURL = service.images.Ptr(character.ImagePublicID, characterTransform, imageurl.PlaceholderAvatar)
}
