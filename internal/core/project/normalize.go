// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import (
	"fmt"
	"strings"

	"github.com/dublab/studio/internal/platform/validate"
	"github.com/dublab/studio/pkg/slice"
)

const (
	titleMaxLen       = 200
	slugMaxLen        = 200
	descriptionMaxLen = 10000
	publicIDMaxLen    = 200
	urlMaxLen         = 2048

	// PriceMax is the largest price a NUMERIC(10, 2) column holds.
	PriceMax = 99999999.99
)

/*
normalize validates a submission and converts it into the aggregate that will
be stored. It is the authoritative check: the admin form runs a subset of the
same rules, but anything reaching the API is re-validated here.

Normalisation rules:
  - Strings are trimmed; empty optional strings become nil.
  - Currency is upper-cased; anime projects drop price and currency.
  - Category ids and per-assignment character ids are de-duplicated in order.
*/
func (payload Payload) normalize() (*Aggregate, error) {
	validator := &validate.Validator{}

	aggregate := &Aggregate{
		Project: Project{
			Title:               strings.TrimSpace(payload.Title),
			Slug:                strings.TrimSpace(payload.Slug),
			Type:                payload.Type,
			Description:         trimmedOrNil(payload.Description),
			CoverImagePublicID:  trimmedOrNil(payload.CoverImagePublicID),
			BannerImagePublicID: trimmedOrNil(payload.BannerImagePublicID),
			IsPublished:         payload.IsPublished,
			ExternalWatchURL:    trimmedOrNil(payload.ExternalWatchURL),
			TrailerURL:          trimmedOrNil(payload.TrailerURL),
		},
	}

	// Scalars
	validator.Required(FieldTitle, aggregate.Title).MaxLen(FieldTitle, aggregate.Title, titleMaxLen)

	validator.Required(FieldSlug, aggregate.Slug)
	if aggregate.Slug != "" {
		validator.Slug(FieldSlug, aggregate.Slug).MaxLen(FieldSlug, aggregate.Slug, slugMaxLen)
	}

	validator.OneOf(FieldType, string(payload.Type), string(TypeGame), string(TypeAnime))

	releaseDate := strings.TrimSpace(payload.ReleaseDate)
	validator.Required(FieldReleaseDate, releaseDate)
	if releaseDate != "" {
		if parsed, err := validate.ParseDate(releaseDate); err != nil {
			validator.Custom(FieldReleaseDate, true, "Must be a valid date")
		} else {
			aggregate.ReleaseDate = parsed
		}
	}

	if aggregate.Description != nil {
		validator.MaxLen(FieldDescription, *aggregate.Description, descriptionMaxLen)
	}
	if aggregate.CoverImagePublicID != nil {
		validator.MaxLen(FieldCoverImagePublicID, *aggregate.CoverImagePublicID, publicIDMaxLen)
	}
	if aggregate.BannerImagePublicID != nil {
		validator.MaxLen(FieldBannerImagePublicID, *aggregate.BannerImagePublicID, publicIDMaxLen)
	}

	for field, value := range map[string]*string{
		FieldExternalWatchURL: aggregate.ExternalWatchURL,
		FieldTrailerURL:       aggregate.TrailerURL,
	} {
		if value != nil {
			validator.HTTPURL(field, *value).MaxLen(field, *value, urlMaxLen)
		}
	}

	// Commercial fields only exist for games.
	if payload.Type == TypeGame {
		aggregate.Price = payload.Price
		if currency := trimmedOrNil(payload.Currency); currency != nil {
			upper := strings.ToUpper(*currency)
			aggregate.Currency = &upper
		}

		if aggregate.Price != nil {
			validator.NonNegative(FieldPrice, *aggregate.Price)
			validator.Custom(FieldPrice, *aggregate.Price > PriceMax, fmt.Sprintf("Must be at most %.2f", PriceMax))
			validator.Custom(FieldCurrency, aggregate.Currency == nil, "Currency is required when a price is set")
		}
		if aggregate.Currency != nil {
			validator.Currency(FieldCurrency, *aggregate.Currency)
		}
	}

	aggregate.Assignments = normalizeAssignments(validator, payload.Assignments)
	aggregate.CategoryIDs = normalizeIDs(validator, FieldCategoryIDs, payload.CategoryIDs)

	if err := validator.Err(); err != nil {
		return nil, err
	}
	return aggregate, nil
}

// normalizeAssignments validates each assignment and rejects duplicate (artist, role) pairs.
func normalizeAssignments(validator *validate.Validator, assignments []Assignment) []Assignment {
	normalized := make([]Assignment, 0, len(assignments))
	seen := make(map[assignmentKey]int, len(assignments))

	for index, assignment := range assignments {
		position := index + 1

		if assignment.ArtistID <= 0 {
			validator.Custom(FieldAssignments, true, fmt.Sprintf("Assignment %d: an artist must be selected", position))
			continue
		}
		if !assignment.Role.IsValid() {
			validator.Custom(FieldAssignments, true, fmt.Sprintf("Assignment %d: %q is not a valid role", position, assignment.Role))
			continue
		}
		if len(assignment.CharacterIDs) > 0 && !assignment.Role.AcceptsCharacters() {
			validator.Custom(FieldAssignments, true, fmt.Sprintf("Assignment %d: only voice actors can be linked to characters", position))
			continue
		}

		key := assignmentKey{ArtistID: assignment.ArtistID, Role: assignment.Role}
		if first, duplicate := seen[key]; duplicate {
			validator.Custom(FieldAssignments, true, fmt.Sprintf("Assignment %d duplicates assignment %d (same artist and role)", position, first))
			continue
		}
		seen[key] = position

		normalized = append(normalized, Assignment{
			ArtistID:     assignment.ArtistID,
			Role:         assignment.Role,
			CharacterIDs: normalizeIDs(validator, FieldAssignments, assignment.CharacterIDs),
		})
	}

	return normalized
}

// normalizeIDs drops duplicates while keeping first-seen order. Non-positive ids are errors.
func normalizeIDs(validator *validate.Validator, field string, ids []int64) []int64 {
	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))

	for _, id := range ids {
		if id <= 0 {
			validator.Custom(field, true, fmt.Sprintf("Invalid id %d", id))
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	return unique
}

// references collects the foreign ids of a normalised aggregate.
func (aggregate *Aggregate) references() References {
	return References{
		ArtistIDs: slice.Unique(slice.Map(aggregate.Assignments, func(assignment Assignment) int64 {
			return assignment.ArtistID
		})),
		CategoryIDs: aggregate.CategoryIDs,
		CharacterIDs: slice.Unique(slice.FlatMap(aggregate.Assignments, func(assignment Assignment) []int64 {
			return assignment.CharacterIDs
		})),
	}
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
