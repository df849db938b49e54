// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dublab/studio/internal/platform/apperr"
	"github.com/dublab/studio/internal/platform/objectstore"
	"github.com/dublab/studio/internal/platform/validate"
	"github.com/dublab/studio/pkg/imageurl"
	"github.com/dublab/studio/pkg/slice"
)

// # Service

// Service implements the project aggregate use cases.
type Service struct {
	repo   ProjectRepository
	cache  FormOptionsCache
	store  objectstore.Store
	images imageurl.Builder
	logger *slog.Logger
	now    func() time.Time
}

/*
NewService wires the project service.

cache and store may be nil: without a cache form options are read from the
database every time, without a store replaced images are not archived.
*/
func NewService(repo ProjectRepository, cache FormOptionsCache, store objectstore.Store, images imageurl.Builder, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		store:  store,
		images: images,
		logger: logger,
		now:    time.Now,
	}
}

var (
	coverTransform  = imageurl.Transform{Width: 400, Height: 600, Crop: "fill"}
	bannerTransform = imageurl.Transform{Width: 1600, Height: 600, Crop: "fill"}
)

// # Reads

func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Summary, int, error) {
	projects, total, err := service.repo.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for _, summary := range projects {
		summary.CoverImageURL = service.images.Ptr(summary.CoverImagePublicID, coverTransform, imageurl.PlaceholderCover)
	}
	return projects, total, nil
}

// Get returns the editable aggregate with resolved image URLs.
func (service *Service) Get(context context.Context, slug string) (*Aggregate, error) {
	aggregate, err := service.repo.FindBySlug(context, slug)
	if err != nil {
		return nil, err
	}

	service.decorate(aggregate)
	return aggregate, nil
}

/*
FormOptions returns the artist, category and role lists for the admin form.

Cache failures are logged and the lists are read from the database instead.
*/
func (service *Service) FormOptions(context context.Context) (*FormOptions, error) {
	if service.cache != nil {
		cached, err := service.cache.GetFormOptions(context)
		if err != nil {
			service.logger.Warn("form_options_cache_read_failed", slog.Any("error", err))
		}
		if cached != nil {
			return cached, nil
		}
	}

	options, err := service.repo.FormOptions(context)
	if err != nil {
		return nil, err
	}

	options.Roles = slice.Map(Roles, func(role Role) RoleOption {
		return RoleOption{Value: role, Label: role.Label()}
	})

	if service.cache != nil {
		if err := service.cache.SetFormOptions(context, options); err != nil {
			service.logger.Warn("form_options_cache_write_failed", slog.Any("error", err))
		}
	}
	return options, nil
}

// # Writes

/*
Create validates and stores a new project.

Returns:
  - *Aggregate: The stored aggregate, re-read from the database
  - error: 400 on validation or unknown references, 409 on slug collision
*/
func (service *Service) Create(context context.Context, payload Payload) (*Aggregate, error) {
	aggregate, err := payload.normalize()
	if err != nil {
		return nil, err
	}

	if err := service.checkReferences(context, 0, aggregate); err != nil {
		return nil, err
	}
	if err := service.ensureSlugFree(context, aggregate.Slug, 0); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, aggregate); err != nil {
		return nil, err
	}

	service.logger.Info("project_created",
		slog.Int64("project_id", aggregate.ID),
		slog.String("slug", aggregate.Slug),
		slog.Int("assignments", len(aggregate.Assignments)),
	)

	return service.Get(context, aggregate.Slug)
}

/*
Update replaces the project identified by slug with the submission.

Checks run in order and stop at the first failure: payload validation (400),
project lookup (404), references (400), slug uniqueness (409). The write
itself is one transaction. Replaced cover and banner images are archived
after the commit; archival problems are only logged.

Returns:
  - *Aggregate: The stored aggregate under its possibly new slug
*/
func (service *Service) Update(context context.Context, slug string, payload Payload) (*Aggregate, error) {
	aggregate, err := payload.normalize()
	if err != nil {
		return nil, err
	}

	current, err := service.repo.FindBySlug(context, slug)
	if err != nil {
		return nil, err
	}
	aggregate.ID = current.ID

	if err := service.checkReferences(context, current.ID, aggregate); err != nil {
		return nil, err
	}
	if err := service.ensureSlugFree(context, aggregate.Slug, current.ID); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, aggregate); err != nil {
		return nil, err
	}

	service.logger.Info("project_updated",
		slog.Int64("project_id", aggregate.ID),
		slog.String("slug", aggregate.Slug),
		slog.Int("assignments", len(aggregate.Assignments)),
		slog.Int("categories", len(aggregate.CategoryIDs)),
	)

	service.archiveReplaced(context, current.CoverImagePublicID, aggregate.CoverImagePublicID, "cover")
	service.archiveReplaced(context, current.BannerImagePublicID, aggregate.BannerImagePublicID, "banner")

	return service.Get(context, aggregate.Slug)
}

func (service *Service) ensureSlugFree(context context.Context, slug string, excludeID int64) error {
	taken, err := service.repo.SlugTaken(context, slug, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict(msgSlugTaken)
	}
	return nil
}

// checkReferences turns unknown artist, category or character ids into field errors.
func (service *Service) checkReferences(context context.Context, projectID int64, aggregate *Aggregate) error {
	refs := aggregate.references()
	if refs.Empty() {
		return nil
	}

	missing, err := service.repo.MissingReferences(context, projectID, refs)
	if err != nil {
		return err
	}
	if missing.Empty() {
		return nil
	}

	validator := &validate.Validator{}
	for _, id := range missing.ArtistIDs {
		validator.Custom(FieldAssignments, true, fmt.Sprintf("Artist %d does not exist", id))
	}
	for _, id := range missing.CharacterIDs {
		validator.Custom(FieldAssignments, true, fmt.Sprintf("Character %d does not belong to this project", id))
	}
	for _, id := range missing.CategoryIDs {
		validator.Custom(FieldCategoryIDs, true, fmt.Sprintf("Category %d does not exist", id))
	}
	return validator.Err()
}

func (service *Service) archiveReplaced(context context.Context, previous, next *string, kind string) {
	if service.store == nil || previous == nil {
		return
	}
	if next != nil && *next == *previous {
		return
	}
	// Absolute URLs and site paths were never uploaded by us.
	if strings.HasPrefix(*previous, "http") || strings.HasPrefix(*previous, "/") {
		return
	}

	archived, err := objectstore.Archive(context, service.store, *previous, kind, service.now())
	if err != nil {
		service.logger.Warn("project_image_archive_failed",
			slog.String("public_id", *previous),
			slog.String("kind", kind),
			slog.Any("error", err),
		)
		return
	}

	service.logger.Info("project_image_archived",
		slog.String("public_id", *previous),
		slog.String("archived_as", archived),
	)
}

func (service *Service) decorate(aggregate *Aggregate) {
	aggregate.CoverImageURL = service.images.Ptr(aggregate.CoverImagePublicID, coverTransform, imageurl.PlaceholderCover)
	aggregate.BannerImageURL = service.images.Ptr(aggregate.BannerImagePublicID, bannerTransform, imageurl.PlaceholderBanner)
}
