package category

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dublab/studio/internal/platform/apperr"
	"github.com/dublab/studio/internal/platform/validate"
	"github.com/dublab/studio/pkg/slug"
)

// CacheInvalidator drops derived data that embeds the category list.
type CacheInvalidator interface {
	InvalidateFormOptions(ctx context.Context) error
}

type Service struct {
	repo   Repository
	cache  CacheInvalidator
	logger *slog.Logger
}

// NewService wires the category service. cache may be nil.
func NewService(repo Repository, cache CacheInvalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (service *Service) List(context context.Context) ([]*Category, error) {
	return service.repo.List(context)
}

func (service *Service) Create(context context.Context, input Input) (*Category, error) {
	name, categorySlug, err := normalize(input)
	if err != nil {
		return nil, err
	}

	if err := service.ensureUnique(context, name, categorySlug, 0); err != nil {
		return nil, err
	}

	c := &Category{Name: name, Slug: categorySlug}
	if err := service.repo.Create(context, c); err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.logger.Info("category_created", slog.Int64("category_id", c.ID), slog.String("slug", c.Slug))
	return c, nil
}

// Update renames a category and re-derives its slug.
func (service *Service) Update(context context.Context, id int64, input Input) (*Category, error) {
	name, categorySlug, err := normalize(input)
	if err != nil {
		return nil, err
	}

	if _, err := service.repo.Get(context, id); err != nil {
		return nil, err
	}

	if err := service.ensureUnique(context, name, categorySlug, id); err != nil {
		return nil, err
	}

	c := &Category{ID: id, Name: name, Slug: categorySlug}
	if err := service.repo.Update(context, c); err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.logger.Info("category_updated", slog.Int64("category_id", id), slog.String("slug", categorySlug))
	return c, nil
}

// Delete removes a category that no project references.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.invalidate(context)
	service.logger.Warn("category_deleted", slog.Int64("category_id", id))
	return nil
}

func (service *Service) ensureUnique(context context.Context, name, categorySlug string, excludeID int64) error {
	existing, err := service.repo.FindConflict(context, name, categorySlug, excludeID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperr.Conflict(msgDuplicate)
	}
	return nil
}

func (service *Service) invalidate(context context.Context) {
	if service.cache == nil {
		return
	}
	if err := service.cache.InvalidateFormOptions(context); err != nil {
		service.logger.Warn("form_options_invalidate_failed", slog.Any("error", err))
	}
}

func normalize(input Input) (string, string, error) {
	name := strings.TrimSpace(input.Name)

	validator := &validate.Validator{}
	validator.MinLen(FieldName, name, nameMinLen).MaxLen(FieldName, name, nameMaxLen)
	if err := validator.Err(); err != nil {
		return "", "", err
	}

	categorySlug := slug.From(name)
	if categorySlug == "" {
		return "", "", validate.RequiredError(FieldName, "Name must contain at least one letter or digit")
	}

	return name, categorySlug, nil
}
