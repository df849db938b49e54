package artist

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dublab/studio/internal/platform/validate"
	"github.com/dublab/studio/pkg/imageurl"
)

// CacheInvalidator drops derived data that embeds the artist list.
type CacheInvalidator interface {
	InvalidateFormOptions(ctx context.Context) error
}

type Service struct {
	repo   Repository
	cache  CacheInvalidator
	images imageurl.Builder
	logger *slog.Logger
}

func NewService(repo Repository, cache CacheInvalidator, images imageurl.Builder, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		images: images,
		logger: logger,
	}
}

var avatarTransform = imageurl.Transform{Width: 256, Height: 256, Crop: "fill", Gravity: "face"}

func (service *Service) ListArtists(context context.Context, filter Filter, limit, offset int) ([]*Artist, int, error) {
	artists, total, err := service.repo.ListArtists(context, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, a := range artists {
		service.decorate(a)
	}
	return artists, total, nil
}

func (service *Service) GetArtist(context context.Context, id int64) (*Artist, error) {
	a, err := service.repo.GetArtist(context, id)
	if err != nil {
		return nil, err
	}
	service.decorate(a)
	return a, nil
}

func (service *Service) CreateArtist(context context.Context, input Input) (*Artist, error) {
	a, err := fromInput(input)
	if err != nil {
		return nil, err
	}

	if err := service.repo.CreateArtist(context, a); err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.decorate(a)
	service.logger.Info("artist_created", slog.Int64("artist_id", a.ID), slog.String("name", a.FullName()))
	return a, nil
}

func (service *Service) UpdateArtist(context context.Context, id int64, input Input) (*Artist, error) {
	a, err := fromInput(input)
	if err != nil {
		return nil, err
	}
	a.ID = id

	if err := service.repo.UpdateArtist(context, a); err != nil {
		return nil, err
	}

	service.invalidate(context)
	service.decorate(a)
	service.logger.Info("artist_updated", slog.Int64("artist_id", a.ID))
	return a, nil
}

func (service *Service) DeleteArtist(context context.Context, id int64) error {
	if err := service.repo.DeleteArtist(context, id); err != nil {
		return err
	}

	service.invalidate(context)
	service.logger.Warn("artist_deleted", slog.Int64("artist_id", id))
	return nil
}

func (service *Service) decorate(a *Artist) {
	a.ImageURL = service.images.Ptr(a.ImagePublicID, avatarTransform, imageurl.PlaceholderAvatar)
}

func (service *Service) invalidate(context context.Context) {
	if service.cache == nil {
		return
	}
	if err := service.cache.InvalidateFormOptions(context); err != nil {
		service.logger.Warn("form_options_invalidate_failed", slog.Any("error", err))
	}
}

func fromInput(input Input) (*Artist, error) {
	a := &Artist{
		FirstName:     strings.TrimSpace(input.FirstName),
		LastName:      strings.TrimSpace(input.LastName),
		Bio:           trimmedOrNil(input.Bio),
		ImagePublicID: trimmedOrNil(input.ImagePublicID),
	}

	validator := &validate.Validator{}
	validator.Required(FieldFirstName, a.FirstName).
		MaxLen(FieldFirstName, a.FirstName, 100).
		MaxLen(FieldLastName, a.LastName, 100)

	if a.Bio != nil {
		validator.MaxLen(FieldBio, *a.Bio, 5000)
	}
	if a.ImagePublicID != nil {
		validator.MaxLen(FieldImagePublicID, *a.ImagePublicID, 200)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}
	return a, nil
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
