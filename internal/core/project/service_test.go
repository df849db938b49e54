// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dublab/studio/internal/core/project"
	"github.com/dublab/studio/internal/platform/apperr"
	"github.com/dublab/studio/internal/platform/objectstore"
	"github.com/dublab/studio/pkg/imageurl"
	"github.com/dublab/studio/pkg/pointer"
)

func newService(repo project.ProjectRepository, cache project.FormOptionsCache, store objectstore.Store) *project.Service {
	return project.NewService(repo, cache, store,
		imageurl.New("res.cloudinary.com", "dublab"),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func gamePayload(slug string) project.Payload {
	return project.Payload{
		Title:       "Half-Life 2",
		Slug:        slug,
		Type:        project.TypeGame,
		ReleaseDate: "2004-11-16",
		Price:       pointer.To(9.99),
		Currency:    pointer.To("usd"),
		Assignments: []project.Assignment{
			{ArtistID: 1, Role: project.RoleVoiceActor},
			{ArtistID: 2, Role: project.RoleDirector},
		},
		CategoryIDs: []int64{1},
	}
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected an AppError, got %v", err)
	require.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	return appErr.FieldMap()
}

func TestService_CreateNormalizes(t *testing.T) {
	ctx := context.Background()
	service := newService(newMemoryRepository(), nil, nil)

	payload := gamePayload("  half-life-2 ")
	payload.CategoryIDs = []int64{1, 2, 1}
	payload.Description = pointer.To("   ")

	created, err := service.Create(ctx, payload)
	require.NoError(t, err)

	assert.Equal(t, "half-life-2", created.Slug)
	assert.Equal(t, "USD", pointer.Val(created.Currency))
	assert.Nil(t, created.Description)
	assert.Equal(t, []int64{1, 2}, created.CategoryIDs)
	assert.Equal(t, "/images/placeholder-cover.jpg", created.CoverImageURL)
	require.Len(t, created.Assignments, 2)
	assert.NotZero(t, created.Assignments[0].ID)
}

func TestService_AnimeDropsCommercialFields(t *testing.T) {
	service := newService(newMemoryRepository(), nil, nil)

	payload := gamePayload("frieren")
	payload.Type = project.TypeAnime
	payload.Price = pointer.To(-5.0)
	payload.Currency = pointer.To("x")

	created, err := service.Create(context.Background(), payload)
	require.NoError(t, err)
	assert.Nil(t, created.Price)
	assert.Nil(t, created.Currency)
}

func TestService_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*project.Payload)
		field  string
	}{
		{"missing title", func(p *project.Payload) { p.Title = " " }, project.FieldTitle},
		{"bad slug", func(p *project.Payload) { p.Slug = "Half Life" }, project.FieldSlug},
		{"unknown type", func(p *project.Payload) { p.Type = "movie" }, project.FieldType},
		{"missing release date", func(p *project.Payload) { p.ReleaseDate = "" }, project.FieldReleaseDate},
		{"garbage release date", func(p *project.Payload) { p.ReleaseDate = "16/11/2004" }, project.FieldReleaseDate},
		{"negative price", func(p *project.Payload) { p.Price = pointer.To(-5.0) }, project.FieldPrice},
		{"price above column range", func(p *project.Payload) { p.Price = pointer.To(1e8) }, project.FieldPrice},
		{"price without currency", func(p *project.Payload) { p.Currency = nil }, project.FieldCurrency},
		{"short currency", func(p *project.Payload) { p.Currency = pointer.To("TL") }, project.FieldCurrency},
		{"relative trailer", func(p *project.Payload) { p.TrailerURL = pointer.To("youtube.com/x") }, project.FieldTrailerURL},
		{"unknown role", func(p *project.Payload) { p.Assignments[0].Role = "SINGER" }, project.FieldAssignments},
		{"missing artist", func(p *project.Payload) { p.Assignments[0].ArtistID = 0 }, project.FieldAssignments},
		{"characters on a director", func(p *project.Payload) {
			p.Assignments[1].CharacterIDs = []int64{1}
		}, project.FieldAssignments},
		{"duplicate artist and role", func(p *project.Payload) {
			p.Assignments = append(p.Assignments, project.Assignment{ArtistID: 2, Role: project.RoleDirector})
		}, project.FieldAssignments},
		{"non-positive category", func(p *project.Payload) { p.CategoryIDs = []int64{0} }, project.FieldCategoryIDs},
		{"unknown artist", func(p *project.Payload) { p.Assignments[0].ArtistID = 99 }, project.FieldAssignments},
		{"unknown category", func(p *project.Payload) { p.CategoryIDs = []int64{42} }, project.FieldCategoryIDs},
		{"character on a new project", func(p *project.Payload) { p.Assignments[0].CharacterIDs = []int64{7} }, project.FieldAssignments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryRepository()
			service := newService(repo, nil, nil)

			payload := gamePayload("half-life-2")
			tt.mutate(&payload)

			_, err := service.Create(context.Background(), payload)
			assert.NotEmpty(t, fieldErrors(t, err)[tt.field])
			assert.Empty(t, repo.projects, "nothing may be written")
		})
	}
}

func TestService_UpdateReplacesAssignments(t *testing.T) {
	ctx := context.Background()
	service := newService(newMemoryRepository(), nil, nil)

	created, err := service.Create(ctx, gamePayload("half-life-2"))
	require.NoError(t, err)
	directorID := created.Assignments[1].ID

	// [A, B] -> [B, C]
	payload := gamePayload("half-life-2")
	payload.Assignments = []project.Assignment{
		{ArtistID: 2, Role: project.RoleDirector},
		{ArtistID: 3, Role: project.RoleTranslator},
	}
	payload.CategoryIDs = []int64{2}

	updated, err := service.Update(ctx, "half-life-2", payload)
	require.NoError(t, err)

	require.Len(t, updated.Assignments, 2)
	assert.Equal(t, directorID, updated.Assignments[0].ID, "kept pair keeps its row")
	assert.Equal(t, int64(2), updated.Assignments[0].ArtistID)
	assert.Equal(t, int64(3), updated.Assignments[1].ArtistID)
	assert.Equal(t, []int64{2}, updated.CategoryIDs)
}

func TestService_UpdateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	service := newService(newMemoryRepository(), nil, nil)

	_, err := service.Create(ctx, gamePayload("half-life-2"))
	require.NoError(t, err)

	first, err := service.Update(ctx, "half-life-2", gamePayload("half-life-2"))
	require.NoError(t, err)
	second, err := service.Update(ctx, "half-life-2", gamePayload("half-life-2"))
	require.NoError(t, err)

	assert.Equal(t, first.Assignments, second.Assignments)
	assert.Equal(t, first.CategoryIDs, second.CategoryIDs)
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.Price, second.Price)
}

func TestService_UpdateSlugConflictLeavesRowsUntouched(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := newService(repo, nil, nil)

	_, err := service.Create(ctx, gamePayload("portal"))
	require.NoError(t, err)
	before, err := service.Create(ctx, gamePayload("half-life-2"))
	require.NoError(t, err)

	payload := gamePayload("portal")
	payload.Title = "Renamed"
	payload.Assignments = nil

	_, err = service.Update(ctx, "half-life-2", payload)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))
	assert.Equal(t, "A project with this slug already exists", err.Error())

	after, err := service.Get(ctx, "half-life-2")
	require.NoError(t, err)
	assert.Equal(t, before.Title, after.Title)
	assert.Equal(t, before.Assignments, after.Assignments)
}

func TestService_UpdateFollowsSlugChange(t *testing.T) {
	ctx := context.Background()
	service := newService(newMemoryRepository(), nil, nil)

	_, err := service.Create(ctx, gamePayload("hl2"))
	require.NoError(t, err)

	updated, err := service.Update(ctx, "hl2", gamePayload("half-life-2"))
	require.NoError(t, err)
	assert.Equal(t, "half-life-2", updated.Slug)

	_, err = service.Get(ctx, "hl2")
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestService_UpdateUnknownSlug(t *testing.T) {
	service := newService(newMemoryRepository(), nil, nil)

	_, err := service.Update(context.Background(), "missing", gamePayload("missing"))
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))

	// Validation runs before the lookup.
	invalid := gamePayload("missing")
	invalid.Title = ""
	_, err = service.Update(context.Background(), "missing", invalid)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestService_VoiceActorCharacters(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := newService(repo, nil, nil)

	_, err := service.Create(ctx, gamePayload("half-life-2"))
	require.NoError(t, err)
	_, err = service.Create(ctx, gamePayload("portal"))
	require.NoError(t, err)

	gordon, err := service.CreateCharacter(ctx, "half-life-2", project.CharacterInput{Name: "Gordon Freeman"})
	require.NoError(t, err)
	glados, err := service.CreateCharacter(ctx, "portal", project.CharacterInput{Name: "GLaDOS"})
	require.NoError(t, err)

	payload := gamePayload("half-life-2")
	payload.Assignments[0].CharacterIDs = []int64{gordon.ID, gordon.ID}
	updated, err := service.Update(ctx, "half-life-2", payload)
	require.NoError(t, err)
	assert.Equal(t, []int64{gordon.ID}, updated.Assignments[0].CharacterIDs)

	payload.Assignments[0].CharacterIDs = []int64{glados.ID}
	_, err = service.Update(ctx, "half-life-2", payload)
	assert.NotEmpty(t, fieldErrors(t, err)[project.FieldAssignments], "characters must belong to the edited project")

	require.NoError(t, service.DeleteCharacter(ctx, "half-life-2", gordon.ID))
	reloaded, err := service.Get(ctx, "half-life-2")
	require.NoError(t, err)
	assert.Empty(t, reloaded.Assignments[0].CharacterIDs)
}

func TestService_CharacterNameUnique(t *testing.T) {
	ctx := context.Background()
	service := newService(newMemoryRepository(), nil, nil)
	_, err := service.Create(ctx, gamePayload("half-life-2"))
	require.NoError(t, err)

	_, err = service.CreateCharacter(ctx, "half-life-2", project.CharacterInput{Name: "Alyx Vance"})
	require.NoError(t, err)
	_, err = service.CreateCharacter(ctx, "half-life-2", project.CharacterInput{Name: "Alyx Vance"})
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))

	_, err = service.CreateCharacter(ctx, "half-life-2", project.CharacterInput{Name: ""})
	assert.NotEmpty(t, fieldErrors(t, err)[project.FieldName])

	characters, err := service.ListCharacters(ctx, "half-life-2")
	require.NoError(t, err)
	require.Len(t, characters, 1)
	assert.Equal(t, "/images/default-avatar.png", characters[0].ImageURL)
}

func TestService_ArchivesReplacedImages(t *testing.T) {
	ctx := context.Background()
	store := objectstore.NewMemory()
	require.NoError(t, store.Put(ctx, "project_covers/hl2_aaaa", strings.NewReader("old"), 3, "image/png"))
	require.NoError(t, store.Put(ctx, "project_banners/hl2_bbbb", strings.NewReader("banner"), 6, "image/png"))

	service := newService(newMemoryRepository(), nil, store)

	payload := gamePayload("half-life-2")
	payload.CoverImagePublicID = pointer.To("project_covers/hl2_aaaa")
	payload.BannerImagePublicID = pointer.To("project_banners/hl2_bbbb")
	created, err := service.Create(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/dublab/image/upload/w_400,h_600,c_fill,q_auto,f_auto/project_covers/hl2_aaaa", created.CoverImageURL)

	payload.CoverImagePublicID = pointer.To("project_covers/hl2_cccc")
	_, err = service.Update(ctx, "half-life-2", payload)
	require.NoError(t, err)

	_, stillThere := store.Get("project_covers/hl2_aaaa")
	assert.False(t, stillThere, "replaced cover is moved to the archive")
	_, bannerKept := store.Get("project_banners/hl2_bbbb")
	assert.True(t, bannerKept, "unchanged banner stays")
	assert.Equal(t, 2, store.Len())
}

func TestService_ArchiveFailureIsNotSurfaced(t *testing.T) {
	ctx := context.Background()
	store := objectstore.NewMemory()
	service := newService(newMemoryRepository(), nil, store)

	payload := gamePayload("half-life-2")
	payload.CoverImagePublicID = pointer.To("project_covers/never_uploaded")
	_, err := service.Create(ctx, payload)
	require.NoError(t, err)

	payload.CoverImagePublicID = nil
	updated, err := service.Update(ctx, "half-life-2", payload)
	require.NoError(t, err)
	assert.Nil(t, updated.CoverImagePublicID)
}

func TestService_WriteFailureIsReturned(t *testing.T) {
	repo := newMemoryRepository()
	repo.failWrite = apperr.Conflict("A referenced artist, category or character was removed while saving. Reload the form and try again")
	service := newService(repo, nil, nil)

	_, err := service.Create(context.Background(), gamePayload("half-life-2"))
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))

	repo.failWrite = errors.New("connection reset")
	_, err = service.Create(context.Background(), gamePayload("half-life-2"))
	assert.Error(t, err)
}

func TestService_FormOptionsCached(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	cache := &memoryCache{}
	service := newService(repo, cache, nil)

	options, err := service.FormOptions(ctx)
	require.NoError(t, err)
	assert.Len(t, options.Artists, 3)
	assert.Len(t, options.Categories, 2)
	require.Len(t, options.Roles, len(project.Roles))
	assert.Equal(t, project.RoleOption{Value: project.RoleVoiceActor, Label: "Voice Actor"}, options.Roles[0])

	_, err = service.FormOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.formOptionsReads)

	require.NoError(t, cache.InvalidateFormOptions(ctx))
	_, err = service.FormOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.formOptionsReads)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	service := newService(newMemoryRepository(), nil, nil)

	_, err := service.Create(ctx, gamePayload("half-life-2"))
	require.NoError(t, err)
	anime := gamePayload("frieren")
	anime.Title = "Frieren"
	anime.Type = project.TypeAnime
	_, err = service.Create(ctx, anime)
	require.NoError(t, err)

	projects, total, err := service.List(ctx, project.Filter{Type: project.TypeAnime}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, projects, 1)
	assert.Equal(t, "frieren", projects[0].Slug)
	assert.Equal(t, "/images/placeholder-cover.jpg", projects[0].CoverImageURL)
}
