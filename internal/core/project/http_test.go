// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dublab/studio/internal/core/project"
	"github.com/dublab/studio/internal/platform/middleware"
	"github.com/dublab/studio/internal/platform/respond"
	"github.com/dublab/studio/internal/platform/sec"
)

type roleVerifier struct{}

// VerifyToken treats the token text as the caller's role.
func (roleVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if !sec.UserRole(token).IsValid() {
		return nil, errors.New("invalid")
	}
	return &sec.AuthClaims{UserID: "u-" + token, Role: token}, nil
}

func newRouter(repo *memoryRepository) http.Handler {
	handler := project.NewHandler(newService(repo, nil, nil))

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(roleVerifier{}))
	router.Route("/api/admin", func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Route("/projects", handler.RegisterRoutes)
	})
	return router
}

func do(router http.Handler, method, path, role, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if role != "" {
		request.Header.Set("Authorization", "Bearer "+role)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

const hl2 = `{
	"title": "Half-Life 2",
	"slug": "half-life-2",
	"type": "game",
	"releaseDate": "2004-11-16T00:00:00Z",
	"isPublished": true,
	"price": 9.99,
	"currency": "USD",
	"assignments": [{"artistId": 1, "role": "VOICE_ACTOR"}, {"artistId": 2, "role": "DIRECTOR"}],
	"categoryIds": [1]
}`

func TestHTTP_AuthorizationComesFirst(t *testing.T) {
	repo := newMemoryRepository()
	router := newRouter(repo)

	for _, role := range []string{"", "member", "editor"} {
		assert.Equal(t, http.StatusForbidden, do(router, http.MethodPost, "/api/admin/projects", role, `{"title":`).Code, role)
		assert.Equal(t, http.StatusForbidden, do(router, http.MethodPut, "/api/admin/projects/missing", role, hl2).Code, role)
	}
	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodGet, "/api/admin/projects", "root", "").Code,
		"an unverifiable token is rejected before the role check")
	assert.Empty(t, repo.projects)
}

func TestHTTP_CreateAndUpdate(t *testing.T) {
	router := newRouter(newMemoryRepository())

	recorder := do(router, http.MethodPost, "/api/admin/projects", "admin", hl2)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created project.Aggregate
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, "half-life-2", created.Slug)
	require.Len(t, created.Assignments, 2)

	recorder = do(router, http.MethodPost, "/api/admin/projects", "admin", hl2)
	assert.Equal(t, http.StatusConflict, recorder.Code)

	renamed := strings.Replace(hl2, `"slug": "half-life-2"`, `"slug": "hl2"`, 1)
	recorder = do(router, http.MethodPut, "/api/admin/projects/half-life-2", "admin", renamed)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var updated project.Aggregate
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
	assert.Equal(t, "hl2", updated.Slug)
	assert.Equal(t, created.Assignments, updated.Assignments)

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/admin/projects/hl2", "admin", "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/api/admin/projects/half-life-2", "admin", "").Code)
}

func TestHTTP_ValidationEnvelope(t *testing.T) {
	router := newRouter(newMemoryRepository())

	body := strings.Replace(hl2, `{"artistId": 2, "role": "DIRECTOR"}`, `{"artistId": 2, "role": "DIRECTOR", "characterIds": [4]}`, 1)
	recorder := do(router, http.MethodPost, "/api/admin/projects", "admin", body)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var failure respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &failure))
	assert.NotEmpty(t, failure.Errors[project.FieldAssignments])

	recorder = do(router, http.MethodPost, "/api/admin/projects", "admin", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHTTP_UnknownSlug(t *testing.T) {
	router := newRouter(newMemoryRepository())

	recorder := do(router, http.MethodPut, "/api/admin/projects/nope", "admin", strings.Replace(hl2, "half-life-2", "nope", 1))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHTTP_FormOptionsAndList(t *testing.T) {
	router := newRouter(newMemoryRepository())
	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/api/admin/projects", "admin", hl2).Code)

	recorder := do(router, http.MethodGet, "/api/admin/projects/form-options", "admin", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var options project.FormOptions
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &options))
	assert.Len(t, options.Roles, 6)

	recorder = do(router, http.MethodGet, "/api/admin/projects?type=game&published=true", "admin", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var page struct {
		Data []project.Summary `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Meta.Total)
	require.Len(t, page.Data, 1)
}

func TestHTTP_Characters(t *testing.T) {
	router := newRouter(newMemoryRepository())
	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/api/admin/projects", "admin", hl2).Code)

	recorder := do(router, http.MethodPost, "/api/admin/projects/half-life-2/characters", "admin", `{"name":"Gordon Freeman"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	var gordon project.Character
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &gordon))

	recorder = do(router, http.MethodGet, "/api/admin/projects/half-life-2/characters", "admin", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Gordon Freeman")

	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodDelete, "/api/admin/projects/half-life-2/characters/x", "admin", "").Code)
	assert.Equal(t, http.StatusNoContent, do(router, http.MethodDelete, "/api/admin/projects/half-life-2/characters/1", "admin", "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodDelete, "/api/admin/projects/half-life-2/characters/1", "admin", "").Code)
}
