// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dublab/studio/internal/api"
	"github.com/dublab/studio/internal/core/artist"
	"github.com/dublab/studio/internal/core/category"
	"github.com/dublab/studio/internal/core/media"
	"github.com/dublab/studio/internal/core/project"
	"github.com/dublab/studio/internal/platform/sec"
	"github.com/dublab/studio/internal/users/account"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// roleVerifier accepts any token and treats its text as the role.
type roleVerifier struct{}

func (roleVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token == "invalid" {
		return nil, errors.New("invalid token")
	}
	return &sec.AuthClaims{UserID: "u-1", Role: token}, nil
}

type categoryStub struct {
	category.Repository
}

func (categoryStub) List(context.Context) ([]*category.Category, error) {
	return []*category.Category{{ID: 1, Name: "Aksiyon", Slug: "aksiyon"}}, nil
}

func newRouter(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	liveness, readiness := api.NewHealthHandlers(deps, discard)
	return api.Router(ctx, []string{"https://admin.dublab.test"}, discard, roleVerifier{}, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Category:  category.NewHandler(category.NewService(categoryStub{}, nil, discard)),
		Artist:    artist.NewHandler(nil),
		Project:   project.NewHandler(nil),
		Media:     media.NewHandler(nil),
		Account:   account.NewHandler(nil),
	})
}

func serve(router http.Handler, method, path, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, nil)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestRouter_AdminGuard(t *testing.T) {
	router := newRouter(t, api.HealthDependencies{})

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"anonymous category list", http.MethodGet, "/api/admin/categories", "", http.StatusForbidden},
		{"member project update", http.MethodPut, "/api/admin/projects/night-shift", string(sec.RoleMember), http.StatusForbidden},
		{"editor upload", http.MethodPost, "/api/admin/projects/cover-image", string(sec.RoleEditor), http.StatusForbidden},
		{"member artist delete", http.MethodDelete, "/api/admin/artists/3", string(sec.RoleMember), http.StatusForbidden},
		{"invalid token", http.MethodGet, "/api/admin/categories", "invalid", http.StatusUnauthorized},
		{"admin category list", http.MethodGet, "/api/admin/categories", string(sec.RoleAdmin), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(router, tt.method, tt.path, tt.token).Code)
		})
	}
}

func TestRouter_ProfileRequiresAuthentication(t *testing.T) {
	router := newRouter(t, api.HealthDependencies{})

	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodPatch, "/api/profile", "").Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newRouter(t, api.HealthDependencies{})

	request := httptest.NewRequest(http.MethodOptions, "/api/admin/projects", nil)
	request.Header.Set("Origin", "https://admin.dublab.test")
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, "https://admin.dublab.test", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	router := newRouter(t, api.HealthDependencies{})

	recorder := serve(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestReady(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("all dependencies up", func(t *testing.T) {
		router := newRouter(t, api.HealthDependencies{CheckDatabase: ok, CheckCache: ok, CheckStorage: ok})

		recorder := serve(router, http.MethodGet, "/ready", "")
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("cache down", func(t *testing.T) {
		router := newRouter(t, api.HealthDependencies{CheckDatabase: ok, CheckCache: down})

		recorder := serve(router, http.MethodGet, "/ready", "")
		require.Equal(t, http.StatusServiceUnavailable, recorder.Code)

		var body struct {
			Status string `json:"status"`
			Checks []struct {
				Name string `json:"name"`
				OK   bool   `json:"ok"`
			} `json:"checks"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "degraded", body.Status)
		require.Len(t, body.Checks, 2)
		assert.False(t, body.Checks[1].OK)
	})
}
