// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dublab/studio/internal/platform/apperr"
	"github.com/dublab/studio/internal/platform/middleware"
	"github.com/dublab/studio/internal/platform/respond"
	"github.com/dublab/studio/internal/platform/sec"
	"github.com/dublab/studio/internal/users/account"
)

type memoryRepository struct {
	mu    sync.Mutex
	users map[string]*account.User
}

func (m *memoryRepository) FindByID(_ context.Context, id string) (*account.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (m *memoryRepository) UsernameTaken(_ context.Context, username, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, user := range m.users {
		if id != excludeID && strings.EqualFold(user.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepository) UpdateUsername(_ context.Context, id, username string) (*account.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	user.Username = username
	user.UpdatedAt = time.Now()
	copied := *user
	return &copied, nil
}

// idVerifier treats the token as the user id.
type idVerifier struct{}

func (idVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token == "bad" {
		return nil, errors.New("invalid")
	}
	return &sec.AuthClaims{UserID: token, Role: string(sec.RoleMember)}, nil
}

func newRouter() (http.Handler, *memoryRepository) {
	repo := &memoryRepository{users: map[string]*account.User{
		"u1": {ID: "u1", Username: "ayse", Email: "ayse@example.com", Role: "member"},
		"u2": {ID: "u2", Username: "Mert_K", Email: "mert@example.com", Role: "editor"},
	}}
	handler := account.NewHandler(account.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))))

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(idVerifier{}))
	router.Route("/api/profile", func(profile chi.Router) {
		profile.Use(middleware.RequireAuth)
		handler.RegisterRoutes(profile)
	})
	return router, repo
}

func patch(router http.Handler, token, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPatch, "/api/profile", strings.NewReader(body))
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestUpdateUsername(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		body    string
		status  int
		message string
	}{
		{"anonymous", "", `{"username":"ayse_2"}`, http.StatusUnauthorized, ""},
		{"bad token", "bad", `{"username":"ayse_2"}`, http.StatusUnauthorized, ""},
		{"too short", "u1", `{"username":"ay"}`, http.StatusBadRequest, ""},
		{"too long", "u1", `{"username":"` + strings.Repeat("a", 31) + `"}`, http.StatusBadRequest, ""},
		{"bad characters", "u1", `{"username":"ayşe yılmaz"}`, http.StatusBadRequest, ""},
		{"unchanged", "u1", `{"username":"  ayse "}`, http.StatusBadRequest, "new username is the same as the current one"},
		{"taken ignoring case", "u1", `{"username":"mert_k"}`, http.StatusConflict, ""},
		{"unknown account", "u9", `{"username":"newcomer"}`, http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repo := newRouter()

			recorder := patch(router, tt.token, tt.body)
			require.Equal(t, tt.status, recorder.Code, recorder.Body.String())

			if tt.message != "" {
				var failure respond.ErrorEnvelope
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &failure))
				assert.Equal(t, tt.message, failure.Message)
				assert.Empty(t, failure.Errors)
			}
			assert.Equal(t, "ayse", repo.users["u1"].Username)
		})
	}
}

func TestUpdateUsername_Success(t *testing.T) {
	router, repo := newRouter()

	recorder := patch(router, "u1", `{"username":" ayse_dub "}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var result account.UsernameResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.NotEmpty(t, result.Message)
	assert.Equal(t, "ayse_dub", result.User.Username)
	assert.Equal(t, "ayse_dub", repo.users["u1"].Username)
}
