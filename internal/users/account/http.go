// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/dublab/studio/internal/platform/request"
	"github.com/dublab/studio/internal/platform/respond"
)

// Handler implements the HTTP layer for the caller's own account.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// RegisterRoutes mounts the profile endpoints. The router must require authentication.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.getProfile)
	router.Patch("/", handler.updateUsername)
}

/*
GET /api/profile.

Response:
  - 200: User
  - 401: Authentication required
  - 404: Account not provisioned yet
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

/*
PATCH /api/profile.

Request:
  - body: UsernameInput

Response:
  - 200: UsernameResult
  - 400: Invalid username, or unchanged
  - 401: Authentication required
  - 409: Username taken
*/
func (handler *Handler) updateUsername(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UsernameInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.accountService.UpdateUsername(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}
