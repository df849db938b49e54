// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/dublab/studio/internal/platform/request"
	"github.com/dublab/studio/internal/platform/respond"
	"github.com/dublab/studio/pkg/pagination"
)

// # HTTP Handler

// Handler exposes the project aggregate under /api/admin/projects.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
RegisterRoutes mounts the project endpoints on an admin-guarded router.

Static segments (form-options) are registered before the {slug} pattern;
chi prefers them regardless, but the listing reads better this way.
*/
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listProjects)
	router.Post("/", handler.createProject)
	router.Get("/form-options", handler.formOptions)

	router.Route("/{slug}", func(router chi.Router) {
		router.Get("/", handler.getProject)
		router.Put("/", handler.updateProject)

		router.Get("/characters", handler.listCharacters)
		router.Post("/characters", handler.createCharacter)
		router.Delete("/characters/{id}", handler.deleteCharacter)
	})
}

func (handler *Handler) listProjects(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{
		Query: query.Get("q"),
		Type:  Type(query.Get("type")),
	}
	if published, err := strconv.ParseBool(query.Get("published")); err == nil {
		filter.Published = &published
	}

	projects, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, projects, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) formOptions(writer http.ResponseWriter, request *http.Request) {
	options, err := handler.service.FormOptions(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, options)
}

func (handler *Handler) getProject(writer http.ResponseWriter, request *http.Request) {
	aggregate, err := handler.service.Get(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, aggregate)
}

func (handler *Handler) createProject(writer http.ResponseWriter, request *http.Request) {
	var payload Payload
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	aggregate, err := handler.service.Create(request.Context(), payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, aggregate)
}

// updateProject replaces the aggregate. The response carries the stored slug,
// which differs from the path when the editor renamed the project.
func (handler *Handler) updateProject(writer http.ResponseWriter, request *http.Request) {
	var payload Payload
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	aggregate, err := handler.service.Update(request.Context(), requestutil.Param(request, "slug"), payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, aggregate)
}
