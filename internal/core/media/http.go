// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dublab/studio/internal/platform/apperr"
	"github.com/dublab/studio/internal/platform/respond"
)

// multipartOverhead leaves room for the text fields and part headers.
const multipartOverhead = 64 << 10

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the upload endpoint under /api/admin/projects.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/cover-image", handler.uploadImage)
}

/*
POST /api/admin/projects/cover-image.

Description: Stores a project cover or banner and returns its public id.
Both contexts share the route; uploadContext picks the folder.

Request (multipart/form-data):
  - imageFile: file
  - uploadContext: projectCover | projectBanner
  - identifier: string (slug or title seed)
  - folder: string (optional)

Response:
  - 201: Result
  - 400: Validation errors keyed by form field
  - 413: File larger than the configured limit
  - 415: Not a JPEG, PNG, WebP or GIF image
  - 502: Object storage failure
*/
func (handler *Handler) uploadImage(writer http.ResponseWriter, request *http.Request) {
	maxBytes := handler.service.MaxBytes()
	request.Body = http.MaxBytesReader(writer, request.Body, maxBytes+multipartOverhead)

	if err := request.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(writer, request, apperr.PayloadTooLarge(maxBytes))
			return
		}
		respond.Error(writer, request, apperr.BadRequest("Expected a multipart/form-data body"))
		return
	}
	defer request.MultipartForm.RemoveAll()

	upload := Upload{
		Context:    UploadContext(request.FormValue(FieldUploadContext)),
		Identifier: request.FormValue(FieldIdentifier),
		Folder:     request.FormValue(FieldFolder),
	}

	file, header, err := request.FormFile(FieldImageFile)
	if err == nil {
		defer file.Close()
		upload.Body = file
		upload.Size = header.Size
	}

	result, err := handler.service.Store(request.Context(), upload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}
