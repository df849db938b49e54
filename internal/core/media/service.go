// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dublab/studio/internal/platform/apperr"
	"github.com/dublab/studio/internal/platform/constants"
	"github.com/dublab/studio/internal/platform/objectstore"
	"github.com/dublab/studio/internal/platform/validate"
	"github.com/dublab/studio/pkg/imageurl"
	"github.com/dublab/studio/pkg/slug"
)

// sniffLen is how many leading bytes content detection looks at.
const sniffLen = 512

// suffixLen is the number of random hex characters appended to a public id.
const suffixLen = 8

// Upload describes one incoming image.
type Upload struct {
	Body       io.Reader
	Size       int64
	Context    UploadContext
	Identifier string
	Folder     string
}

type Service struct {
	store    objectstore.Store
	images   imageurl.Builder
	maxBytes int64
	logger   *slog.Logger
}

func NewService(store objectstore.Store, images imageurl.Builder, maxBytes int64, logger *slog.Logger) *Service {
	if maxBytes <= 0 {
		maxBytes = constants.DefaultMaxUploadBytes
	}
	return &Service{store: store, images: images, maxBytes: maxBytes, logger: logger}
}

// MaxBytes is the largest accepted image.
func (service *Service) MaxBytes() int64 {
	return service.maxBytes
}

/*
Store validates an upload and writes it to object storage.

The public id is "<folder>/<identifier>_<8 hex>". The content type is sniffed
from the bytes rather than trusted from the client.

Returns:
  - *Result: The public id and its delivery URL
  - error: 400 on bad fields, 413 when too large, 415 when not an image,
    502 when the object store fails
*/
func (service *Service) Store(context context.Context, upload Upload) (*Result, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldImageFile, upload.Body == nil, "An image file is required")
	validator.Custom(FieldUploadContext, !upload.Context.IsValid(), "Must be projectCover or projectBanner")

	folder := strings.Trim(strings.TrimSpace(upload.Folder), "/")
	if folder == "" {
		folder = upload.Context.DefaultFolder()
	}
	validator.Custom(FieldFolder, !allowedFolders[folder], "Unknown upload folder")

	identifier := slug.Identifier(upload.Identifier)
	validator.Custom(FieldIdentifier, identifier == "", "An identifier is required")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if upload.Size > service.maxBytes {
		return nil, apperr.PayloadTooLarge(service.maxBytes)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(upload.Body, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, apperr.BadRequest("Could not read the uploaded file")
	}
	head = head[:n]
	if n == 0 {
		return nil, validate.RequiredError(FieldImageFile, "The uploaded file is empty")
	}

	contentType := http.DetectContentType(head)
	if !allowedTypes[contentType] {
		return nil, apperr.UnsupportedMediaType("Only JPEG, PNG, WebP and GIF images are accepted")
	}

	publicID := buildPublicID(folder, identifier)
	body := io.MultiReader(bytes.NewReader(head), upload.Body)

	if err := service.store.Put(context, publicID, body, upload.Size, contentType); err != nil {
		return nil, apperr.BadGateway("Image upload failed", err)
	}

	service.logger.Info("image_uploaded",
		slog.String("public_id", publicID),
		slog.String("content_type", contentType),
		slog.Int64("size", upload.Size),
	)

	return &Result{
		PublicID: publicID,
		URL:      service.images.Build(publicID, imageurl.Transform{}, placeholderFor(upload.Context)),
	}, nil
}

// buildPublicID trims the identifier so the whole id fits the length limit.
func buildPublicID(folder, identifier string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLen]

	room := constants.MaxPublicIDLength - len(folder) - len("/_") - suffixLen
	if len(identifier) > room {
		identifier = strings.TrimRight(identifier[:room], "-_")
	}
	return folder + "/" + identifier + "_" + suffix
}

func placeholderFor(c UploadContext) imageurl.Placeholder {
	if c == ContextProjectBanner {
		return imageurl.PlaceholderBanner
	}
	return imageurl.PlaceholderCover
}
