// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package adminclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dublab/studio/internal/core/media"
	"github.com/dublab/studio/pkg/slug"
)

const uploadPath = "/api/admin/projects/cover-image"

// AssetResolver uploads pending images and returns their public ids.
type AssetResolver struct {
	client *Client
	now    func() time.Time
}

func NewAssetResolver(client *Client) *AssetResolver {
	return &AssetResolver{client: client, now: time.Now}
}

/*
Identifier derives the upload identifier from a seed such as the slug or title.

The seed is normalised to [a-z0-9_-]. When nothing survives, an edited
project falls back to its id and a new one to "new-<context>-<unix millis>".
*/
func Identifier(seed string, projectID int64, uploadContext media.UploadContext, now time.Time) string {
	if identifier := slug.Identifier(seed); identifier != "" {
		return identifier
	}
	if projectID > 0 {
		return strconv.FormatInt(projectID, 10)
	}
	return fmt.Sprintf("new-%s-%d", uploadContext, now.UnixMilli())
}

/*
Resolve uploads file for the given context and returns the stored public id.

Returns:
  - string: The public id to put in the project payload
  - error: *APIError for rejected uploads, or a transport error
*/
func (resolver *AssetResolver) Resolve(ctx context.Context, file File, uploadContext media.UploadContext, identifierSeed string, projectID int64) (string, error) {
	if file.Body == nil {
		return "", errors.New("adminclient: no file to upload")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(media.FieldImageFile, filepath.Base(file.Name))
	if err != nil {
		return "", fmt.Errorf("adminclient: build upload: %w", err)
	}
	if _, err := io.Copy(part, file.Body); err != nil {
		return "", fmt.Errorf("adminclient: read %s: %w", file.Name, err)
	}

	fields := map[string]string{
		media.FieldUploadContext: string(uploadContext),
		media.FieldIdentifier:    Identifier(identifierSeed, projectID, uploadContext, resolver.now()),
		media.FieldFolder:        uploadContext.DefaultFolder(),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return "", fmt.Errorf("adminclient: build upload: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("adminclient: build upload: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, resolver.client.baseURL.JoinPath(uploadPath).String(), body)
	if err != nil {
		return "", fmt.Errorf("adminclient: build upload request: %w", err)
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())

	var result media.Result
	if err := resolver.client.do(request, &result); err != nil {
		return "", err
	}
	if result.PublicID == "" {
		return "", errors.New("adminclient: upload response carried no publicId")
	}
	return result.PublicID, nil
}
