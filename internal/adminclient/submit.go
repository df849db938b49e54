// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package adminclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/dublab/studio/internal/core/media"
	"github.com/dublab/studio/internal/core/project"
)

const projectsPath = "/api/admin/projects"

// Submitter runs a form through asset resolution and the aggregate endpoint.
type Submitter struct {
	client   *Client
	resolver *AssetResolver
	pending  atomic.Bool
}

func NewSubmitter(client *Client) *Submitter {
	return &Submitter{client: client, resolver: NewAssetResolver(client)}
}

/*
Submit validates, uploads and saves the form.

Steps stop at the first failure:
 1. Local validation.
 2. Cover upload, then banner upload. A failed upload is reported on
    coverImagePublicId or bannerImagePublicId and nothing is saved; the form
    keeps its previous image references.
 3. POST (create) or PUT to the original slug (edit).

On success the form is reloaded from the saved aggregate, so a renamed slug
is followed by the next submit.

Returns:
  - *project.Aggregate: The saved project
  - error: *FormErrors for validation, upload and API rejections,
    [ErrSubmissionPending] while another submit runs, or a transport error
*/
func (submitter *Submitter) Submit(ctx context.Context, form *Form) (*project.Aggregate, error) {
	if !submitter.pending.CompareAndSwap(false, true) {
		return nil, ErrSubmissionPending
	}
	defer submitter.pending.Store(false)

	if errs := form.Validate(); errs != nil {
		return nil, errs
	}

	seed := form.Slug
	if seed == "" {
		seed = form.Title
	}

	coverID, err := submitter.resolve(ctx, form.CoverFile, media.ContextProjectCover, seed, form, project.FieldCoverImagePublicID)
	if err != nil {
		return nil, err
	}
	bannerID, err := submitter.resolve(ctx, form.BannerFile, media.ContextProjectBanner, seed, form, project.FieldBannerImagePublicID)
	if err != nil {
		return nil, err
	}

	payload := form.Payload()
	if coverID != "" {
		payload.CoverImagePublicID = &coverID
	}
	if bannerID != "" {
		payload.BannerImagePublicID = &bannerID
	}

	saved := &project.Aggregate{}
	if form.IsEditing() {
		err = submitter.client.doJSON(ctx, http.MethodPut, projectsPath+"/"+url.PathEscape(form.originalSlug), payload, saved)
	} else {
		err = submitter.client.doJSON(ctx, http.MethodPost, projectsPath, payload, saved)
	}
	if err != nil {
		return nil, toFormErrors(err)
	}

	form.apply(saved)
	return saved, nil
}

// resolve uploads file when present. Failures become a field error on field.
func (submitter *Submitter) resolve(ctx context.Context, file *File, uploadContext media.UploadContext, seed string, form *Form, field string) (string, error) {
	if file == nil {
		return "", nil
	}

	publicID, err := submitter.resolver.Resolve(ctx, *file, uploadContext, seed, form.ProjectID())
	if err != nil {
		errs := &FormErrors{}
		errs.Add(field, uploadMessage(err, uploadContext))
		return "", errs
	}
	return publicID, nil
}

func uploadMessage(err error, uploadContext media.UploadContext) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if uploadContext == media.ContextProjectBanner {
		return "Banner image could not be uploaded"
	}
	return "Cover image could not be uploaded"
}

// toFormErrors maps an API rejection onto the form: field errors when the
// envelope has them, otherwise the message as a general error.
func toFormErrors(err error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	errs := &FormErrors{Fields: apiErr.Fields}
	if len(apiErr.Fields) == 0 {
		errs.General = apiErr.Message
		if errs.General == "" {
			errs.General = "Something went wrong"
		}
	}
	return errs
}
