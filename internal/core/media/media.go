// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media stores project images and hands back their public ids.

The admin form uploads a cover or banner here first and only then saves the
project with the returned public id, so the aggregate endpoint never handles
file bodies.
*/
package media

import "github.com/dublab/studio/internal/platform/constants"

// UploadContext tells which project image an upload is for.
type UploadContext string

const (
	ContextProjectCover  UploadContext = "projectCover"
	ContextProjectBanner UploadContext = "projectBanner"
)

// DefaultFolder returns the storage folder used when the client sends none.
func (c UploadContext) DefaultFolder() string {
	if c == ContextProjectBanner {
		return constants.FolderProjectBanners
	}
	return constants.FolderProjectCovers
}

// IsValid reports whether c is a known upload context.
func (c UploadContext) IsValid() bool {
	return c == ContextProjectCover || c == ContextProjectBanner
}

// Result is the body of a successful upload.
type Result struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
}

// allowedTypes are the sniffed content types accepted for project images.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var allowedFolders = map[string]bool{
	constants.FolderProjectCovers:  true,
	constants.FolderProjectBanners: true,
}

// Form field names of the multipart request.
const (
	FieldImageFile     = "imageFile"
	FieldUploadContext = "uploadContext"
	FieldIdentifier    = "identifier"
	FieldFolder        = "folder"
)
