// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package imageurl turns stored image public ids into delivery URLs.

URLs follow the CDN's upload layout:

	https://<host>/<cloud>/image/upload/<transforms>/<publicId>

Quality and format are always negotiated (q_auto, f_auto) unless overridden.
*/
package imageurl

import (
	"strconv"
	"strings"
)

// Placeholder selects the fallback image used when there is nothing to show.
type Placeholder string

const (
	PlaceholderBanner Placeholder = "banner"
	PlaceholderCover  Placeholder = "cover"
	PlaceholderAvatar Placeholder = "avatar"
)

// Path returns the site-relative fallback image for the placeholder kind.
func (p Placeholder) Path() string {
	switch p {
	case PlaceholderCover:
		return "/images/placeholder-cover.jpg"
	case PlaceholderAvatar:
		return "/images/default-avatar.png"
	default:
		return "/images/placeholder-banner.jpg"
	}
}

// Transform lists the optional delivery transformations. Zero values are omitted.
type Transform struct {
	Width   int
	Height  int
	Crop    string // fill, fit, thumb, scale
	Gravity string
	Quality string // defaults to "auto"
	Format  string // defaults to "auto"
	Radius  string
}

func (t Transform) String() string {
	parts := make([]string, 0, 7)
	if t.Width > 0 {
		parts = append(parts, "w_"+strconv.Itoa(t.Width))
	}
	if t.Height > 0 {
		parts = append(parts, "h_"+strconv.Itoa(t.Height))
	}
	if t.Crop != "" {
		parts = append(parts, "c_"+t.Crop)
	}
	if t.Gravity != "" {
		parts = append(parts, "g_"+t.Gravity)
	}
	parts = append(parts, "q_"+orAuto(t.Quality), "f_"+orAuto(t.Format))
	if t.Radius != "" {
		parts = append(parts, "r_"+t.Radius)
	}
	return strings.Join(parts, ",")
}

// Builder holds the CDN coordinates.
type Builder struct {
	Host      string
	CloudName string
}

// New returns a Builder for the given CDN host and cloud name.
func New(host, cloudName string) Builder {
	return Builder{Host: strings.TrimSuffix(host, "/"), CloudName: cloudName}
}

// Build resolves publicIDOrPath to a URL.
//
// Empty input yields the placeholder path. Absolute http(s) URLs and
// site-relative paths are returned unchanged. Without a configured cloud
// name every public id also resolves to the placeholder.
func (b Builder) Build(publicIDOrPath string, transform Transform, placeholder Placeholder) string {
	if publicIDOrPath == "" {
		return placeholder.Path()
	}

	if strings.HasPrefix(publicIDOrPath, "http://") ||
		strings.HasPrefix(publicIDOrPath, "https://") ||
		strings.HasPrefix(publicIDOrPath, "/") {
		return publicIDOrPath
	}

	if b.CloudName == "" || b.Host == "" {
		return placeholder.Path()
	}

	return "https://" + b.Host + "/" + b.CloudName + "/image/upload/" + transform.String() + "/" + publicIDOrPath
}

// Ptr is Build for nullable columns.
func (b Builder) Ptr(publicID *string, transform Transform, placeholder Placeholder) string {
	if publicID == nil {
		return placeholder.Path()
	}
	return b.Build(*publicID, transform, placeholder)
}

func orAuto(value string) string {
	if value == "" {
		return "auto"
	}
	return value
}
