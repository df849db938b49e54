// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package objectstore keeps uploaded project images in an S3-compatible bucket.

Objects are addressed by their public id (e.g. "project_covers/half-life-2_1a2b3c4d"),
which is also the path segment used by the image CDN. Replaced images are never
deleted outright: they are copied under the archive folder first so an editor
can recover an image that was swapped by mistake.
*/
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dublab/studio/internal/platform/constants"
)

// ErrNotFound is returned when an object does not exist.
var ErrNotFound = errors.New("objectstore: object not found")

// Store is the subset of object storage the studio relies on.
type Store interface {
	// Put writes body under key with the given content type.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error

	// Copy duplicates the object at src to dst.
	Copy(ctx context.Context, src, dst string) error

	// Delete removes the object at key. Missing objects are not an error.
	Delete(ctx context.Context, key string) error
}

// Archive moves the object at publicID under the archive folder and returns
// the new key. kind is a short tag such as "cover" or "banner".
func Archive(ctx context.Context, store Store, publicID, kind string, now time.Time) (string, error) {
	archived := ArchiveKey(publicID, kind, now)
	if archived == "" {
		return "", nil
	}

	if err := store.Copy(ctx, publicID, archived); err != nil {
		return "", fmt.Errorf("objectstore: archive copy %q: %w", publicID, err)
	}

	if err := store.Delete(ctx, publicID); err != nil {
		return archived, fmt.Errorf("objectstore: archive delete %q: %w", publicID, err)
	}

	return archived, nil
}

// ArchiveKey computes "<archive>/<original folders>/<kind>_<filename>_<unix millis>",
// truncated to the public id length limit. It returns "" for an empty publicID.
func ArchiveKey(publicID, kind string, now time.Time) string {
	if publicID == "" {
		return ""
	}

	folder, filename := "", publicID
	if index := strings.LastIndex(publicID, "/"); index >= 0 {
		folder, filename = publicID[:index+1], publicID[index+1:]
	}

	key := constants.FolderArchive + "/" + folder + kind + "_" + filename + "_" + strconv.FormatInt(now.UnixMilli(), 10)
	if len(key) > constants.MaxPublicIDLength {
		key = key[:constants.MaxPublicIDLength]
	}
	return key
}
