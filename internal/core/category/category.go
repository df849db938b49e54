// Package category manages the project genres shown in the admin form
// ("Aksiyon", "Bilim Kurgu", ...). Categories are referenced by projects
// through a junction table and cannot be removed while still in use.
package category

import "time"

// Category is a named, slugged project genre.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

// Input is the writable part of a category.
type Input struct {
	Name string `json:"name"`
}

const (
	FieldName = "name"

	nameMinLen = 2
	nameMaxLen = 50
)

const (
	msgDuplicate = "Another category with this name or slug already exists"
	msgInUse     = "This category is assigned to projects and cannot be deleted. Remove it from those projects first"
)
