// Package artist manages the dubbing artists that projects credit through
// role assignments (voice actor, mix master, translator, ...).
package artist

import "time"

// Artist is a dubbing artist credited on projects.
type Artist struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Bio           *string   `json:"bio"`
	ImagePublicID *string   `json:"imagePublicId"`
	ImageURL      string    `json:"imageUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FullName joins first and last name for labels.
func (a *Artist) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// Input is the writable part of an artist.
type Input struct {
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Bio           *string `json:"bio"`
	ImagePublicID *string `json:"imagePublicId"`
}

// Filter holds the parameters for a paginated artist search.
type Filter struct {
	Query string // case-insensitive match against "first last"
}

const (
	FieldFirstName     = "firstName"
	FieldLastName      = "lastName"
	FieldBio           = "bio"
	FieldImagePublicID = "imagePublicId"
)

const msgInUse = "This artist is credited on projects and cannot be deleted. Remove the assignments first"
