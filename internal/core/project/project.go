// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package project implements the studio's catalogue aggregate: a dubbed game or
anime together with its crew assignments, its categories and its characters.

The admin form edits the whole aggregate at once. A submission carries the
complete list of assignments and category ids, and the server replaces the
stored collections with it inside a single transaction:

  - Scalars (title, slug, dates, price...) are overwritten.
  - Category links are cleared and re-inserted.
  - Assignments are reconciled by (artist, role): surviving pairs keep their
    row id, vanished pairs are deleted, new pairs are inserted, and every
    voice actor's character links are rebuilt from the submission.

Images are referenced by public id only; uploads go through the media
endpoint before the aggregate is saved.
*/
package project

import "time"

// # Enumerations

// Type distinguishes the two kinds of dubbed work.
type Type string

const (
	TypeGame  Type = "game"
	TypeAnime Type = "anime"
)

// Role is the function an artist performs on a project.
type Role string

const (
	RoleVoiceActor   Role = "VOICE_ACTOR"
	RoleMixMaster    Role = "MIX_MASTER"
	RoleModder       Role = "MODDER"
	RoleTranslator   Role = "TRANSLATOR"
	RoleScriptWriter Role = "SCRIPT_WRITER"
	RoleDirector     Role = "DIRECTOR"
)

// Roles lists every assignable role in display order.
var Roles = []Role{RoleVoiceActor, RoleMixMaster, RoleModder, RoleTranslator, RoleScriptWriter, RoleDirector}

var roleLabels = map[Role]string{
	RoleVoiceActor:   "Voice Actor",
	RoleMixMaster:    "Mix Master",
	RoleModder:       "Modder",
	RoleTranslator:   "Translator",
	RoleScriptWriter: "Script Writer",
	RoleDirector:     "Director",
}

// IsValid reports whether r is one of [Roles].
func (r Role) IsValid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Label returns the human readable role name.
func (r Role) Label() string {
	return roleLabels[r]
}

// AcceptsCharacters reports whether assignments with this role may link characters.
func (r Role) AcceptsCharacters() bool {
	return r == RoleVoiceActor
}

// # Entities

// Project holds the scalar attributes of a catalogue entry.
type Project struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	Slug                string    `json:"slug"`
	Type                Type      `json:"type"`
	Description         *string   `json:"description"`
	CoverImagePublicID  *string   `json:"coverImagePublicId"`
	BannerImagePublicID *string   `json:"bannerImagePublicId"`
	ReleaseDate         time.Time `json:"releaseDate"`
	IsPublished         bool      `json:"isPublished"`
	Price               *float64  `json:"price"`
	Currency            *string   `json:"currency"`
	ExternalWatchURL    *string   `json:"externalWatchUrl"`
	TrailerURL          *string   `json:"trailerUrl"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Assignment credits an artist with a role on a project. CharacterIDs is only
// populated for voice actors.
type Assignment struct {
	ID           int64   `json:"id,omitempty"`
	ArtistID     int64   `json:"artistId"`
	Role         Role    `json:"role"`
	CharacterIDs []int64 `json:"characterIds,omitempty"`
}

// Aggregate is the editable shape of a project: what the admin form loads
// and what a successful save returns.
type Aggregate struct {
	Project
	Assignments    []Assignment `json:"assignments"`
	CategoryIDs    []int64      `json:"categoryIds"`
	CoverImageURL  string       `json:"coverImageUrl"`
	BannerImageURL string       `json:"bannerImageUrl"`
}

// Summary is a list row.
type Summary struct {
	Project
	CoverImageURL string `json:"coverImageUrl"`
}

// Character belongs to a project and can be voiced by several voice actors.
type Character struct {
	ID            int64     `json:"id"`
	ProjectID     int64     `json:"projectId"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	ImagePublicID *string   `json:"imagePublicId"`
	ImageURL      string    `json:"imageUrl"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CharacterInput is the writable part of a character.
type CharacterInput struct {
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	ImagePublicID *string `json:"imagePublicId"`
}

// # Submission

// Payload is the body of POST /api/admin/projects and PUT /api/admin/projects/{slug}.
// Assignments and CategoryIDs replace the stored collections wholesale.
type Payload struct {
	Title               string       `json:"title"`
	Slug                string       `json:"slug"`
	Type                Type         `json:"type"`
	Description         *string      `json:"description"`
	CoverImagePublicID  *string      `json:"coverImagePublicId"`
	BannerImagePublicID *string      `json:"bannerImagePublicId"`
	ReleaseDate         string       `json:"releaseDate"`
	IsPublished         bool         `json:"isPublished"`
	Price               *float64     `json:"price"`
	Currency            *string      `json:"currency"`
	Assignments         []Assignment `json:"assignments"`
	CategoryIDs         []int64      `json:"categoryIds"`
	ExternalWatchURL    *string      `json:"externalWatchUrl"`
	TrailerURL          *string      `json:"trailerUrl"`
}

// References groups the foreign ids a submission points at.
type References struct {
	ArtistIDs    []int64
	CategoryIDs  []int64
	CharacterIDs []int64
}

// Empty reports whether no reference is listed.
func (r References) Empty() bool {
	return len(r.ArtistIDs) == 0 && len(r.CategoryIDs) == 0 && len(r.CharacterIDs) == 0
}

// Filter holds list criteria.
type Filter struct {
	Query     string
	Type      Type
	Published *bool
}

// # Form Options

// Option is a select entry in the admin form.
type Option struct {
	Value int64  `json:"value"`
	Label string `json:"label"`
}

// RoleOption is a role select entry.
type RoleOption struct {
	Value Role   `json:"value"`
	Label string `json:"label"`
}

// FormOptions carries the reference lists the admin form needs.
type FormOptions struct {
	Artists    []Option     `json:"artists"`
	Categories []Option     `json:"categories"`
	Roles      []RoleOption `json:"roles"`
}

// # Field Names

const (
	FieldTitle               = "title"
	FieldSlug                = "slug"
	FieldType                = "type"
	FieldDescription         = "description"
	FieldCoverImagePublicID  = "coverImagePublicId"
	FieldBannerImagePublicID = "bannerImagePublicId"
	FieldReleaseDate         = "releaseDate"
	FieldPrice               = "price"
	FieldCurrency            = "currency"
	FieldAssignments         = "assignments"
	FieldCategoryIDs         = "categoryIds"
	FieldExternalWatchURL    = "externalWatchUrl"
	FieldTrailerURL          = "trailerUrl"
	FieldName                = "name"
)

const (
	msgSlugTaken        = "A project with this slug already exists"
	msgCharacterExists  = "A character with this name already exists in the project"
	msgReferenceChanged = "A referenced artist, category or character was removed while saving. Reload the form and try again"
)
