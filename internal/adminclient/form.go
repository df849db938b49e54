// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package adminclient

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dublab/studio/internal/core/project"
	"github.com/dublab/studio/internal/platform/validate"
	"github.com/dublab/studio/pkg/pointer"
	"github.com/dublab/studio/pkg/slice"
)

// DefaultCurrency pre-fills the currency of a new form.
const DefaultCurrency = "TRY"

// File is an image picked in the form but not uploaded yet.
type File struct {
	Name string
	Body io.Reader
}

// FormAssignment is an assignment row. TempID identifies it until the
// server assigns a row id.
type FormAssignment struct {
	TempID       string
	ID           int64
	ArtistID     int64
	Role         project.Role
	CharacterIDs []int64
}

/*
Form holds an editable project before submission.

Scalars are plain fields and may be set directly. Price is kept as the text
the editor typed so an unparsable value can be reported instead of lost.
Assignments and categories are changed through the methods so temporary ids
and set semantics stay consistent.
*/
type Form struct {
	Title               string
	Slug                string
	Type                project.Type
	Description         string
	ReleaseDate         string
	IsPublished         bool
	Price               string
	Currency            string
	ExternalWatchURL    string
	TrailerURL          string
	CoverImagePublicID  string
	BannerImagePublicID string

	// CoverFile and BannerFile are resolved to public ids on submit.
	CoverFile  *File
	BannerFile *File

	Options project.FormOptions

	projectID    int64
	originalSlug string
	assignments  []FormAssignment
	categoryIDs  []int64
	nextTemp     int
	now          func() time.Time
}

/*
NewForm builds a form for creating (initial == nil) or editing a project.

Temporary ids take the form "<unix millis>-assign-<index>".
*/
func NewForm(initial *project.Aggregate, options project.FormOptions) *Form {
	form := &Form{
		Type:     project.TypeGame,
		Currency: DefaultCurrency,
		Options:  options,
		now:      time.Now,
	}
	if initial == nil {
		return form
	}

	form.projectID = initial.ID
	form.originalSlug = initial.Slug
	form.Title = initial.Title
	form.Slug = initial.Slug
	form.Type = initial.Type
	form.Description = pointer.Val(initial.Description)
	form.IsPublished = initial.IsPublished
	form.ExternalWatchURL = pointer.Val(initial.ExternalWatchURL)
	form.TrailerURL = pointer.Val(initial.TrailerURL)
	form.CoverImagePublicID = pointer.Val(initial.CoverImagePublicID)
	form.BannerImagePublicID = pointer.Val(initial.BannerImagePublicID)
	if !initial.ReleaseDate.IsZero() {
		form.ReleaseDate = initial.ReleaseDate.UTC().Format("2006-01-02")
	}
	if initial.Price != nil {
		form.Price = strconv.FormatFloat(*initial.Price, 'f', -1, 64)
	}
	form.Currency = pointer.Fallback(initial.Currency, DefaultCurrency)

	for _, assignment := range initial.Assignments {
		form.assignments = append(form.assignments, FormAssignment{
			TempID:       form.tempID(),
			ID:           assignment.ID,
			ArtistID:     assignment.ArtistID,
			Role:         assignment.Role,
			CharacterIDs: append([]int64(nil), assignment.CharacterIDs...),
		})
	}
	form.SetCategoryIDs(initial.CategoryIDs...)

	return form
}

// IsEditing reports whether the form edits an existing project.
func (form *Form) IsEditing() bool {
	return form.originalSlug != ""
}

// ProjectID is the id of the edited project, or 0.
func (form *Form) ProjectID() int64 {
	return form.projectID
}

func (form *Form) tempID() string {
	id := fmt.Sprintf("%d-assign-%d", form.now().UnixMilli(), form.nextTemp)
	form.nextTemp++
	return id
}

// # Assignments

// Assignments returns a copy of the rows in display order.
func (form *Form) Assignments() []FormAssignment {
	return append([]FormAssignment(nil), form.assignments...)
}

// AddAssignment appends a row and returns its temporary id.
func (form *Form) AddAssignment(artistID int64, role project.Role, characterIDs ...int64) string {
	assignment := FormAssignment{
		TempID:       form.tempID(),
		ArtistID:     artistID,
		Role:         role,
		CharacterIDs: characterIDs,
	}
	form.assignments = append(form.assignments, assignment)
	return assignment.TempID
}

// RemoveAssignment drops the row with tempID and reports whether it existed.
func (form *Form) RemoveAssignment(tempID string) bool {
	for index, assignment := range form.assignments {
		if assignment.TempID == tempID {
			form.assignments = append(form.assignments[:index], form.assignments[index+1:]...)
			return true
		}
	}
	return false
}

// # Categories

// CategoryIDs returns the selected categories in selection order.
func (form *Form) CategoryIDs() []int64 {
	return append([]int64(nil), form.categoryIDs...)
}

// SetCategoryIDs replaces the selection. Duplicates are ignored.
func (form *Form) SetCategoryIDs(ids ...int64) {
	form.categoryIDs = slice.Unique(ids)
}

// ToggleCategory selects id when absent and deselects it otherwise.
func (form *Form) ToggleCategory(id int64) {
	if slices.Contains(form.categoryIDs, id) {
		form.categoryIDs = slice.Filter(form.categoryIDs, func(selected int64) bool { return selected != id })
		return
	}
	form.categoryIDs = append(form.categoryIDs, id)
}

// # Validation

/*
Validate runs the checks that do not need the server.

Slug uniqueness, references and everything else are left to the API; a form
that passes here can still be rejected there.
*/
func (form *Form) Validate() *FormErrors {
	errs := &FormErrors{}

	if strings.TrimSpace(form.Title) == "" {
		errs.Add(project.FieldTitle, "Title is required")
	}
	if strings.TrimSpace(form.Slug) == "" {
		errs.Add(project.FieldSlug, "Slug is required")
	}
	if strings.TrimSpace(form.ReleaseDate) == "" {
		errs.Add(project.FieldReleaseDate, "Release date is required")
	} else if _, err := validate.ParseDate(strings.TrimSpace(form.ReleaseDate)); err != nil {
		errs.Add(project.FieldReleaseDate, "Release date must be YYYY-MM-DD")
	}

	if form.Type == project.TypeGame && strings.TrimSpace(form.Price) != "" {
		price, err := strconv.ParseFloat(strings.TrimSpace(form.Price), 64)
		switch {
		case err != nil, math.IsNaN(price), math.IsInf(price, 0):
			errs.Add(project.FieldPrice, "Price must be a number")
		case price < 0:
			errs.Add(project.FieldPrice, "Price must be zero or positive")
		case price > project.PriceMax:
			errs.Add(project.FieldPrice, fmt.Sprintf("Price must be at most %.2f", project.PriceMax))
		}
		if len([]rune(strings.TrimSpace(form.Currency))) != 3 {
			errs.Add(project.FieldCurrency, "Currency must be 3 characters (e.g. TRY)")
		}
	}

	if trailer := strings.TrimSpace(form.TrailerURL); trailer != "" && !strings.HasPrefix(trailer, "http") {
		errs.Add(project.FieldTrailerURL, "Enter a valid URL")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// # Payload

/*
Payload converts the form into the request body of the aggregate endpoint.

Empty optional strings become null, character links are only sent for voice
actors, and price and currency are only sent for games with a price.
Call [Form.Validate] first; unparsable values are sent as null.
*/
func (form *Form) Payload() project.Payload {
	payload := project.Payload{
		Title:               strings.TrimSpace(form.Title),
		Slug:                strings.TrimSpace(form.Slug),
		Type:                form.Type,
		Description:         nullable(form.Description),
		CoverImagePublicID:  nullable(form.CoverImagePublicID),
		BannerImagePublicID: nullable(form.BannerImagePublicID),
		IsPublished:         form.IsPublished,
		ExternalWatchURL:    nullable(form.ExternalWatchURL),
		TrailerURL:          nullable(form.TrailerURL),
		CategoryIDs:         append([]int64{}, form.categoryIDs...),
		Assignments:         make([]project.Assignment, 0, len(form.assignments)),
	}

	if date, err := validate.ParseDate(strings.TrimSpace(form.ReleaseDate)); err == nil {
		payload.ReleaseDate = date.Format(time.RFC3339)
	}

	if form.Type == project.TypeGame && strings.TrimSpace(form.Price) != "" {
		price, err := strconv.ParseFloat(strings.TrimSpace(form.Price), 64)
		if err == nil && !math.IsNaN(price) && !math.IsInf(price, 0) {
			payload.Price = &price
			if currency := strings.ToUpper(strings.TrimSpace(form.Currency)); currency != "" {
				payload.Currency = &currency
			}
		}
	}

	for _, assignment := range form.assignments {
		row := project.Assignment{ArtistID: assignment.ArtistID, Role: assignment.Role}
		if assignment.Role.AcceptsCharacters() && len(assignment.CharacterIDs) > 0 {
			row.CharacterIDs = append([]int64(nil), assignment.CharacterIDs...)
		}
		payload.Assignments = append(payload.Assignments, row)
	}

	return payload
}

// apply copies a saved aggregate back into the form so a following submit
// edits the stored row under its current slug.
func (form *Form) apply(saved *project.Aggregate) {
	fresh := NewForm(saved, form.Options)
	fresh.now = form.now
	*form = *fresh
}

func nullable(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
