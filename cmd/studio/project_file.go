// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dublab/studio/internal/adminclient"
	"github.com/dublab/studio/internal/core/project"
)

/*
projectFile is the YAML description read by `studio project push`.

Scalars left out keep their current value when editing. Assignments and
categories replace the stored lists only when the key is present, so an
explicit empty list clears them.

	title: Night Shift
	slug: night-shift
	type: game
	releaseDate: 2025-03-01
	price: 149.9
	currency: TRY
	categories: [1, 4]
	assignments:
	  - artist: 3
	    role: VOICE_ACTOR
	    characters: [12]
*/
type projectFile struct {
	Title            *string          `yaml:"title"`
	Slug             *string          `yaml:"slug"`
	Type             *project.Type    `yaml:"type"`
	Description      *string          `yaml:"description"`
	ReleaseDate      *string          `yaml:"releaseDate"`
	Published        *bool            `yaml:"published"`
	Price            *float64         `yaml:"price"`
	Currency         *string          `yaml:"currency"`
	ExternalWatchURL *string          `yaml:"externalWatchUrl"`
	TrailerURL       *string          `yaml:"trailerUrl"`
	Categories       *[]int64         `yaml:"categories"`
	Assignments      *[]assignmentRow `yaml:"assignments"`
}

type assignmentRow struct {
	Artist     int64        `yaml:"artist"`
	Role       project.Role `yaml:"role"`
	Characters []int64      `yaml:"characters"`
}

func decodeProjectFile(r io.Reader) (*projectFile, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)

	file := &projectFile{}
	if err := decoder.Decode(file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse project file: %w", err)
	}
	return file, nil
}

// applyTo copies the values present in the file onto form.
func (file *projectFile) applyTo(form *adminclient.Form) {
	setString(&form.Title, file.Title)
	setString(&form.Slug, file.Slug)
	setString(&form.Description, file.Description)
	setString(&form.ReleaseDate, file.ReleaseDate)
	setString(&form.Currency, file.Currency)
	setString(&form.ExternalWatchURL, file.ExternalWatchURL)
	setString(&form.TrailerURL, file.TrailerURL)

	if file.Type != nil {
		form.Type = *file.Type
	}
	if file.Published != nil {
		form.IsPublished = *file.Published
	}
	if file.Price != nil {
		form.Price = strconv.FormatFloat(*file.Price, 'f', -1, 64)
	}

	if file.Categories != nil {
		form.SetCategoryIDs(*file.Categories...)
	}
	if file.Assignments != nil {
		for _, existing := range form.Assignments() {
			form.RemoveAssignment(existing.TempID)
		}
		for _, row := range *file.Assignments {
			form.AddAssignment(row.Artist, row.Role, row.Characters...)
		}
	}
}

func setString(target *string, value *string) {
	if value != nil {
		*target = *value
	}
}
