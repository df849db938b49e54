// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import "context"

// # Project Data Access

// ProjectRepository defines the data access contract for the project aggregate.
type ProjectRepository interface {
	CharacterRepository

	/*
		List returns a filtered, paginated slice of projects and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (title search, type, published flag)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Summary: Matching rows, most recently updated first
		  - int: Total count of rows matching the filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Summary, int, error)

	/*
		FindBySlug loads the editable aggregate for a project.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Aggregate: Scalars plus assignments (with ids and character links) and category ids
		  - error: apperr.NotFound if no project has this slug
	*/
	FindBySlug(context context.Context, slug string) (*Aggregate, error)

	/*
		SlugTaken reports whether another project already uses slug.

		Parameters:
		  - context: context.Context
		  - slug: string
		  - excludeID: int64 (0 when creating)

		Returns:
		  - bool: true when a different row owns the slug
		  - error: Database failures
	*/
	SlugTaken(context context.Context, slug string, excludeID int64) (bool, error)

	/*
		MissingReferences returns the subset of refs that does not resolve.

		Characters only resolve when they belong to projectID; a project that
		does not exist yet (projectID 0) owns none.

		Returns:
		  - References: Unknown ids per kind, empty when everything resolves
		  - error: Database failures
	*/
	MissingReferences(context context.Context, projectID int64, refs References) (References, error)

	/*
		Create inserts a project with its assignments and categories in one transaction.

		The aggregate's ID, timestamps and assignment ids are populated on success.

		Returns:
		  - error: apperr.Conflict on slug collision or vanished references
	*/
	Create(context context.Context, aggregate *Aggregate) error

	/*
		Update replaces the scalars and both collections of an existing project
		in one transaction. Assignments are reconciled with [PlanAssignments].

		Returns:
		  - error: apperr.NotFound when the id is unknown, apperr.Conflict on
		    slug collision or vanished references
	*/
	Update(context context.Context, aggregate *Aggregate) error

	/*
		FormOptions reads the artist and category select lists.

		Returns:
		  - *FormOptions: Artists and categories; Roles is left empty
		  - error: Database failures
	*/
	FormOptions(context context.Context) (*FormOptions, error)
}

// # Form Options Cache

// FormOptionsCache stores the computed [FormOptions]. A miss is (nil, nil).
type FormOptionsCache interface {
	GetFormOptions(context context.Context) (*FormOptions, error)
	SetFormOptions(context context.Context, options *FormOptions) error
	InvalidateFormOptions(context context.Context) error
}
