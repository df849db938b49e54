package category

import "context"

// Repository is the persistence contract for categories.
type Repository interface {
	List(context context.Context) ([]*Category, error)
	Get(context context.Context, id int64) (*Category, error)

	// FindConflict returns a category other than excludeID whose name or slug
	// matches, or nil when there is none. excludeID 0 excludes nothing.
	FindConflict(context context.Context, name, slug string, excludeID int64) (*Category, error)

	Create(context context.Context, c *Category) error
	Update(context context.Context, c *Category) error
	Delete(context context.Context, id int64) error
}
