package category_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dublab/studio/internal/core/category"
	"github.com/dublab/studio/internal/platform/apperr"
)

// memoryRepository mimics the Postgres repository, including the foreign key
// from projects: ids in inUse cannot be deleted.
type memoryRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*category.Category
	inUse  map[int64]bool
}

func newMemoryRepository(seed ...category.Category) *memoryRepository {
	repo := &memoryRepository{rows: map[int64]*category.Category{}, inUse: map[int64]bool{}}
	for _, c := range seed {
		c := c
		repo.rows[c.ID] = &c
		if c.ID > repo.nextID {
			repo.nextID = c.ID
		}
	}
	return repo
}

func (m *memoryRepository) List(context.Context) ([]*category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*category.Category, 0, len(m.rows))
	for _, c := range m.rows {
		copied := *c
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryRepository) Get(_ context.Context, id int64) (*category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("Category")
	}
	copied := *c
	return &copied, nil
}

func (m *memoryRepository) FindConflict(_ context.Context, name, slug string, excludeID int64) (*category.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, c := range m.rows {
		if id != excludeID && (strings.EqualFold(c.Name, name) || c.Slug == slug) {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memoryRepository) Create(_ context.Context, c *category.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	c.ID = m.nextID
	c.CreatedAt = time.Now()
	copied := *c
	m.rows[c.ID] = &copied
	return nil
}

func (m *memoryRepository) Update(_ context.Context, c *category.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.rows[c.ID]
	if !ok {
		return apperr.NotFound("Category")
	}
	existing.Name, existing.Slug = c.Name, c.Slug
	c.CreatedAt = existing.CreatedAt
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return apperr.NotFound("Category")
	}
	if m.inUse[id] {
		return apperr.Conflict("This category is assigned to projects and cannot be deleted. Remove it from those projects first")
	}
	delete(m.rows, id)
	return nil
}

type countingCache struct {
	calls int
}

func (c *countingCache) InvalidateFormOptions(context.Context) error {
	c.calls++
	return nil
}
