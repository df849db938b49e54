// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dublab/studio/internal/core/project"
	"github.com/dublab/studio/internal/platform/apperr"
)

// memoryRepository mimics the Postgres repository: the aggregate is written
// atomically, assignments are reconciled with PlanAssignments and references
// are checked against the seeded artists, categories and characters.
type memoryRepository struct {
	mu sync.Mutex

	nextProjectID    int64
	nextAssignmentID int64
	nextCharacterID  int64

	projects   map[int64]*project.Aggregate
	artists    map[int64]string
	categories map[int64]string
	characters map[int64]*project.Character

	formOptionsReads int
	failWrite        error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		projects:   map[int64]*project.Aggregate{},
		artists:    map[int64]string{1: "Ayşe Yılmaz", 2: "Mert Kaya", 3: "Deniz Arslan"},
		categories: map[int64]string{1: "Aksiyon", 2: "Korku"},
		characters: map[int64]*project.Character{},
	}
}

func clone(aggregate *project.Aggregate) *project.Aggregate {
	copied := *aggregate
	copied.CategoryIDs = append([]int64(nil), aggregate.CategoryIDs...)
	copied.Assignments = make([]project.Assignment, len(aggregate.Assignments))
	for index, assignment := range aggregate.Assignments {
		assignment.CharacterIDs = append([]int64(nil), assignment.CharacterIDs...)
		if len(assignment.CharacterIDs) == 0 {
			assignment.CharacterIDs = nil
		}
		copied.Assignments[index] = assignment
	}
	return &copied
}

func (m *memoryRepository) bySlug(slug string) *project.Aggregate {
	for _, aggregate := range m.projects {
		if aggregate.Slug == slug {
			return aggregate
		}
	}
	return nil
}

func (m *memoryRepository) List(_ context.Context, filter project.Filter, limit, offset int) ([]*project.Summary, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []*project.Summary
	for _, aggregate := range m.projects {
		if filter.Query != "" && !strings.Contains(strings.ToLower(aggregate.Title), strings.ToLower(filter.Query)) {
			continue
		}
		if filter.Type != "" && aggregate.Type != filter.Type {
			continue
		}
		if filter.Published != nil && aggregate.IsPublished != *filter.Published {
			continue
		}
		matches = append(matches, &project.Summary{Project: aggregate.Project})
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })

	total := len(matches)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matches[offset:end], total, nil
}

func (m *memoryRepository) FindBySlug(_ context.Context, slug string) (*project.Aggregate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	aggregate := m.bySlug(slug)
	if aggregate == nil {
		return nil, apperr.NotFound("Project")
	}
	return clone(aggregate), nil
}

func (m *memoryRepository) SlugTaken(_ context.Context, slug string, excludeID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	aggregate := m.bySlug(slug)
	return aggregate != nil && aggregate.ID != excludeID, nil
}

func (m *memoryRepository) MissingReferences(_ context.Context, projectID int64, refs project.References) (project.References, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var missing project.References
	for _, id := range refs.ArtistIDs {
		if _, ok := m.artists[id]; !ok {
			missing.ArtistIDs = append(missing.ArtistIDs, id)
		}
	}
	for _, id := range refs.CategoryIDs {
		if _, ok := m.categories[id]; !ok {
			missing.CategoryIDs = append(missing.CategoryIDs, id)
		}
	}
	for _, id := range refs.CharacterIDs {
		if character, ok := m.characters[id]; !ok || character.ProjectID != projectID {
			missing.CharacterIDs = append(missing.CharacterIDs, id)
		}
	}
	return missing, nil
}

func (m *memoryRepository) Create(_ context.Context, aggregate *project.Aggregate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWrite != nil {
		return m.failWrite
	}
	if m.bySlug(aggregate.Slug) != nil {
		return apperr.Conflict("A project with this slug already exists")
	}

	m.nextProjectID++
	aggregate.ID = m.nextProjectID
	aggregate.CreatedAt = time.Now()
	aggregate.UpdatedAt = aggregate.CreatedAt
	m.apply(nil, aggregate)
	m.projects[aggregate.ID] = clone(aggregate)
	return nil
}

func (m *memoryRepository) Update(_ context.Context, aggregate *project.Aggregate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWrite != nil {
		return m.failWrite
	}
	current, ok := m.projects[aggregate.ID]
	if !ok {
		return apperr.NotFound("Project")
	}
	if other := m.bySlug(aggregate.Slug); other != nil && other.ID != aggregate.ID {
		return apperr.Conflict("A project with this slug already exists")
	}

	aggregate.CreatedAt = current.CreatedAt
	aggregate.UpdatedAt = time.Now()
	m.apply(current.Assignments, aggregate)
	m.projects[aggregate.ID] = clone(aggregate)
	return nil
}

// apply assigns row ids the way the Postgres reconciliation does: kept
// pairs retain their id, new pairs get the next sequence value.
func (m *memoryRepository) apply(existing []project.Assignment, aggregate *project.Aggregate) {
	type pair struct {
		artistID int64
		role     project.Role
	}

	plan := project.PlanAssignments(existing, aggregate.Assignments)
	kept := map[pair]int64{}
	for _, assignment := range plan.Keep {
		kept[pair{assignment.ArtistID, assignment.Role}] = assignment.ID
	}

	for index := range aggregate.Assignments {
		assignment := &aggregate.Assignments[index]
		if id, ok := kept[pair{assignment.ArtistID, assignment.Role}]; ok {
			assignment.ID = id
			continue
		}
		m.nextAssignmentID++
		assignment.ID = m.nextAssignmentID
	}
}

func (m *memoryRepository) FormOptions(context.Context) (*project.FormOptions, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.formOptionsReads++
	options := &project.FormOptions{}
	for id, name := range m.artists {
		options.Artists = append(options.Artists, project.Option{Value: id, Label: name})
	}
	for id, name := range m.categories {
		options.Categories = append(options.Categories, project.Option{Value: id, Label: name})
	}
	sort.Slice(options.Artists, func(i, j int) bool { return options.Artists[i].Label < options.Artists[j].Label })
	sort.Slice(options.Categories, func(i, j int) bool { return options.Categories[i].Label < options.Categories[j].Label })
	return options, nil
}

func (m *memoryRepository) ProjectIDBySlug(_ context.Context, slug string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	aggregate := m.bySlug(slug)
	if aggregate == nil {
		return 0, apperr.NotFound("Project")
	}
	return aggregate.ID, nil
}

func (m *memoryRepository) ListCharacters(_ context.Context, projectID int64) ([]*project.Character, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*project.Character, 0)
	for _, character := range m.characters {
		if character.ProjectID == projectID {
			copied := *character
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryRepository) CreateCharacter(_ context.Context, character *project.Character) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.characters {
		if existing.ProjectID == character.ProjectID && existing.Name == character.Name {
			return apperr.Conflict("A character with this name already exists in the project")
		}
	}

	m.nextCharacterID++
	character.ID = m.nextCharacterID
	character.CreatedAt = time.Now()
	copied := *character
	m.characters[character.ID] = &copied
	return nil
}

func (m *memoryRepository) DeleteCharacter(_ context.Context, projectID, characterID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	character, ok := m.characters[characterID]
	if !ok || character.ProjectID != projectID {
		return apperr.NotFound("Character")
	}
	delete(m.characters, characterID)

	// ON DELETE CASCADE on the link table.
	if aggregate, ok := m.projects[projectID]; ok {
		for index := range aggregate.Assignments {
			links := aggregate.Assignments[index].CharacterIDs[:0]
			for _, id := range aggregate.Assignments[index].CharacterIDs {
				if id != characterID {
					links = append(links, id)
				}
			}
			if len(links) == 0 {
				links = nil
			}
			aggregate.Assignments[index].CharacterIDs = links
		}
	}
	return nil
}

// memoryCache is an in-process FormOptionsCache.
type memoryCache struct {
	mu          sync.Mutex
	options     *project.FormOptions
	invalidated int
}

func (c *memoryCache) GetFormOptions(context.Context) (*project.FormOptions, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.options, nil
}

func (c *memoryCache) SetFormOptions(_ context.Context, options *project.FormOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.options = options
	return nil
}

func (c *memoryCache) InvalidateFormOptions(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.options = nil
	c.invalidated++
	return nil
}
