// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
PostgreSQL implementation of the project aggregate.

Writes follow one shape: the scalar row is inserted or updated, then both
collections are rewritten inside the same transaction.
  - Categories: clear and batch insert.
  - Assignments: row-locked read, [PlanAssignments], delete/insert by plan,
    then the character links of every surviving assignment are rebuilt.

Nothing is written when any step fails; the deferred rollback discards the
partial transaction.
*/
package project

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dublab/studio/internal/platform/apperr"
	"github.com/dublab/studio/internal/platform/database/schema"
	"github.com/dublab/studio/internal/platform/dberr"
	"github.com/dublab/studio/internal/platform/postgres"
)

// # PostgreSQL Repositories

// projectRepository implements the [ProjectRepository] interface using pgx.
type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository constructs a PostgreSQL backed project store.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

var projectColumns = strings.Join(schema.CoreProject.Columns(), ", ")

func scanProject(row pgx.Row, p *Project, extra ...any) error {
	targets := []any{
		&p.ID, &p.Title, &p.Slug, &p.Type, &p.Description, &p.CoverImagePublicID, &p.BannerImagePublicID,
		&p.ReleaseDate, &p.IsPublished, &p.Price, &p.Currency, &p.ExternalWatchURL, &p.TrailerURL,
		&p.CreatedAt, &p.UpdatedAt,
	}
	return row.Scan(append(targets, extra...)...)
}

// # Reads

/*
List returns a filtered, paginated slice of projects and the total count.

COUNT(*) OVER() carries the total on every row so one round trip is enough.
*/
func (repository *projectRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Summary, int, error) {
	var (
		conditions []string
		args       []any
	)

	if query := strings.TrimSpace(filter.Query); query != "" {
		args = append(args, "%"+query+"%")
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", schema.CoreProject.Title, len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.CoreProject.Type, len(args)))
	}
	if filter.Published != nil {
		args = append(args, *filter.Published)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.CoreProject.IsPublished, len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER()
		FROM %s
		%s
		ORDER BY %s DESC, %s DESC
		LIMIT $%d OFFSET $%d
	`,
		projectColumns, schema.CoreProject.Table, where,
		schema.CoreProject.UpdatedAt, schema.CoreProject.ID,
		len(args)-1, len(args),
	)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_projects")
	}
	defer rows.Close()

	total := 0
	projects := make([]*Summary, 0)
	for rows.Next() {
		summary := &Summary{}
		if err := scanProject(rows, &summary.Project, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_project")
		}
		projects = append(projects, summary)
	}

	return projects, total, dberr.Wrap(rows.Err(), "list_projects")
}

// FindBySlug loads the scalar row and both collections.
func (repository *projectRepository) FindBySlug(context context.Context, slug string) (*Aggregate, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		projectColumns, schema.CoreProject.Table, schema.CoreProject.Slug)

	aggregate := &Aggregate{}
	err := scanProject(repository.pool.QueryRow(context, query, slug), &aggregate.Project)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Project")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_project")
	}

	if aggregate.CategoryIDs, err = repository.categoryIDs(context, aggregate.ID); err != nil {
		return nil, err
	}
	if aggregate.Assignments, err = repository.assignments(context, aggregate.ID); err != nil {
		return nil, err
	}

	return aggregate, nil
}

func (repository *projectRepository) categoryIDs(context context.Context, projectID int64) ([]int64, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		schema.CoreProjectCategory.CategoryID, schema.CoreProjectCategory.Table,
		schema.CoreProjectCategory.ProjectID, schema.CoreProjectCategory.CategoryID)

	rows, err := repository.pool.Query(context, query, projectID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_project_categories")
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, dberr.Wrap(err, "scan_project_category")
	}
	return ids, nil
}

// assignments returns the project's assignments in insertion order with their
// character links aggregated into an array.
func (repository *projectRepository) assignments(context context.Context, projectID int64) ([]Assignment, error) {
	query := fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s,
		       COALESCE(array_agg(ac.%s ORDER BY ac.%s) FILTER (WHERE ac.%s IS NOT NULL), '{}')::bigint[]
		FROM %s a
		LEFT JOIN %s ac ON ac.%s = a.%s
		WHERE a.%s = $1
		GROUP BY a.%s
		ORDER BY a.%s
	`,
		schema.CoreProjectAssignment.ID, schema.CoreProjectAssignment.ArtistID, schema.CoreProjectAssignment.Role,
		schema.CoreAssignmentCharacter.CharacterID, schema.CoreAssignmentCharacter.CharacterID, schema.CoreAssignmentCharacter.CharacterID,
		schema.CoreProjectAssignment.Table,
		schema.CoreAssignmentCharacter.Table, schema.CoreAssignmentCharacter.AssignmentID, schema.CoreProjectAssignment.ID,
		schema.CoreProjectAssignment.ProjectID,
		schema.CoreProjectAssignment.ID,
		schema.CoreProjectAssignment.ID,
	)

	rows, err := repository.pool.Query(context, query, projectID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_project_assignments")
	}
	defer rows.Close()

	assignments := make([]Assignment, 0)
	for rows.Next() {
		var assignment Assignment
		if err := rows.Scan(&assignment.ID, &assignment.ArtistID, &assignment.Role, &assignment.CharacterIDs); err != nil {
			return nil, dberr.Wrap(err, "scan_project_assignment")
		}
		if len(assignment.CharacterIDs) == 0 {
			assignment.CharacterIDs = nil
		}
		assignments = append(assignments, assignment)
	}

	return assignments, dberr.Wrap(rows.Err(), "list_project_assignments")
}

func (repository *projectRepository) SlugTaken(context context.Context, slug string, excludeID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s <> $2)`,
		schema.CoreProject.Table, schema.CoreProject.Slug, schema.CoreProject.ID)

	var taken bool
	if err := repository.pool.QueryRow(context, query, slug, excludeID).Scan(&taken); err != nil {
		return false, dberr.Wrap(err, "check_project_slug")
	}
	return taken, nil
}

/*
MissingReferences returns the subset of refs that does not resolve.

Each kind is checked with a single anti-join over unnest($1), so the cost does
not grow with round trips.
*/
func (repository *projectRepository) MissingReferences(context context.Context, projectID int64, refs References) (References, error) {
	var (
		missing References
		err     error
	)

	missing.ArtistIDs, err = repository.missingIDs(context, refs.ArtistIDs,
		schema.CoreDubbingArtist.Table, schema.CoreDubbingArtist.ID, "")
	if err != nil {
		return References{}, err
	}

	missing.CategoryIDs, err = repository.missingIDs(context, refs.CategoryIDs,
		schema.CoreCategory.Table, schema.CoreCategory.ID, "")
	if err != nil {
		return References{}, err
	}

	scope := fmt.Sprintf("AND %s = %d", schema.CoreCharacter.ProjectID, projectID)
	missing.CharacterIDs, err = repository.missingIDs(context, refs.CharacterIDs,
		schema.CoreCharacter.Table, schema.CoreCharacter.ID, scope)
	if err != nil {
		return References{}, err
	}

	return missing, nil
}

func (repository *projectRepository) missingIDs(context context.Context, ids []int64, table, idColumn, scope string) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT ref.id
		FROM unnest($1::bigint[]) AS ref(id)
		WHERE NOT EXISTS (SELECT 1 FROM %s WHERE %s = ref.id %s)
		ORDER BY ref.id
	`, table, idColumn, scope)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "check_references")
	}

	missing, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, dberr.Wrap(err, "check_references")
	}
	if len(missing) == 0 {
		return nil, nil
	}
	return missing, nil
}

func (repository *projectRepository) FormOptions(context context.Context) (*FormOptions, error) {
	artistQuery := fmt.Sprintf(`
		SELECT %s, TRIM(%s || ' ' || %s)
		FROM %s
		ORDER BY %s, %s
	`,
		schema.CoreDubbingArtist.ID, schema.CoreDubbingArtist.FirstName, schema.CoreDubbingArtist.LastName,
		schema.CoreDubbingArtist.Table,
		schema.CoreDubbingArtist.FirstName, schema.CoreDubbingArtist.LastName,
	)

	categoryQuery := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s`,
		schema.CoreCategory.ID, schema.CoreCategory.Name, schema.CoreCategory.Table, schema.CoreCategory.Name)

	options := &FormOptions{}
	var err error

	if options.Artists, err = repository.options(context, artistQuery); err != nil {
		return nil, err
	}
	if options.Categories, err = repository.options(context, categoryQuery); err != nil {
		return nil, err
	}

	return options, nil
}

func (repository *projectRepository) options(context context.Context, query string) ([]Option, error) {
	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_form_options")
	}

	options, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Option, error) {
		var option Option
		err := row.Scan(&option.Value, &option.Label)
		return option, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_form_option")
	}
	return options, nil
}

// # Writes

func (repository *projectRepository) Create(context context.Context, aggregate *Aggregate) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING %s, %s, %s
	`,
		schema.CoreProject.Table,
		schema.CoreProject.Title, schema.CoreProject.Slug, schema.CoreProject.Type, schema.CoreProject.Description,
		schema.CoreProject.CoverImagePublicID, schema.CoreProject.BannerImagePublicID, schema.CoreProject.ReleaseDate,
		schema.CoreProject.IsPublished, schema.CoreProject.Price, schema.CoreProject.Currency,
		schema.CoreProject.ExternalWatchURL, schema.CoreProject.TrailerURL,
		schema.CoreProject.ID, schema.CoreProject.CreatedAt, schema.CoreProject.UpdatedAt,
	)

	err := postgres.WithTx(context, repository.pool, func(transaction pgx.Tx) error {
		p := &aggregate.Project
		err := transaction.QueryRow(context, query,
			p.Title, p.Slug, p.Type, p.Description, p.CoverImagePublicID, p.BannerImagePublicID, p.ReleaseDate,
			p.IsPublished, p.Price, p.Currency, p.ExternalWatchURL, p.TrailerURL,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return err
		}

		return repository.replaceCollections(context, transaction, aggregate)
	})

	return classifyWriteError(err, "create_project")
}

func (repository *projectRepository) Update(context context.Context, aggregate *Aggregate) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
			%s = $8, %s = $9, %s = $10, %s = $11, %s = $12, %s = $13,
			%s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CoreProject.Table,
		schema.CoreProject.Title, schema.CoreProject.Slug, schema.CoreProject.Type, schema.CoreProject.Description,
		schema.CoreProject.CoverImagePublicID, schema.CoreProject.BannerImagePublicID,
		schema.CoreProject.ReleaseDate, schema.CoreProject.IsPublished, schema.CoreProject.Price,
		schema.CoreProject.Currency, schema.CoreProject.ExternalWatchURL, schema.CoreProject.TrailerURL,
		schema.CoreProject.UpdatedAt,
		schema.CoreProject.ID,
		schema.CoreProject.CreatedAt, schema.CoreProject.UpdatedAt,
	)

	err := postgres.WithTx(context, repository.pool, func(transaction pgx.Tx) error {
		p := &aggregate.Project
		err := transaction.QueryRow(context, query, p.ID,
			p.Title, p.Slug, p.Type, p.Description, p.CoverImagePublicID, p.BannerImagePublicID,
			p.ReleaseDate, p.IsPublished, p.Price, p.Currency, p.ExternalWatchURL, p.TrailerURL,
		).Scan(&p.CreatedAt, &p.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Project")
		}
		if err != nil {
			return err
		}

		return repository.replaceCollections(context, transaction, aggregate)
	})

	return classifyWriteError(err, "update_project")
}

func (repository *projectRepository) replaceCollections(context context.Context, transaction pgx.Tx, aggregate *Aggregate) error {
	if err := replaceCategories(context, transaction, aggregate.ID, aggregate.CategoryIDs); err != nil {
		return err
	}
	return reconcileAssignments(context, transaction, aggregate)
}

// replaceCategories clears the junction and re-inserts the submitted ids in one batch.
func replaceCategories(context context.Context, transaction pgx.Tx, projectID int64, categoryIDs []int64) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreProjectCategory.Table, schema.CoreProjectCategory.ProjectID)
	if _, err := transaction.Exec(context, deleteQuery, projectID); err != nil {
		return err
	}

	if len(categoryIDs) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.CoreProjectCategory.Table, schema.CoreProjectCategory.ProjectID, schema.CoreProjectCategory.CategoryID)

	batch := &pgx.Batch{}
	for _, categoryID := range categoryIDs {
		batch.Queue(insertQuery, projectID, categoryID)
	}
	return transaction.SendBatch(context, batch).Close()
}

/*
reconcileAssignments applies [PlanAssignments] to the stored rows.

The stored assignments are read FOR UPDATE so a concurrent save of the same
project waits instead of interleaving. On return every assignment in the
aggregate carries its row id.
*/
func reconcileAssignments(context context.Context, transaction pgx.Tx, aggregate *Aggregate) error {
	selectQuery := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1 FOR UPDATE`,
		schema.CoreProjectAssignment.ID, schema.CoreProjectAssignment.ArtistID, schema.CoreProjectAssignment.Role,
		schema.CoreProjectAssignment.Table, schema.CoreProjectAssignment.ProjectID)

	rows, err := transaction.Query(context, selectQuery, aggregate.ID)
	if err != nil {
		return err
	}
	existing, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Assignment, error) {
		var assignment Assignment
		err := row.Scan(&assignment.ID, &assignment.ArtistID, &assignment.Role)
		return assignment, err
	})
	if err != nil {
		return err
	}

	plan := PlanAssignments(existing, aggregate.Assignments)

	if len(plan.Remove) > 0 {
		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1)`,
			schema.CoreProjectAssignment.Table, schema.CoreProjectAssignment.ID)
		if _, err := transaction.Exec(context, deleteQuery, plan.Remove); err != nil {
			return err
		}
	}

	if len(plan.Insert) > 0 {
		insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s`,
			schema.CoreProjectAssignment.Table,
			schema.CoreProjectAssignment.ProjectID, schema.CoreProjectAssignment.ArtistID, schema.CoreProjectAssignment.Role,
			schema.CoreProjectAssignment.ID)

		batch := &pgx.Batch{}
		for _, assignment := range plan.Insert {
			batch.Queue(insertQuery, aggregate.ID, assignment.ArtistID, assignment.Role)
		}

		results := transaction.SendBatch(context, batch)
		for index := range plan.Insert {
			if err := results.QueryRow().Scan(&plan.Insert[index].ID); err != nil {
				results.Close()
				return err
			}
		}
		if err := results.Close(); err != nil {
			return err
		}
	}

	// Keep and Insert together hold the submitted pairs; restore submission order.
	ids := make(map[assignmentKey]int64, len(plan.Keep)+len(plan.Insert))
	for _, assignment := range append(plan.Keep, plan.Insert...) {
		ids[assignmentKey{assignment.ArtistID, assignment.Role}] = assignment.ID
	}
	for index := range aggregate.Assignments {
		assignment := &aggregate.Assignments[index]
		assignment.ID = ids[assignmentKey{assignment.ArtistID, assignment.Role}]
	}

	return replaceCharacterLinks(context, transaction, plan.Keep, aggregate.Assignments)
}

// replaceCharacterLinks drops the links of kept assignments and writes the
// submitted ones. New assignments have no links to drop.
func replaceCharacterLinks(context context.Context, transaction pgx.Tx, kept, assignments []Assignment) error {
	if len(kept) > 0 {
		keptIDs := make([]int64, len(kept))
		for index, assignment := range kept {
			keptIDs[index] = assignment.ID
		}

		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1)`,
			schema.CoreAssignmentCharacter.Table, schema.CoreAssignmentCharacter.AssignmentID)
		if _, err := transaction.Exec(context, deleteQuery, keptIDs); err != nil {
			return err
		}
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.CoreAssignmentCharacter.Table, schema.CoreAssignmentCharacter.AssignmentID, schema.CoreAssignmentCharacter.CharacterID)

	batch := &pgx.Batch{}
	for _, assignment := range assignments {
		for _, characterID := range assignment.CharacterIDs {
			batch.Queue(insertQuery, assignment.ID, characterID)
		}
	}
	if batch.Len() == 0 {
		return nil
	}
	return transaction.SendBatch(context, batch).Close()
}

// classifyWriteError maps constraint violations raised inside the aggregate
// transaction to the messages the admin form shows.
func classifyWriteError(err error, action string) error {
	switch {
	case err == nil:
		return nil
	case apperr.IsAppError(err):
		return err
	case dberr.IsUniqueViolation(err) && dberr.Constraint(err) == "project_slug_key":
		return apperr.Conflict(msgSlugTaken)
	case dberr.IsForeignKeyViolation(err):
		return apperr.Conflict(msgReferenceChanged)
	}
	return dberr.Wrap(err, action)
}
