package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dublab/studio/internal/platform/apperr"
	"github.com/dublab/studio/internal/platform/database/schema"
	"github.com/dublab/studio/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = fmt.Sprintf("%s, %s, %s, %s",
	schema.CoreCategory.ID, schema.CoreCategory.Name, schema.CoreCategory.Slug, schema.CoreCategory.CreatedAt)

func (repository *PostgresRepository) List(context context.Context) ([]*Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		selectColumns, schema.CoreCategory.Table, schema.CoreCategory.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, dberr.Wrap(rows.Err(), "list_categories")
}

func (repository *PostgresRepository) Get(context context.Context, id int64) (*Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CoreCategory.Table, schema.CoreCategory.ID)

	c := &Category{}
	err := repository.db.QueryRow(context, query, id).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Category")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_category")
	}
	return c, nil
}

func (repository *PostgresRepository) FindConflict(context context.Context, name, slug string, excludeID int64) (*Category, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE (lower(%s) = lower($1) OR %s = $2) AND %s <> $3
		LIMIT 1
	`,
		selectColumns, schema.CoreCategory.Table,
		schema.CoreCategory.Name, schema.CoreCategory.Slug, schema.CoreCategory.ID,
	)

	c := &Category{}
	err := repository.db.QueryRow(context, query, name, slug, excludeID).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_category_conflict")
	}
	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, c *Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		RETURNING %s, %s
	`,
		schema.CoreCategory.Table, schema.CoreCategory.Name, schema.CoreCategory.Slug,
		schema.CoreCategory.ID, schema.CoreCategory.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, c.Name, c.Slug).Scan(&c.ID, &c.CreatedAt)
	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict(msgDuplicate)
	}
	return dberr.Wrap(err, "create_category")
}

func (repository *PostgresRepository) Update(context context.Context, c *Category) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CoreCategory.Table, schema.CoreCategory.Name, schema.CoreCategory.Slug,
		schema.CoreCategory.ID, schema.CoreCategory.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, c.ID, c.Name, c.Slug).Scan(&c.CreatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return apperr.NotFound("Category")
	case dberr.IsUniqueViolation(err):
		return apperr.Conflict(msgDuplicate)
	}
	return dberr.Wrap(err, "update_category")
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreCategory.Table, schema.CoreCategory.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if dberr.IsForeignKeyViolation(err) {
		return apperr.Conflict(msgInUse)
	}
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}
	return nil
}
