// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

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
)

// PostgresRepository implements [AccountRepository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed account store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var accountColumns = strings.Join(schema.UserAccount.Columns(), ", ")

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	return user, err
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("User")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_account")
	}
	return user, nil
}

func (repository *PostgresRepository) UsernameTaken(context context.Context, username, excludeID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE lower(%s) = lower($1) AND %s <> $2)`,
		schema.UserAccount.Table, schema.UserAccount.Username, schema.UserAccount.ID)

	var taken bool
	if err := repository.pool.QueryRow(context, query, username, excludeID).Scan(&taken); err != nil {
		return false, dberr.Wrap(err, "check_username")
	}
	return taken, nil
}

func (repository *PostgresRepository) UpdateUsername(context context.Context, id, username string) (*User, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.UserAccount.Table, schema.UserAccount.Username, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
		accountColumns,
	)

	user, err := scanUser(repository.pool.QueryRow(context, query, id, username))
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, apperr.NotFound("User")
	case dberr.IsUniqueViolation(err):
		return nil, apperr.Conflict(msgUsernameTaken)
	case err != nil:
		return nil, dberr.Wrap(err, "update_username")
	}
	return user, nil
}
