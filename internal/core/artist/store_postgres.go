package artist

import (
	"context"
	"errors"
	"fmt"
	"strconv"

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

func (repository *PostgresRepository) ListArtists(context context.Context, f Filter, limit, offset int) ([]*Artist, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE TRUE
	`,
		schema.CoreDubbingArtist.ID, schema.CoreDubbingArtist.FirstName, schema.CoreDubbingArtist.LastName,
		schema.CoreDubbingArtist.Bio, schema.CoreDubbingArtist.ImagePublicID,
		schema.CoreDubbingArtist.CreatedAt, schema.CoreDubbingArtist.UpdatedAt,
		schema.CoreDubbingArtist.Table,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE TRUE`, schema.CoreDubbingArtist.Table)

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		condition := fmt.Sprintf(` AND (%s || ' ' || %s) ILIKE $1`, schema.CoreDubbingArtist.FirstName, schema.CoreDubbingArtist.LastName)
		query += condition
		countQuery += condition
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC, %s ASC LIMIT $%s OFFSET $%s",
		schema.CoreDubbingArtist.FirstName, schema.CoreDubbingArtist.LastName,
		strconv.Itoa(len(args)+1), strconv.Itoa(len(args)+2))
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_artists")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_artists")
	}
	defer rows.Close()

	artists := make([]*Artist, 0)
	for rows.Next() {
		a := &Artist{}
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Bio, &a.ImagePublicID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_artist")
		}
		artists = append(artists, a)
	}

	return artists, total, dberr.Wrap(rows.Err(), "list_artists")
}

func (repository *PostgresRepository) GetArtist(context context.Context, id int64) (*Artist, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreDubbingArtist.ID, schema.CoreDubbingArtist.FirstName, schema.CoreDubbingArtist.LastName,
		schema.CoreDubbingArtist.Bio, schema.CoreDubbingArtist.ImagePublicID,
		schema.CoreDubbingArtist.CreatedAt, schema.CoreDubbingArtist.UpdatedAt,
		schema.CoreDubbingArtist.Table, schema.CoreDubbingArtist.ID,
	)

	a := &Artist{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&a.ID, &a.FirstName, &a.LastName, &a.Bio, &a.ImagePublicID, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Artist")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_artist")
	}
	return a, nil
}

func (repository *PostgresRepository) CreateArtist(context context.Context, a *Artist) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CoreDubbingArtist.Table, schema.CoreDubbingArtist.FirstName, schema.CoreDubbingArtist.LastName,
		schema.CoreDubbingArtist.Bio, schema.CoreDubbingArtist.ImagePublicID,
		schema.CoreDubbingArtist.CreatedAt, schema.CoreDubbingArtist.UpdatedAt,
		schema.CoreDubbingArtist.ID, schema.CoreDubbingArtist.CreatedAt, schema.CoreDubbingArtist.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, a.FirstName, a.LastName, a.Bio, a.ImagePublicID).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return dberr.Wrap(err, "create_artist")
}

func (repository *PostgresRepository) UpdateArtist(context context.Context, a *Artist) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CoreDubbingArtist.Table, schema.CoreDubbingArtist.FirstName, schema.CoreDubbingArtist.LastName,
		schema.CoreDubbingArtist.Bio, schema.CoreDubbingArtist.ImagePublicID, schema.CoreDubbingArtist.UpdatedAt,
		schema.CoreDubbingArtist.ID,
		schema.CoreDubbingArtist.CreatedAt, schema.CoreDubbingArtist.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, a.ID, a.FirstName, a.LastName, a.Bio, a.ImagePublicID).Scan(&a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Artist")
	}
	return dberr.Wrap(err, "update_artist")
}

func (repository *PostgresRepository) DeleteArtist(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreDubbingArtist.Table, schema.CoreDubbingArtist.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if dberr.IsForeignKeyViolation(err) {
		return apperr.Conflict(msgInUse)
	}
	if err != nil {
		return dberr.Wrap(err, "delete_artist")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Artist")
	}
	return nil
}
