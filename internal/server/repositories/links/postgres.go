// Package links stores submitted links in PostgreSQL and composes feed
// queries (filter, ordering, pagination) into SQL.
package links

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/linkfeed/internal/common"
	"github.com/dmitrijs2005/linkfeed/internal/dbx"
	"github.com/dmitrijs2005/linkfeed/internal/server/models"
)

const selectColumns = `SELECT id, description, url, created_at, posted_by_id FROM links`

// PostgresRepository implements link storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts link and fills in ID and CreatedAt. A PostedByID that does
// not reference an existing user yields common.ErrNotFound.
func (r *PostgresRepository) Create(ctx context.Context, link *models.Link) (*models.Link, error) {
	query :=
		`INSERT INTO links (description, url, posted_by_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, link.Description, link.URL, link.PostedByID).
		Scan(&link.ID, &link.CreatedAt)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: poster does not exist", common.ErrNotFound)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return link, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Link, error) {
	query := selectColumns + ` WHERE id = $1`
	return scanOne(r.db.QueryRowContext(ctx, query, id))
}

// FindMany returns one page of links matching q.Filter in q.OrderBy order.
func (r *PostgresRepository) FindMany(ctx context.Context, q models.LinkQuery) ([]*models.Link, error) {
	order, err := orderClause(q.OrderBy)
	if err != nil {
		return nil, err
	}

	where, args := whereClause(q.Filter, nil)
	page, args := pageClause(q.Skip, q.Take, args)

	return r.queryMany(ctx, selectColumns+where+order+page, args...)
}

// Count returns how many links match filter, ignoring pagination.
func (r *PostgresRepository) Count(ctx context.Context, filter string) (int, error) {
	where, args := whereClause(filter, nil)

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM links`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// Update applies patch in one statement; fields left nil keep their value.
func (r *PostgresRepository) Update(ctx context.Context, id int64, patch models.LinkPatch) (*models.Link, error) {
	query :=
		`UPDATE links
		 SET description = COALESCE($2, description), url = COALESCE($3, url)
		 WHERE id = $1
		 RETURNING id, description, url, created_at, posted_by_id
		 `

	return scanOne(r.db.QueryRowContext(ctx, query, id, patch.Description, patch.URL))
}

// Delete removes the link and returns it as it was.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (*models.Link, error) {
	query :=
		`DELETE FROM links
		 WHERE id = $1
		 RETURNING id, description, url, created_at, posted_by_id
		 `

	return scanOne(r.db.QueryRowContext(ctx, query, id))
}

// FindByPoster lists the links created by userID, oldest first.
func (r *PostgresRepository) FindByPoster(ctx context.Context, userID int64) ([]*models.Link, error) {
	query := selectColumns + ` WHERE posted_by_id = $1 ORDER BY id ASC`
	return r.queryMany(ctx, query, userID)
}

func (r *PostgresRepository) queryMany(ctx context.Context, query string, args ...any) ([]*models.Link, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Link{}
	for rows.Next() {
		var (
			item     models.Link
			postedBy sql.NullInt64
		)
		if err := rows.Scan(&item.ID, &item.Description, &item.URL, &item.CreatedAt, &postedBy); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		item.PostedByID = nullableID(postedBy)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func scanOne(row *sql.Row) (*models.Link, error) {
	var (
		link     models.Link
		postedBy sql.NullInt64
	)
	err := row.Scan(&link.ID, &link.Description, &link.URL, &link.CreatedAt, &postedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	link.PostedByID = nullableID(postedBy)
	return &link, nil
}

func nullableID(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
