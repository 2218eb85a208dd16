// Package votes persists votes (one per user per link) and resolves voters.
package votes

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/linkfeed/internal/common"
	"github.com/dmitrijs2005/linkfeed/internal/dbx"
	"github.com/dmitrijs2005/linkfeed/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create records that userID voted for linkID. A second vote by the same user
// for the same link hits the votes_user_link_key constraint and yields
// common.ErrConstraintViolation; a dangling user or link yields
// common.ErrNotFound.
func (r *PostgresRepository) Create(ctx context.Context, userID, linkID int64) (*models.Vote, error) {
	query :=
		`INSERT INTO votes (user_id, link_id)
		 VALUES ($1, $2)
		 RETURNING id, created_at
		 `

	vote := &models.Vote{UserID: userID, LinkID: linkID}
	err := r.db.QueryRowContext(ctx, query, userID, linkID).Scan(&vote.ID, &vote.CreatedAt)
	if err != nil {
		switch {
		case dbx.IsUniqueViolation(err):
			return nil, fmt.Errorf("%w: user %d already voted for link %d", common.ErrConstraintViolation, userID, linkID)
		case dbx.IsForeignKeyViolation(err):
			return nil, fmt.Errorf("%w: user or link does not exist", common.ErrNotFound)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return vote, nil
}

// DeleteByLink removes every vote on linkID and reports how many were removed.
func (r *PostgresRepository) DeleteByLink(ctx context.Context, linkID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE link_id = $1`, linkID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) VotersByLink(ctx context.Context, linkID int64) ([]*models.User, error) {
	byLink, err := r.VotersByLinks(ctx, []int64{linkID})
	if err != nil {
		return nil, err
	}
	if voters, ok := byLink[linkID]; ok {
		return voters, nil
	}
	return []*models.User{}, nil
}

// VotersByLinks resolves the voters of several links in one query, binding
// linkIDs as one array parameter. Voters of each link are listed in vote
// order. Links without votes are absent from the map.
func (r *PostgresRepository) VotersByLinks(ctx context.Context, linkIDs []int64) (map[int64][]*models.User, error) {
	result := make(map[int64][]*models.User, len(linkIDs))
	if len(linkIDs) == 0 {
		return result, nil
	}

	query := `SELECT v.link_id, u.id, u.name, u.email, u.created_at
		 FROM votes v JOIN users u ON u.id = v.user_id
		 WHERE v.link_id = ANY($1)
		 ORDER BY v.link_id, v.id`

	rows, err := r.db.QueryContext(ctx, query, linkIDs)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var linkID int64
		u := &models.User{}
		if err := rows.Scan(&linkID, &u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result[linkID] = append(result[linkID], u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
