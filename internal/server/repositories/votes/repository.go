package votes

import (
	"context"

	"github.com/dmitrijs2005/linkfeed/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID, linkID int64) (*models.Vote, error)
	DeleteByLink(ctx context.Context, linkID int64) (int64, error)
	VotersByLink(ctx context.Context, linkID int64) ([]*models.User, error)
	VotersByLinks(ctx context.Context, linkIDs []int64) (map[int64][]*models.User, error)
}
