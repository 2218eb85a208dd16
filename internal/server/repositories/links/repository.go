package links

import (
	"context"

	"github.com/dmitrijs2005/linkfeed/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, link *models.Link) (*models.Link, error)
	FindByID(ctx context.Context, id int64) (*models.Link, error)
	FindMany(ctx context.Context, q models.LinkQuery) ([]*models.Link, error)
	Count(ctx context.Context, filter string) (int, error)
	Update(ctx context.Context, id int64, patch models.LinkPatch) (*models.Link, error)
	Delete(ctx context.Context, id int64) (*models.Link, error)
	FindByPoster(ctx context.Context, userID int64) ([]*models.Link, error)
}
