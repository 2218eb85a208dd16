package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/linkfeed/internal/common"
	"github.com/dmitrijs2005/linkfeed/internal/dbx"
	"github.com/dmitrijs2005/linkfeed/internal/server/models"
	"github.com/dmitrijs2005/linkfeed/internal/server/repositories/repomanager"
)

// FeedArgs is a feed request as received from the caller. Nil Skip means 0
// and nil Take means "all remaining".
type FeedArgs struct {
	Filter  string
	Skip    *int
	Take    *int
	OrderBy []models.OrderBy
}

// Feed is one page of links, the number of links matching the filter and the
// fingerprint of the parameters that produced it.
type Feed struct {
	ID    string
	Links []*models.Link
	Count int
}

// feedKey is the canonical form of a query that the feed id is built from.
// Field order here fixes the order in the encoded id.
type feedKey struct {
	Filter  string           `json:"filter"`
	Skip    int              `json:"skip"`
	Take    *int             `json:"take"`
	OrderBy []models.OrderBy `json:"orderBy"`
}

// FeedService resolves the link feed.
type FeedService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	maxPageSize int
}

// NewFeedService constructs a FeedService. maxPageSize of 0 disables the
// upper bound on Take.
func NewFeedService(db *sql.DB, m repomanager.RepositoryManager, maxPageSize int) *FeedService {
	return &FeedService{db: db, repomanager: m, maxPageSize: maxPageSize}
}

// Resolve validates args and reads the page and the total count from one
// snapshot of the store.
func (s *FeedService) Resolve(ctx context.Context, args FeedArgs) (*Feed, error) {
	q, err := s.normalize(args)
	if err != nil {
		return nil, err
	}

	id, err := feedID(q)
	if err != nil {
		return nil, err
	}

	feed := &Feed{ID: id}
	err = dbx.WithTx(ctx, s.db, dbx.ReadSnapshot, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Links(tx)

		links, err := repo.FindMany(ctx, q)
		if err != nil {
			return fmt.Errorf("error reading feed: %w", err)
		}
		count, err := repo.Count(ctx, q.Filter)
		if err != nil {
			return fmt.Errorf("error counting feed: %w", err)
		}

		feed.Links, feed.Count = links, count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return feed, nil
}

// Relations resolves posters and voters of feed links with two batched reads.
func (s *FeedService) Relations(ctx context.Context, links []*models.Link) (*Relations, error) {
	return resolveRelations(ctx, s.repomanager, s.db, links)
}

func (s *FeedService) normalize(args FeedArgs) (models.LinkQuery, error) {
	q := models.LinkQuery{Filter: args.Filter}

	if args.Skip != nil {
		if *args.Skip < 0 {
			return q, common.Validationf("skip must not be negative")
		}
		q.Skip = *args.Skip
	}
	if args.Take != nil {
		take := *args.Take
		if take < 0 {
			return q, common.Validationf("take must not be negative")
		}
		if s.maxPageSize > 0 && take > s.maxPageSize {
			return q, common.Validationf("take must not exceed %d", s.maxPageSize)
		}
		q.Take = &take
	}

	q.OrderBy = make([]models.OrderBy, 0, len(args.OrderBy))
	for _, o := range args.OrderBy {
		switch o.Field {
		case models.FieldDescription, models.FieldURL, models.FieldCreatedAt:
		default:
			return q, common.Validationf("unknown order field %q", o.Field)
		}
		dir := strings.ToLower(o.Direction)
		if dir != models.Asc && dir != models.Desc {
			return q, common.Validationf("unknown order direction %q", o.Direction)
		}
		q.OrderBy = append(q.OrderBy, models.OrderBy{Field: o.Field, Direction: dir})
	}

	return q, nil
}

func feedID(q models.LinkQuery) (string, error) {
	b, err := json.Marshal(feedKey{Filter: q.Filter, Skip: q.Skip, Take: q.Take, OrderBy: q.OrderBy})
	if err != nil {
		return "", fmt.Errorf("%w: encoding feed id: %v", common.ErrInternal, err)
	}
	return common.FeedIDPrefix + string(b), nil
}
