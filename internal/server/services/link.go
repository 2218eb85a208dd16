package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/linkfeed/internal/common"
	"github.com/dmitrijs2005/linkfeed/internal/dbx"
	"github.com/dmitrijs2005/linkfeed/internal/server/models"
	"github.com/dmitrijs2005/linkfeed/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/linkfeed/internal/server/session"
)

// PostInput carries the fields of a new link.
type PostInput struct {
	Description string
	URL         string
}

// VoteReceipt is the result of a successful vote.
type VoteReceipt struct {
	Vote *models.Vote
	Link *models.Link
	User *models.User
}

// Relations holds the resolved poster and voters of a set of links, keyed by
// user id and link id respectively.
type Relations struct {
	Posters map[int64]*models.User
	Voters  map[int64][]*models.User
}

// PostedBy returns the poster of l, or nil for unowned links.
func (r *Relations) PostedBy(l *models.Link) *models.User {
	if l.PostedByID == nil {
		return nil
	}
	return r.Posters[*l.PostedByID]
}

// VotersOf returns the voters of l; never nil.
func (r *Relations) VotersOf(l *models.Link) []*models.User {
	if v, ok := r.Voters[l.ID]; ok {
		return v
	}
	return []*models.User{}
}

// LinkService applies link mutations and resolves link relations.
type LinkService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewLinkService(db *sql.DB, m repomanager.RepositoryManager) *LinkService {
	return &LinkService{db: db, repomanager: m}
}

// Link returns the link with id, or nil (and no error) when there is none.
func (s *LinkService) Link(ctx context.Context, id int64) (*models.Link, error) {
	link, err := s.repomanager.Links(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading link: %w", err)
	}
	return link, nil
}

// Post creates a link owned by the session's user.
func (s *LinkService) Post(ctx context.Context, sess session.Session, in PostInput) (*models.Link, error) {
	userID, err := sess.RequireUser()
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Description) == "" {
		return nil, common.Validationf("description is required")
	}
	if strings.TrimSpace(in.URL) == "" {
		return nil, common.Validationf("url is required")
	}

	link, err := s.repomanager.Links(s.db).Create(ctx, &models.Link{
		Description: in.Description,
		URL:         in.URL,
		PostedByID:  &userID,
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// the token names a user the store does not know
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("error creating link: %w", err)
	}
	return link, nil
}

// Update changes the supplied fields of link id and keeps the rest.
func (s *LinkService) Update(ctx context.Context, id int64, patch models.LinkPatch) (*models.Link, error) {
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return nil, common.Validationf("description must not be empty")
	}
	if patch.URL != nil && strings.TrimSpace(*patch.URL) == "" {
		return nil, common.Validationf("url must not be empty")
	}

	repo := s.repomanager.Links(s.db)
	if patch.Empty() {
		return repo.FindByID(ctx, id)
	}
	return repo.Update(ctx, id, patch)
}

// Delete removes link id together with its votes and returns the link as it
// was before removal.
func (s *LinkService) Delete(ctx context.Context, id int64) (*models.Link, error) {
	var deleted *models.Link
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Votes(tx).DeleteByLink(ctx, id); err != nil {
			return fmt.Errorf("error deleting votes: %w", err)
		}
		link, err := s.repomanager.Links(tx).Delete(ctx, id)
		if err != nil {
			return err
		}
		deleted = link
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// Vote records the session user's vote for linkID. Voting twice for the same
// link yields common.ErrConstraintViolation.
func (s *LinkService) Vote(ctx context.Context, sess session.Session, linkID int64) (*VoteReceipt, error) {
	userID, err := sess.RequireUser()
	if err != nil {
		return nil, err
	}

	receipt := &VoteReceipt{}
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		link, err := s.repomanager.Links(tx).FindByID(ctx, linkID)
		if err != nil {
			return err
		}
		user, err := s.repomanager.Users(tx).FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrUnauthenticated
			}
			return err
		}
		vote, err := s.repomanager.Votes(tx).Create(ctx, userID, linkID)
		if err != nil {
			return err
		}
		receipt.Vote, receipt.Link, receipt.User = vote, link, user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// Relations resolves posters and voters of links with two batched reads.
func (s *LinkService) Relations(ctx context.Context, links []*models.Link) (*Relations, error) {
	return resolveRelations(ctx, s.repomanager, s.db, links)
}

func resolveRelations(ctx context.Context, m repomanager.RepositoryManager, db dbx.DBTX, links []*models.Link) (*Relations, error) {
	seen := make(map[int64]struct{})
	posterIDs := make([]int64, 0, len(links))
	linkIDs := make([]int64, 0, len(links))
	for _, l := range links {
		linkIDs = append(linkIDs, l.ID)
		if l.PostedByID == nil {
			continue
		}
		if _, ok := seen[*l.PostedByID]; !ok {
			seen[*l.PostedByID] = struct{}{}
			posterIDs = append(posterIDs, *l.PostedByID)
		}
	}

	posters, err := m.Users(db).FindByIDs(ctx, posterIDs)
	if err != nil {
		return nil, fmt.Errorf("error resolving posters: %w", err)
	}
	voters, err := m.Votes(db).VotersByLinks(ctx, linkIDs)
	if err != nil {
		return nil, fmt.Errorf("error resolving voters: %w", err)
	}
	return &Relations{Posters: posters, Voters: voters}, nil
}
