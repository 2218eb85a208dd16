package services

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/linkfeed/internal/common"
	"github.com/dmitrijs2005/linkfeed/internal/dbx"
	"github.com/dmitrijs2005/linkfeed/internal/server/models"
	linksrepo "github.com/dmitrijs2005/linkfeed/internal/server/repositories/links"
	usersrepo "github.com/dmitrijs2005/linkfeed/internal/server/repositories/users"
	votesrepo "github.com/dmitrijs2005/linkfeed/internal/server/repositories/votes"
	_ "modernc.org/sqlite"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// newTxDB returns a real database usable as a transaction carrier when the
// repositories themselves are faked.
func newTxDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sql.Open error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func ptr[T any](v T) *T { return &v }

// memStore is an in-memory stand-in for the relational store. It enforces
// the same uniqueness and reference rules the schema does.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
	links  map[int64]*models.Link
	votes  []*models.Vote

	lastQuery models.LinkQuery
	err       error
}

func newMemStore() *memStore {
	return &memStore{users: map[int64]*models.User{}, links: map[int64]*models.Link{}}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) addUser(name, email, hash string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &models.User{ID: s.id(), Name: name, Email: email, Password: hash, CreatedAt: time.Now()}
	s.users[u.ID] = u
	return u
}

func (s *memStore) addLink(description, url string, poster *int64) *models.Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := &models.Link{ID: s.id(), Description: description, URL: url, PostedByID: poster, CreatedAt: time.Now()}
	s.links[l.ID] = l
	return l
}

func (s *memStore) votesFor(linkID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.votes {
		if v.LinkID == linkID {
			n++
		}
	}
	return n
}

type fakeRepoManager struct{ s *memStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return &memUsers{m.s} }
func (m *fakeRepoManager) Links(dbx.DBTX) linksrepo.Repository          { return &memLinks{m.s} }
func (m *fakeRepoManager) Votes(dbx.DBTX) votesrepo.Repository          { return &memVotes{m.s} }

type memUsers struct{ s *memStore }

func (r *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, other := range r.s.users {
		if other.Email == u.Email {
			return nil, common.ErrConstraintViolation
		}
	}
	u.ID = r.s.id()
	u.CreatedAt = time.Now()
	r.s.users[u.ID] = u
	return u, nil
}

func (r *memUsers) FindByID(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUsers) FindByIDs(_ context.Context, ids []int64) (map[int64]*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[int64]*models.User{}
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type memLinks struct{ s *memStore }

func (r *memLinks) Create(_ context.Context, l *models.Link) (*models.Link, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l.PostedByID != nil {
		if _, ok := r.s.users[*l.PostedByID]; !ok {
			return nil, common.ErrNotFound
		}
	}
	l.ID = r.s.id()
	l.CreatedAt = time.Now()
	r.s.links[l.ID] = l
	return l, nil
}

func (r *memLinks) FindByID(_ context.Context, id int64) (*models.Link, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.links[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (r *memLinks) matching(filter string) []*models.Link {
	out := []*models.Link{}
	for _, l := range r.s.links {
		if filter == "" || strings.Contains(l.Description, filter) || strings.Contains(l.URL, filter) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FindMany honours filter and pagination; ordering is left to the SQL
// repository and is always by id here.
func (r *memLinks) FindMany(_ context.Context, q models.LinkQuery) ([]*models.Link, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lastQuery = q
	if r.s.err != nil {
		return nil, r.s.err
	}
	all := r.matching(q.Filter)
	if q.Skip >= len(all) {
		return []*models.Link{}, nil
	}
	all = all[q.Skip:]
	if q.Take != nil && *q.Take < len(all) {
		all = all[:*q.Take]
	}
	return all, nil
}

func (r *memLinks) Count(_ context.Context, filter string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.matching(filter)), nil
}

func (r *memLinks) Update(_ context.Context, id int64, p models.LinkPatch) (*models.Link, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.links[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.URL != nil {
		l.URL = *p.URL
	}
	cp := *l
	return &cp, nil
}

func (r *memLinks) Delete(_ context.Context, id int64) (*models.Link, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.links[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	delete(r.s.links, id)
	return l, nil
}

func (r *memLinks) FindByPoster(_ context.Context, userID int64) ([]*models.Link, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Link{}
	for _, l := range r.matching("") {
		if l.PostedByID != nil && *l.PostedByID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

type memVotes struct{ s *memStore }

func (r *memVotes) Create(_ context.Context, userID, linkID int64) (*models.Vote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.links[linkID]; !ok {
		return nil, common.ErrNotFound
	}
	for _, v := range r.s.votes {
		if v.UserID == userID && v.LinkID == linkID {
			return nil, common.ErrConstraintViolation
		}
	}
	v := &models.Vote{ID: r.s.id(), UserID: userID, LinkID: linkID, CreatedAt: time.Now()}
	r.s.votes = append(r.s.votes, v)
	return v, nil
}

func (r *memVotes) DeleteByLink(_ context.Context, linkID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.votes[:0]
	var n int64
	for _, v := range r.s.votes {
		if v.LinkID == linkID {
			n++
			continue
		}
		kept = append(kept, v)
	}
	r.s.votes = kept
	return n, nil
}

func (r *memVotes) VotersByLink(ctx context.Context, linkID int64) ([]*models.User, error) {
	m, err := r.VotersByLinks(ctx, []int64{linkID})
	if err != nil {
		return nil, err
	}
	if v, ok := m[linkID]; ok {
		return v, nil
	}
	return []*models.User{}, nil
}

func (r *memVotes) VotersByLinks(_ context.Context, linkIDs []int64) (map[int64][]*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := map[int64]bool{}
	for _, id := range linkIDs {
		want[id] = true
	}
	out := map[int64][]*models.User{}
	for _, v := range r.s.votes {
		if want[v.LinkID] {
			out[v.LinkID] = append(out[v.LinkID], r.s.users[v.UserID])
		}
	}
	return out, nil
}
