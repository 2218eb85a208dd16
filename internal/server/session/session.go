// Package session derives the per-request identity from an inbound bearer
// credential. A session is either anonymous or authenticated as one user; it
// never rejects a request by itself. Operations that need a user call
// RequireUser.
package session

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/linkfeed/internal/common"
)

// TokenDecoder turns a raw token into the user id it carries.
type TokenDecoder interface {
	DecodeToken(token string) (int64, error)
}

// Session is the identity of one request. The zero value is anonymous.
type Session struct {
	userID int64
}

func Anonymous() Session { return Session{} }

func Authenticated(userID int64) Session { return Session{userID: userID} }

// UserID returns the authenticated user id and true, or 0 and false.
func (s Session) UserID() (int64, bool) {
	return s.userID, s.userID > 0
}

// RequireUser returns the user id or common.ErrUnauthenticated.
func (s Session) RequireUser() (int64, error) {
	id, ok := s.UserID()
	if !ok {
		return 0, common.ErrUnauthenticated
	}
	return id, nil
}

// Derive builds the session for a raw Authorization header value. The
// returned error explains why the session is anonymous and is meant for
// logging only: a missing header gives common.ErrMissingToken, a bad token
// common.ErrInvalidToken. The session is usable either way.
func Derive(header string, dec TokenDecoder) (Session, error) {
	raw := strings.TrimLeft(header, " \t")
	if len(raw) >= len(common.BearerPrefix) && strings.EqualFold(raw[:len(common.BearerPrefix)], common.BearerPrefix) {
		raw = raw[len(common.BearerPrefix):]
	}
	token := strings.TrimSpace(raw)

	id, err := dec.DecodeToken(token)
	if err != nil {
		return Anonymous(), err
	}
	return Authenticated(id), nil
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored in ctx, or an anonymous one.
func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(ctxKey{}).(Session)
	return s
}
