// Package services contains server-side business logic. This file implements
// UserService, which handles signup, login, and issuing identity tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/linkfeed/internal/common"
	"github.com/dmitrijs2005/linkfeed/internal/server/auth"
	"github.com/dmitrijs2005/linkfeed/internal/server/models"
	"github.com/dmitrijs2005/linkfeed/internal/server/repositories/repomanager"
)

// AuthPayload is returned by a successful signup or login.
type AuthPayload struct {
	Token string
	User  *models.User
}

// SignupInput carries the fields of a new account.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// UserService provides account operations:
//   - Signup: create a user with a hashed password and mint a token
//   - Login: verify credentials and mint a token
//   - UserLinks: list the links a user posted
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	creds       *auth.Credentials
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, creds *auth.Credentials) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		creds:       creds,
	}
}

// Signup registers a new user. A taken email yields
// common.ErrConstraintViolation.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*AuthPayload, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	switch {
	case in.Name == "":
		return nil, common.Validationf("name is required")
	case in.Email == "":
		return nil, common.Validationf("email is required")
	case in.Password == "":
		return nil, common.Validationf("password is required")
	}

	hash, err := s.creds.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{Name: in.Name, Email: in.Email, Password: hash})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.payload(user)
}

// Login checks email and password. An unknown email yields
// common.ErrUserNotFound and a wrong password common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if !s.creds.Verify(password, user.Password) {
		return nil, common.ErrInvalidCredentials
	}

	return s.payload(user)
}

// UserLinks returns the links posted by userID, oldest first.
func (s *UserService) UserLinks(ctx context.Context, userID int64) ([]*models.Link, error) {
	if _, err := s.repomanager.Users(s.db).FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repomanager.Links(s.db).FindByPoster(ctx, userID)
}

func (s *UserService) payload(user *models.User) (*AuthPayload, error) {
	token, err := s.creds.IssueToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: issuing token: %v", common.ErrInternal, err)
	}
	return &AuthPayload{Token: token, User: user}, nil
}
