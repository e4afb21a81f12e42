// Package accounts implements signup and login against the profile
// collaborator. Credentials live in that service; the id joining the
// two systems is the rolling hash of the email.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"salaryscope/internal/identity"
	"salaryscope/internal/profile"
)

var (
	ErrEmailTaken         = errEmailTaken{}
	ErrInvalidCredentials = errInvalidCredentials{}
)

type errEmailTaken struct{}

func (errEmailTaken) Error() string { return "an account with this email already exists" }

type errInvalidCredentials struct{}

func (errInvalidCredentials) Error() string { return "invalid email or password" }

// ProfileStore is the slice of the profile client the service uses.
type ProfileStore interface {
	CreateUser(ctx context.Context, id int64, username, password string) error
	GetPassword(ctx context.Context, id int64) (string, error)
}

// Service turns credential operations into profile-service calls.
type Service struct {
	profiles ProfileStore
}

func NewService(profiles ProfileStore) *Service {
	return &Service{profiles: profiles}
}

// SignUp registers the email with the profile service and returns the
// derived identity. A colliding id is reported as ErrEmailTaken.
func (s *Service) SignUp(ctx context.Context, email, password string) (identity.Identity, error) {
	email = strings.TrimSpace(email)
	id := identity.Hash(email)
	if err := s.profiles.CreateUser(ctx, id, email, password); err != nil {
		if errors.Is(err, profile.ErrUserExists) {
			return identity.Identity{}, ErrEmailTaken
		}
		return identity.Identity{}, fmt.Errorf("accounts: sign up: %w", err)
	}
	return identity.Identity{ID: id, Username: email}, nil
}

// LogIn verifies the password stored by the profile service. The
// comparison is plain equality because that is the contract the profile
// service exposes; an unknown user and a wrong password are
// indistinguishable to the caller.
func (s *Service) LogIn(ctx context.Context, email, password string) (identity.Identity, error) {
	email = strings.TrimSpace(email)
	id := identity.Hash(email)
	stored, err := s.profiles.GetPassword(ctx, id)
	if err != nil {
		if errors.Is(err, profile.ErrUserNotFound) {
			return identity.Identity{}, ErrInvalidCredentials
		}
		return identity.Identity{}, fmt.Errorf("accounts: log in: %w", err)
	}
	if stored != password {
		return identity.Identity{}, ErrInvalidCredentials
	}
	return identity.Identity{ID: id, Username: email}, nil
}
