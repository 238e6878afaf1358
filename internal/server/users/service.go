package users

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/config"
)

type Service struct {
	repo       Repository
	bcryptCost int
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:       repo,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new user. Username and password are mandatory; name
// and email are not. The password is stored as a bcrypt hash, never as
// plaintext. A taken username surfaces as common.ErrorAlreadyExists.
func (s *Service) Register(ctx context.Context, name, email, username, password string) (*User, error) {

	if username == "" || password == "" {
		return nil, common.ErrorValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &User{
		Name:         name,
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Authenticate resolves a username/password pair to the owning identity.
// Credentials map to exactly one user or fail with ErrorUnauthenticated;
// a missing user and a wrong password are indistinguishable to the caller.
// The full record is returned so callers can scope queries by its id.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {

	if username == "" || password == "" {
		return nil, common.ErrorUnauthenticated
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthenticated
		}
		return nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrorUnauthenticated
	}

	return user, nil
}

// Update changes the profile fields of the owning user. Both name and
// email are required.
func (s *Service) Update(ctx context.Context, id, name, email string) error {

	if name == "" || email == "" {
		return common.ErrorValidation
	}

	err := s.repo.Update(ctx, id, name, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	return nil
}
