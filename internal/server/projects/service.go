package projects

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/taskboard/internal/common"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID string) ([]*Project, error) {

	projects, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return projects, nil
}

// Create inserts a new project for the owner. Timestamps are assigned
// server-side at the moment of creation.
func (s *Service) Create(ctx context.Context, userID string, title string) (*Project, error) {

	if title == "" {
		return nil, common.ErrorValidation
	}

	now := s.now().UTC()
	project := &Project{
		ID:           uuid.NewString(),
		UserID:       userID,
		Title:        title,
		CreationDate: now,
		LastUpdated:  now,
	}

	project, err := s.repo.Create(ctx, project)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return project, nil
}

// Get returns the project only if it is owned by userID; a project owned
// by someone else is reported as not found.
func (s *Service) Get(ctx context.Context, id string, userID string) (*Project, error) {

	project, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return project, nil
}

func (s *Service) Update(ctx context.Context, id string, userID string, title string) error {

	if title == "" {
		return common.ErrorValidation
	}

	err := s.repo.Update(ctx, id, userID, title, s.now().UTC())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	return nil
}

func (s *Service) Delete(ctx context.Context, id string, userID string) error {

	err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	return nil
}
