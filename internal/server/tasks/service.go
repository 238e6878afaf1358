package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/projects"
)

// ProjectResolver reports whether a project is visible under the given
// owner. An unowned project surfaces as common.ErrorNotFound, never as an
// authorization failure.
type ProjectResolver interface {
	Get(ctx context.Context, id string, userID string) (*projects.Project, error)
}

// Service enforces the ownership chain for tasks: every operation first
// resolves the parent project under the requesting user, then issues the
// project-scoped task operation. The two lookups are kept separate so the
// not-found masking stays observable.
type Service struct {
	repo     Repository
	projects ProjectResolver
	now      func() time.Time
}

func NewService(repo Repository, resolver ProjectResolver) *Service {
	return &Service{
		repo:     repo,
		projects: resolver,
		now:      time.Now,
	}
}

func (s *Service) resolveProject(ctx context.Context, userID string, projectID string) error {
	_, err := s.projects.Get(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID string, projectID string) ([]*Task, error) {

	if err := s.resolveProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	tasks, err := s.repo.List(ctx, projectID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return tasks, nil
}

func (s *Service) Create(ctx context.Context, userID string, projectID string, title string, completed bool) (*Task, error) {

	if err := s.resolveProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	if title == "" {
		return nil, common.ErrorValidation
	}

	task := &Task{
		ID:           uuid.NewString(),
		ProjectID:    projectID,
		Title:        title,
		CreationDate: s.now().UTC(),
		Completed:    completed,
	}

	task, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return task, nil
}

func (s *Service) Get(ctx context.Context, userID string, projectID string, taskID string) (*Task, error) {

	if err := s.resolveProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	task, err := s.repo.Get(ctx, taskID, projectID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return task, nil
}

func (s *Service) Update(ctx context.Context, userID string, projectID string, taskID string, title string, completed bool) error {

	if err := s.resolveProject(ctx, userID, projectID); err != nil {
		return err
	}

	if title == "" {
		return common.ErrorValidation
	}

	err := s.repo.Update(ctx, taskID, projectID, title, completed)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	return nil
}

func (s *Service) Delete(ctx context.Context, userID string, projectID string, taskID string) error {

	if err := s.resolveProject(ctx, userID, projectID); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, taskID, projectID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	return nil
}
