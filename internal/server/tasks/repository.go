package tasks

import "context"

// Repository operations are scoped by project id. Callers must have
// already resolved the project under the requesting owner; the repository
// itself never sees user ids.
type Repository interface {
	List(ctx context.Context, projectID string) ([]*Task, error)
	Create(ctx context.Context, task *Task) (*Task, error)
	Get(ctx context.Context, id string, projectID string) (*Task, error)
	Update(ctx context.Context, id string, projectID string, title string, completed bool) error
	Delete(ctx context.Context, id string, projectID string) error
}
