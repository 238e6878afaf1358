package projects

import (
	"context"
	"time"
)

// Repository operations always take the owning user id as part of the
// lookup predicate, never a bare project id.
type Repository interface {
	List(ctx context.Context, userID string) ([]*Project, error)
	Create(ctx context.Context, project *Project) (*Project, error)
	Get(ctx context.Context, id string, userID string) (*Project, error)
	Update(ctx context.Context, id string, userID string, title string, lastUpdated time.Time) error
	Delete(ctx context.Context, id string, userID string) error
}
