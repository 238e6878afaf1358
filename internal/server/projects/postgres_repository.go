package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*Project, error) {

	query :=
		`SELECT id, user_id, title, creation_date, last_updated FROM projects
		 WHERE user_id = $1
		 ORDER BY creation_date
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	projects := make([]*Project, 0)
	for rows.Next() {
		p := &Project{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.CreationDate, &p.LastUpdated); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return projects, nil
}

func (r *PostgresRepository) Create(ctx context.Context, project *Project) (*Project, error) {

	query :=
		`INSERT INTO projects (id, user_id, title, creation_date, last_updated)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.UserID, project.Title, project.CreationDate, project.LastUpdated)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return project, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string, userID string) (*Project, error) {

	query :=
		`SELECT id, user_id, title, creation_date, last_updated FROM projects
		 WHERE id = $1 AND user_id = $2
		 `

	p := &Project{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&p.ID, &p.UserID, &p.Title, &p.CreationDate, &p.LastUpdated)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, userID string, title string, lastUpdated time.Time) error {

	query :=
		`UPDATE projects SET title = $1, last_updated = $2
		 WHERE id = $3 AND user_id = $4
		 `

	res, err := r.db.ExecContext(ctx, query, title, lastUpdated, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string, userID string) error {

	query :=
		`DELETE FROM projects
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
