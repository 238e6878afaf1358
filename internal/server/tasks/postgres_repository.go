package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, projectID string) ([]*Task, error) {

	query :=
		`SELECT id, project_id, title, creation_date, completed FROM tasks
		 WHERE project_id = $1
		 ORDER BY creation_date
		 `

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	tasks := make([]*Task, 0)
	for rows.Next() {
		t := &Task{}
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.CreationDate, &t.Completed); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tasks, nil
}

func (r *PostgresRepository) Create(ctx context.Context, task *Task) (*Task, error) {

	query :=
		`INSERT INTO tasks (id, project_id, title, creation_date, completed)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.ProjectID, task.Title, task.CreationDate, task.Completed)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string, projectID string) (*Task, error) {

	query :=
		`SELECT id, project_id, title, creation_date, completed FROM tasks
		 WHERE id = $1 AND project_id = $2
		 `

	t := &Task{}
	err := r.db.QueryRowContext(ctx, query, id, projectID).Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.CreationDate, &t.Completed)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, projectID string, title string, completed bool) error {

	query :=
		`UPDATE tasks SET title = $1, completed = $2
		 WHERE id = $3 AND project_id = $4
		 `

	res, err := r.db.ExecContext(ctx, query, title, completed, id, projectID)
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

func (r *PostgresRepository) Delete(ctx context.Context, id string, projectID string) error {

	query :=
		`DELETE FROM tasks
		 WHERE id = $1 AND project_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, projectID)
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
