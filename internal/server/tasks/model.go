package tasks

import "time"

// Task belongs to exactly one project. Ownership is transitive: a task is
// reachable only after its parent project resolves under the caller, and
// is never tagged with the user id directly.
type Task struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	Title        string    `json:"title"`
	CreationDate time.Time `json:"creation_date"`
	Completed    bool      `json:"completed"`
}
