package projects

import "time"

// Project belongs to exactly one user. The owner is fixed at creation and
// every lookup carries it in the predicate.
type Project struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	CreationDate time.Time `json:"creation_date"`
	LastUpdated  time.Time `json:"last_updated"`
}
