package domain

import "time"

// Todo represents a single task item owned by a user.
type Todo struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
