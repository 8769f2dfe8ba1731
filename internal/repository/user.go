package repository

import (
	"context"

	"mytodo-server/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// Update persists all mutable fields of the user. Concurrent updates to
	// the same user are last-write-wins.
	Update(ctx context.Context, user *domain.User) error
}
