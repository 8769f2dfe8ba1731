package repository

import (
	"context"

	"mytodo-server/internal/domain"
)

// TodoRepository defines persistence operations for Todo entities. All reads
// and writes are scoped to the owning user.
type TodoRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, todo *domain.Todo) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Todo, error)
	GetByUser(ctx context.Context, id, userID int64) (*domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, id, userID int64) error
}
