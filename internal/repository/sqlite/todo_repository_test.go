package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"mytodo-server/internal/domain"
	"mytodo-server/internal/repository"
)

func testTodoRepo(t *testing.T) (repository.TodoRepository, int64) {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	users := NewUserRepository(db)
	require.NoError(t, users.Init(ctx))
	userID, err := users.Create(ctx, &domain.User{Name: "Owner", Email: "owner@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	todos := NewTodoRepository(db)
	require.NoError(t, todos.Init(ctx))
	return todos, userID
}

func TestTodoRepository_CRUD(t *testing.T) {
	repo, userID := testTodoRepo(t)
	ctx := context.Background()

	todo := &domain.Todo{UserID: userID, Title: "Buy milk", Description: "2L"}
	id, err := repo.Create(ctx, todo)
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := repo.GetByUser(ctx, id, userID)
	require.NoError(t, err)
	require.Equal(t, "Buy milk", got.Title)
	require.False(t, got.Completed)

	got.Completed = true
	got.Title = "Buy oat milk"
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.GetByUser(ctx, id, userID)
	require.NoError(t, err)
	require.True(t, updated.Completed)
	require.Equal(t, "Buy oat milk", updated.Title)

	require.NoError(t, repo.Delete(ctx, id, userID))
	_, err = repo.GetByUser(ctx, id, userID)
	require.ErrorIs(t, err, repository.ErrTodoNotFound)
	require.ErrorIs(t, repo.Delete(ctx, id, userID), repository.ErrTodoNotFound)
}

func TestTodoRepository_OwnershipFilter(t *testing.T) {
	repo, userID := testTodoRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.Todo{UserID: userID, Title: "mine"})
	require.NoError(t, err)

	other := userID + 1
	_, err = repo.GetByUser(ctx, id, other)
	require.ErrorIs(t, err, repository.ErrTodoNotFound)
	require.ErrorIs(t, repo.Delete(ctx, id, other), repository.ErrTodoNotFound)
	require.ErrorIs(t, repo.Update(ctx, &domain.Todo{ID: id, UserID: other, Title: "stolen"}), repository.ErrTodoNotFound)

	list, err := repo.ListByUser(ctx, other)
	require.NoError(t, err)
	require.Empty(t, list)

	list, err = repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
