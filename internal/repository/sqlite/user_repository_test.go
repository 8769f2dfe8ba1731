package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mytodo-server/internal/domain"
	"mytodo-server/internal/repository"
)

func testUserRepo(t *testing.T) repository.UserRepository {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := testUserRepo(t)
	ctx := context.Background()

	user := &domain.User{Name: "Alice", Email: "alice@x.com", PasswordHash: "hash"}
	id, err := repo.Create(ctx, user)
	require.NoError(t, err)
	require.Positive(t, id)

	byEmail, err := repo.GetByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.Equal(t, "Alice", byEmail.Name)
	require.False(t, byEmail.IsVerified)
	require.Empty(t, byEmail.VerifyOTP)
	require.True(t, byEmail.VerifyOTPExpiresAt.IsZero())

	byID, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, byEmail.Email, byID.Email)

	_, err = repo.GetByEmail(ctx, "ghost@x.com")
	require.ErrorIs(t, err, repository.ErrUserNotFound)
	_, err = repo.GetByID(ctx, 9999)
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	repo := testUserRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{Name: "A", Email: "dup@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.User{Name: "B", Email: "dup@x.com", PasswordHash: "h"})
	require.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestUserRepository_EmailCaseSensitive(t *testing.T) {
	repo := testUserRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{Name: "A", Email: "Alice@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	// Lookup is an exact match on the stored casing.
	_, err = repo.GetByEmail(ctx, "alice@x.com")
	require.ErrorIs(t, err, repository.ErrUserNotFound)
	_, err = repo.GetByEmail(ctx, "Alice@x.com")
	require.NoError(t, err)
}

func TestUserRepository_UpdateOTPFields(t *testing.T) {
	repo := testUserRepo(t)
	ctx := context.Background()

	user := &domain.User{Name: "Alice", Email: "alice@x.com", PasswordHash: "hash"}
	_, err := repo.Create(ctx, user)
	require.NoError(t, err)

	expiry := time.Now().UTC().Add(15 * time.Minute).Truncate(time.Millisecond)
	user.ResetOTP = "123456"
	user.ResetOTPExpiresAt = expiry
	user.IsVerified = true
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "123456", got.ResetOTP)
	require.True(t, got.ResetOTPExpiresAt.Equal(expiry), "expiry mismatch: got %v want %v", got.ResetOTPExpiresAt, expiry)
	require.True(t, got.IsVerified)

	got.ResetOTP = ""
	got.ResetOTPExpiresAt = time.Time{}
	require.NoError(t, repo.Update(ctx, got))

	cleared, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, cleared.ResetOTP)
	require.True(t, cleared.ResetOTPExpiresAt.IsZero())
}

func TestUserRepository_UpdateMissing(t *testing.T) {
	repo := testUserRepo(t)

	err := repo.Update(context.Background(), &domain.User{ID: 42, Name: "x", Email: "x@x.com"})
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}
