package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"mytodo-server/internal/domain"
	"mytodo-server/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	is_verified INTEGER NOT NULL DEFAULT 0,
	verify_otp TEXT NOT NULL DEFAULT '',
	verify_otp_expires_at INTEGER NOT NULL DEFAULT 0,
	reset_otp TEXT NOT NULL DEFAULT '',
	reset_otp_expires_at INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (name, email, password_hash, is_verified, verify_otp, verify_otp_expires_at, reset_otp, reset_otp_expires_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Name,
		user.Email,
		user.PasswordHash,
		boolToInt(user.IsVerified),
		user.VerifyOTP,
		expiryMillis(user.VerifyOTPExpiresAt),
		user.ResetOTP,
		expiryMillis(user.ResetOTPExpiresAt),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, repository.ErrEmailTaken
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, selectUser+`WHERE email = ?`, email)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, selectUser+`WHERE id = ?`, id)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE users
SET name = ?, email = ?, password_hash = ?, is_verified = ?,
    verify_otp = ?, verify_otp_expires_at = ?, reset_otp = ?, reset_otp_expires_at = ?,
    updated_at = ?
WHERE id = ?`,
		user.Name,
		user.Email,
		user.PasswordHash,
		boolToInt(user.IsVerified),
		user.VerifyOTP,
		expiryMillis(user.VerifyOTPExpiresAt),
		user.ResetOTP,
		expiryMillis(user.ResetOTPExpiresAt),
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}

const selectUser = `
SELECT id, name, email, password_hash, is_verified, verify_otp, verify_otp_expires_at, reset_otp, reset_otp_expires_at, created_at, updated_at
FROM users
`

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var (
		user           domain.User
		verified       int64
		verifyExpiryMs int64
		resetExpiryMs  int64
	)
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&verified,
		&user.VerifyOTP,
		&verifyExpiryMs,
		&user.ResetOTP,
		&resetExpiryMs,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.IsVerified = verified != 0
	user.VerifyOTPExpiresAt = expiryTime(verifyExpiryMs)
	user.ResetOTPExpiresAt = expiryTime(resetExpiryMs)
	return &user, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// OTP expiries are stored as unix milliseconds with 0 meaning "no code pending".
func expiryMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func expiryTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
