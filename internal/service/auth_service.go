package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"mytodo-server/internal/auth"
	"mytodo-server/internal/domain"
	"mytodo-server/internal/mail"
	"mytodo-server/internal/otp"
	"mytodo-server/internal/repository"
)

var (
	// ErrMissingFields indicates a required request field was empty.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidCredentials covers both an unknown email and a wrong password,
	// so error text cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering with an email that already has an account.
	ErrEmailTaken = errors.New("user already exists")
	// ErrAlreadyVerified is returned when requesting a verification code for a verified account.
	ErrAlreadyVerified = errors.New("email already verified")
	// ErrUserNotFound is returned when a reset code is requested for an unknown email.
	ErrUserNotFound = errors.New("user with this email does not exist")
	// ErrInvalidOTP is returned when a submitted code does not match the pending one.
	ErrInvalidOTP = errors.New("invalid otp")
	// ErrOTPExpired is returned when a submitted code matches but its window has passed.
	ErrOTPExpired = errors.New("otp expired")
)

// AuthService orchestrates registration, login, email verification, and
// password reset.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	SendVerifyOTP(ctx context.Context, userID int64) error
	VerifyEmail(ctx context.Context, userID int64, code string) error
	SendResetOTP(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

type authService struct {
	users     repository.UserRepository
	mailer    *mail.Dispatcher
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(users repository.UserRepository, mailer *mail.Dispatcher, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		users:     users,
		mailer:    mailer,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// Register creates an account and immediately grants a session. Email
// verification is advisory, not gating: the original flow keeps onboarding
// friction low and gives the new session access before the mailbox is proven.
func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	// Fast-path check only; the unique constraint on email is the real
	// enforcement point under concurrent registration.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	s.mailer.SendWelcome(user.Email)

	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) SendVerifyOTP(ctx context.Context, userID int64) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return err
	}

	// A fresh code overwrites any pending one; at most one is active per purpose.
	user.VerifyOTP = code
	user.VerifyOTPExpiresAt = s.now().Add(otp.PurposeVerify.TTL())
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.mailer.SendVerifyOTP(user.Email, code)
	return nil
}

func (s *authService) VerifyEmail(ctx context.Context, userID int64, code string) error {
	if code == "" {
		return ErrMissingFields
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.VerifyOTP == "" || user.VerifyOTP != code {
		return ErrInvalidOTP
	}
	if !s.now().Before(user.VerifyOTPExpiresAt) {
		return ErrOTPExpired
	}

	user.IsVerified = true
	user.VerifyOTP = ""
	user.VerifyOTPExpiresAt = time.Time{}
	return s.users.Update(ctx, user)
}

func (s *authService) SendResetOTP(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return err
	}

	user.ResetOTP = code
	user.ResetOTPExpiresAt = s.now().Add(otp.PurposeReset.TTL())
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.mailer.SendResetOTP(user.Email, code)
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = strings.TrimSpace(email)
	if email == "" || code == "" || newPassword == "" {
		return ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.ResetOTP == "" || user.ResetOTP != code {
		return ErrInvalidOTP
	}
	if !s.now().Before(user.ResetOTPExpiresAt) {
		return ErrOTPExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.ResetOTP = ""
	user.ResetOTPExpiresAt = time.Time{}
	return s.users.Update(ctx, user)
}

func (s *authService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}
