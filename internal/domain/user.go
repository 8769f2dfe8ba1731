package domain

import "time"

// User represents a registered account of the system. The OTP fields hold at
// most one pending code per purpose; issuing a new code overwrites the prior
// one. An empty code means no code is pending for that purpose.
type User struct {
	ID                 int64
	Name               string
	Email              string
	PasswordHash       string
	IsVerified         bool
	VerifyOTP          string
	VerifyOTPExpiresAt time.Time
	ResetOTP           string
	ResetOTPExpiresAt  time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasActiveVerifyOTP reports whether an unexpired email verification code is pending.
func (u *User) HasActiveVerifyOTP(now time.Time) bool {
	return u.VerifyOTP != "" && now.Before(u.VerifyOTPExpiresAt)
}

// HasActiveResetOTP reports whether an unexpired password reset code is pending.
func (u *User) HasActiveResetOTP(now time.Time) bool {
	return u.ResetOTP != "" && now.Before(u.ResetOTPExpiresAt)
}
