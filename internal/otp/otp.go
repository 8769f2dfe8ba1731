// Package otp generates the short-lived numeric codes used for email
// verification and password reset.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Purpose tags a code with its use-case so a verification code can never be
// consumed as a password reset code.
type Purpose string

const (
	PurposeVerify Purpose = "verify-email"
	PurposeReset  Purpose = "reset-password"

	// VerifyTTL is the validity window for email verification codes.
	VerifyTTL = 24 * time.Hour
	// ResetTTL is the validity window for password reset codes.
	ResetTTL = 15 * time.Minute
)

// TTL returns the validity window for the purpose.
func (p Purpose) TTL() time.Duration {
	if p == PurposeReset {
		return ResetTTL
	}
	return VerifyTTL
}

// GenerateCode returns a 6-digit zero-padded code drawn uniformly from
// 000000-999999 using the platform entropy source.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
