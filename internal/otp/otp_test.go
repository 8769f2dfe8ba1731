package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateCode_Format(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9', "code %q contains non-digit", code)
		}
	}
}

func TestGenerateCode_Varies(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		seen[code] = struct{}{}
	}
	// 50 draws from a million values colliding down to one is not a thing.
	require.Greater(t, len(seen), 1)
}

func TestPurposeTTL(t *testing.T) {
	t.Parallel()

	require.Equal(t, 24*time.Hour, PurposeVerify.TTL())
	require.Equal(t, 15*time.Minute, PurposeReset.TTL())
}
