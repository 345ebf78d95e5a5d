package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret", 4) // min cost keeps the test fast
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)

	require.True(t, VerifyPassword(hash, "s3cret"))
	require.False(t, VerifyPassword(hash, "wrong"))
	require.False(t, VerifyPassword("not-a-hash", "s3cret"))
}

func TestHashPasswordClampsBadCost(t *testing.T) {
	// An out-of-range cost must not fail; it is replaced with the
	// bcrypt default.
	hash, err := HashPassword("s3cret", 99)
	require.NoError(t, err)
	require.True(t, VerifyPassword(hash, "s3cret"))

	hash, err = HashPassword("s3cret", -1)
	require.NoError(t, err)
	require.True(t, VerifyPassword(hash, "s3cret"))
}

func TestHashRefreshRawIsStable(t *testing.T) {
	a := HashRefreshRaw("token-value")
	b := HashRefreshRaw("token-value")
	require.Equal(t, a, b)
	require.Len(t, a, 64) // sha256 hex
	require.NotEqual(t, a, HashRefreshRaw("other"))
}
