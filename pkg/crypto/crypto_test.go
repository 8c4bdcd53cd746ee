package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	hashed, err := HashPassword("correct horse")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse", hashed)

	require.True(t, ComparePassword(hashed, "correct horse"))
	require.False(t, ComparePassword(hashed, "battery staple"))

	// 24 runes but 72+ bytes.
	_, err = HashPassword(strings.Repeat("한", 25))
	require.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestNewVerificationToken(t *testing.T) {
	token, hash, err := NewVerificationToken()
	require.NoError(t, err)
	require.Equal(t, HashToken(token), hash)
	require.NotContains(t, token, "/")
	require.NotContains(t, token, "+")
	require.Len(t, hash, 64)

	other, _, err := NewVerificationToken()
	require.NoError(t, err)
	require.NotEqual(t, token, other)
}
