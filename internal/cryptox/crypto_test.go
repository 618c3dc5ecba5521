package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func lowCost(t *testing.T) {
	t.Helper()
	orig := hashCost
	hashCost = bcrypt.MinCost
	t.Cleanup(func() { hashCost = orig })
}

func TestHashPassword_RoundTrip(t *testing.T) {
	lowCost(t)

	hash, err := HashPassword("motdepasse")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$2"), "bcrypt hash expected, got %q", hash)
	require.NotEqual(t, "motdepasse", hash)

	require.NoError(t, CheckPassword(hash, "motdepasse"))
}

func TestHashPassword_Salted(t *testing.T) {
	lowCost(t)

	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestCheckPassword_Mismatch(t *testing.T) {
	lowCost(t)

	hash, err := HashPassword("right")
	require.NoError(t, err)
	require.ErrorIs(t, CheckPassword(hash, "wrong"), ErrPasswordMismatch)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	err := CheckPassword("not-a-hash", "x")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrPasswordMismatch)
}
