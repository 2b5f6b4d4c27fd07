package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)
	assert.NotContains(t, hash, "s3cret")

	ok, err := h.Verify("s3cret", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPasswordHasher_Mismatch(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)

	ok, err := h.Verify("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_SaltedHashesDiffer(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	first, err := h.Hash("s3cret")
	require.NoError(t, err)
	second, err := h.Hash("s3cret")
	require.NoError(t, err)

	// Random per-hash salt means identical plaintexts never collide.
	assert.NotEqual(t, first, second)
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	tests := []struct {
		name string
		hash string
	}{
		{name: "empty hash", hash: ""},
		{name: "too short", hash: "not-a-bcrypt-hash"},
		{name: "wrong prefix", hash: strings.Repeat("x", 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify("s3cret", tt.hash)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestNewPasswordHasher_CostFallback(t *testing.T) {
	assert.Equal(t, DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, DefaultCost, NewPasswordHasher(99).cost)
	assert.Equal(t, bcrypt.MinCost, NewPasswordHasher(bcrypt.MinCost).cost)
}
