package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, VerifyPassword(hash, "s3cret-password"))
	assert.False(t, VerifyPassword(hash, "wrong-password"))
	assert.False(t, VerifyPassword(hash, ""))
}

func TestHashPasswordLongInput(t *testing.T) {
	// bcrypt only looks at the first 72 bytes; inputs beyond that must
	// still hash and verify instead of erroring out.
	long := strings.Repeat("a", 200)
	hash, err := HashPassword(long, 4)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, long))

	// Two long passwords sharing the first 72 bytes collide. That is the
	// documented truncation behaviour, locked in here.
	other := strings.Repeat("a", 72) + "completely-different-tail"
	assert.True(t, VerifyPassword(hash, other))
}

func TestVerifyPasswordBadHash(t *testing.T) {
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "whatever"))
}
