package security

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsernameBase(t *testing.T) {
	assert.Equal(t, "jane.doe", UsernameBase("Jane", "Doe"))
	assert.Equal(t, "jane.doe", UsernameBase("  Jane ", " Doe "))
}

func TestGenerateUsername(t *testing.T) {
	pattern := regexp.MustCompile(`^jane\.doe\.\d{4}$`)
	seen := map[string]bool{}

	for i := 0; i < 20; i++ {
		username, err := GenerateUsername("jane.doe")
		require.NoError(t, err)
		assert.Regexp(t, pattern, username)
		seen[username] = true
	}
	// suffixes should collide rarely across 20 draws from 10000
	assert.Greater(t, len(seen), 15)
}

func TestGeneratePassword(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-zA-Z0-9]{8}$`)

	first, err := GeneratePassword()
	require.NoError(t, err)
	assert.Regexp(t, pattern, first)

	second, err := GeneratePassword()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(DefaultBcryptCost)

	hash, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, hasher.Compare(hash, "s3cret-pass"))
	assert.Error(t, hasher.Compare(hash, "wrong-pass"))
}
