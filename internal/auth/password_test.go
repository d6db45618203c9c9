package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(4)

	digest, err := hasher.Hash("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", digest)

	assert.True(t, hasher.Verify("admin123", digest))
	assert.False(t, hasher.Verify("wrong-password", digest))
	assert.False(t, hasher.Verify("", digest))
}

func TestPasswordHashesAreSalted(t *testing.T) {
	hasher := NewPasswordHasher(4)

	first, err := hasher.Hash("user123")
	require.NoError(t, err)
	second, err := hasher.Hash("user123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("user123", first))
	assert.True(t, hasher.Verify("user123", second))
}

func TestHasherFallsBackToDefaultCost(t *testing.T) {
	hasher := NewPasswordHasher(-1)
	digest, err := hasher.Hash("secret")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("secret", digest))
}
