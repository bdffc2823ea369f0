// AngelaMos | 2026
// security_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("tulsi-leaf-42")
	require.NoError(t, err)
	assert.NotEqual(t, "tulsi-leaf-42", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)

	ok, err := VerifyPassword("tulsi-leaf-42", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordTimingSafeWithoutHash(t *testing.T) {
	ok, err := VerifyPasswordTimingSafe("anything", nil)
	require.NoError(t, err)
	assert.False(t, ok)

	empty := ""
	ok, err = VerifyPasswordTimingSafe("anything", &empty)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConstantTimeEqual(t *testing.T) {
	assert.True(t, ConstantTimeEqual("key", "key"))
	assert.False(t, ConstantTimeEqual("key", "Key"))
	assert.False(t, ConstantTimeEqual("key", "key2"))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off`, EscapeLike("50%_off"))
	assert.Equal(t, `a\\b`, EscapeLike(`a\b`))
}
