package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery", bcrypt.MinCost)

	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "correct-horse-battery", hash)
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", 73), bcrypt.MinCost)

	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestCheckPassword_Valid(t *testing.T) {
	hash, err := HashPassword("secret-passphrase", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, CheckPassword("secret-passphrase", hash))
}

func TestCheckPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("secret-passphrase", bcrypt.MinCost)
	require.NoError(t, err)

	err = CheckPassword("wrong-passphrase", hash)
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	err := CheckPassword("anything", "not-a-bcrypt-hash")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidPassword)
}
