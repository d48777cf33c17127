package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Abcdef1!", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "Abcdef1!", hash)
	assert.True(t, VerifyPassword(hash, "Abcdef1!"))
	assert.False(t, VerifyPassword(hash, "abcdef1!"))
}

func TestCheckPasswordPolicy(t *testing.T) {
	tests := map[string]error{
		"Abcdef1!":  nil,
		"Ab1!":      ErrPasswordLength,
		"Abcdefgh!": ErrPasswordDigit,
		"abcdef1!":  ErrPasswordUpper,
		"ABCDEF1!":  ErrPasswordLower,
		"Abcdefg1":  ErrPasswordSpecial,
		"Abcdef1_x": nil,
	}
	for pw, want := range tests {
		assert.Equal(t, want, CheckPasswordPolicy(pw), pw)
	}
}
