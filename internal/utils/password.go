package utils

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

var (
	ErrPasswordLength  = errors.New("password must be 8 to 128 characters long")
	ErrPasswordDigit   = errors.New("password must contain at least one digit")
	ErrPasswordUpper   = errors.New("password must contain at least one uppercase letter")
	ErrPasswordLower   = errors.New("password must contain at least one lowercase letter")
	ErrPasswordSpecial = errors.New("password must contain at least one special character")
)

// CheckPasswordPolicy enforces the registration password rules.
func CheckPasswordPolicy(pw string) error {
	n := len([]rune(pw))
	if n < 8 || n > 128 {
		return ErrPasswordLength
	}
	var digit, upper, lower, special bool
	for _, r := range pw {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case !unicode.IsLetter(r):
			special = true
		}
	}
	switch {
	case !digit:
		return ErrPasswordDigit
	case !upper:
		return ErrPasswordUpper
	case !lower:
		return ErrPasswordLower
	case !special:
		return ErrPasswordSpecial
	}
	return nil
}
