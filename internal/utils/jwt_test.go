package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestIssueAndValidate_Success(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("super-secret")
	tok, err := svc.Issue("alice", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Exp, 5*time.Second)

	sub, err := svc.Validate(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", sub)
}

func TestValidate_ZeroTTLRejectedImmediately(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("secret").WithClock(fixedClock(now))

	tok, err := svc.Issue("alice", 0)
	require.NoError(t, err)

	_, err = svc.Validate(tok.Token)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestValidate_ExpiresAtBoundary(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tok, err := NewTokenService("secret").WithClock(fixedClock(issued)).Issue("bob", 30*time.Minute)
	require.NoError(t, err)

	before := NewTokenService("secret").WithClock(fixedClock(issued.Add(29 * time.Minute)))
	sub, err := before.Validate(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "bob", sub)

	after := NewTokenService("secret").WithClock(fixedClock(issued.Add(30 * time.Minute)))
	_, err = after.Validate(tok.Token)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestValidate_RejectsForgedMalformedAndForeignAlg(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("right-secret")
	good, err := NewTokenService("wrong-secret").Issue("mallory", time.Hour)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "mallory",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "mallory"})
	noExpSigned, err := noExp.SignedString([]byte("right-secret"))
	require.NoError(t, err)

	noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	noSubSigned, err := noSub.SignedString([]byte("right-secret"))
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"wrong secret": good.Token,
		"malformed":    "not.a.jwt",
		"empty":        "",
		"alg none":     unsigned,
		"no expiry":    noExpSigned,
		"no subject":   noSubSigned,
	} {
		_, err := svc.Validate(raw)
		assert.ErrorIs(t, err, ErrInvalidCredential, name)
	}
}
