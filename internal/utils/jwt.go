package utils // package utils provides helper functions for token creation and hashing

import (
	"errors" // sentinel for rejected credentials
	"time"   // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidCredential is returned by Validate for every rejected token.
// Forged, malformed and expired tokens are deliberately indistinguishable.
var ErrInvalidCredential = errors.New("invalid credential")

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// TokenService issues and validates HS256 bearer tokens.  It keeps no
// state besides the signing key: there is no revocation list, a token is
// honoured until its embedded expiry.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService builds a TokenService signing with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), now: time.Now}
}

// WithClock returns a copy of the service that reads time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

// Issue signs a token for subject that expires ttl from now.  The JWT
// carries the standard sub, exp and iat claims.
func (s *TokenService) Issue(subject string, ttl time.Duration) (AccessToken, error) {
	now := s.now().UTC()
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// Validate verifies signature, algorithm and expiry and returns the
// subject.  A token is valid strictly before its expiry, so a token issued
// with a zero TTL is already rejected.
func (s *TokenService) Validate(raw string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	claims := &jwt.RegisteredClaims{}
	tok, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !tok.Valid || claims.Subject == "" {
		return "", ErrInvalidCredential
	}
	return claims.Subject, nil
}
