package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/glassview/internal/model"
	"github.com/iliyamo/glassview/internal/repository"
	"github.com/iliyamo/glassview/internal/utils"
)

// Registration is the input of AuthService.Register.
type Registration struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// AuthService registers users and exchanges credentials for tokens.
type AuthService struct {
	users  repository.UserStore
	tokens *utils.TokenService
	ttl    time.Duration
	cost   int
	log    logrus.FieldLogger
}

func NewAuthService(users repository.UserStore, tokens *utils.TokenService, ttl time.Duration, bcryptCost int, log logrus.FieldLogger) *AuthService {
	return &AuthService{users: users, tokens: tokens, ttl: ttl, cost: bcryptCost, log: log}
}

// TTL is the lifetime of issued access tokens.
func (s *AuthService) TTL() time.Duration { return s.ttl }

func validateRegistration(r Registration) error {
	n := utf8.RuneCountInString(r.Username)
	if n < 3 || n > 50 {
		return &model.ValidationError{Field: "username", Reason: "must be 3 to 50 characters"}
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return &model.ValidationError{Field: "email", Reason: "is not a valid address"}
	}
	if err := utils.CheckPasswordPolicy(r.Password); err != nil {
		return &model.ValidationError{Field: "password", Reason: err.Error()}
	}
	return nil
}

// Register creates a regular user.  The role is always user; admins come
// from BootstrapAdmin.
func (s *AuthService) Register(ctx context.Context, r Registration) (model.Identity, error) {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	if err := validateRegistration(r); err != nil {
		return model.Identity{}, err
	}
	return s.create(ctx, r, model.RoleUser)
}

func (s *AuthService) create(ctx context.Context, r Registration, role model.Role) (model.Identity, error) {
	hash, err := utils.HashPassword(r.Password, s.cost)
	if err != nil {
		s.log.WithError(err).Error("hash password")
		return model.Identity{}, ErrStoreFailure
	}
	u, err := s.users.Create(ctx, model.User{
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: hash,
		Role:         role,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return model.Identity{}, fmt.Errorf("%w: username or email already registered", ErrConflict)
	}
	if err != nil {
		s.log.WithError(err).Error("create user")
		return model.Identity{}, ErrStoreFailure
	}
	return model.IdentityOf(u), nil
}

// Login checks the password and issues an access token whose subject is
// the username.  Unknown users and wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, username, password string) (utils.AccessToken, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrNotFound) {
		return utils.AccessToken{}, ErrUnauthenticated
	}
	if err != nil {
		s.log.WithError(err).Error("load user")
		return utils.AccessToken{}, ErrStoreFailure
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return utils.AccessToken{}, ErrUnauthenticated
	}
	tok, err := s.tokens.Issue(u.Username, s.ttl)
	if err != nil {
		s.log.WithError(err).Error("sign token")
		return utils.AccessToken{}, ErrStoreFailure
	}
	return tok, nil
}

// BootstrapAdmin creates an admin account unless the username already
// exists.  It reports whether a user was created.
func (s *AuthService) BootstrapAdmin(ctx context.Context, username, email, password string) (bool, error) {
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	if _, err := s.create(ctx, Registration{Username: username, Email: email, Password: password}, model.RoleAdmin); err != nil {
		return false, err
	}
	s.log.WithField("username", username).Info("bootstrap admin created")
	return true, nil
}
