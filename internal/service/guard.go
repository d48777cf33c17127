package service

import (
	"context"
	"errors"
	"strings"

	"github.com/iliyamo/glassview/internal/model"
	"github.com/iliyamo/glassview/internal/repository"
	"github.com/iliyamo/glassview/internal/utils"
)

// Guard resolves bearer credentials into identities.
type Guard struct {
	tokens *utils.TokenService
	users  repository.UserStore
}

func NewGuard(tokens *utils.TokenService, users repository.UserStore) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// Authenticate resolves the caller from the Authorization header value or
// the session cookie value.  When a header is present it is the only
// credential considered, even if it turns out to be invalid.  The user
// named by the token is reloaded on every call, so a removed account stops
// authenticating immediately.
func (g *Guard) Authenticate(ctx context.Context, header, cookie string) (model.Identity, error) {
	raw := ""
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return model.Identity{}, ErrUnauthenticated
		}
		raw = strings.TrimSpace(parts[1])
	} else {
		raw = cookie
	}
	if raw == "" {
		return model.Identity{}, ErrUnauthenticated
	}

	subject, err := g.tokens.Validate(raw)
	if err != nil {
		return model.Identity{}, ErrUnauthenticated
	}
	u, err := g.users.GetByUsername(ctx, subject)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Identity{}, ErrUnauthenticated
	}
	if err != nil {
		return model.Identity{}, ErrStoreFailure
	}
	return model.IdentityOf(u), nil
}

// RequireAdmin fails with ErrForbidden unless the identity is an admin.
func RequireAdmin(id model.Identity) error {
	if !id.Role.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// InScope is the admin-or-owner visibility rule applied to every inventory
// read and mutation.
func InScope(id model.Identity, ownerID int64) bool {
	return id.Role.IsAdmin() || id.UserID == ownerID
}
