package middleware

// identity.go keeps the authenticated caller on the Echo context.  Authenticate
// stores it; handlers, RequireAdmin, the rate limiter and the request logger
// read it back.

import (
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/glassview/internal/model"
)

const identityKey = "identity"

// SetIdentity stores the caller on the context.
func SetIdentity(c echo.Context, id model.Identity) {
    c.Set(identityKey, id)
}

// CurrentIdentity returns the caller stored by Authenticate.
func CurrentIdentity(c echo.Context) (model.Identity, bool) {
    id, ok := c.Get(identityKey).(model.Identity)
    return id, ok
}

// userID returns a stable key part for the caller, "anon" when nobody is
// authenticated.
func userID(c echo.Context) string {
    if id, ok := CurrentIdentity(c); ok {
        return strconv.FormatInt(id.UserID, 10)
    }
    return "anon"
}
