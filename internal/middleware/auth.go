package middleware

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/glassview/internal/service"
)

// SessionCookie is the httponly cookie login sets.
const SessionCookie = "session_token"

// Authenticate resolves the caller from the Authorization header or the
// session cookie and stores the identity on the context.  Failures are
// returned as service.ErrUnauthenticated for the HTTP error handler to
// render.
func Authenticate(guard *service.Guard) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            cookie := ""
            if ck, err := c.Cookie(SessionCookie); err == nil {
                cookie = ck.Value
            }
            id, err := guard.Authenticate(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization), cookie)
            if err != nil {
                return err
            }
            SetIdentity(c, id)
            return next(c)
        }
    }
}
