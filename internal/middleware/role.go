package middleware

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/glassview/internal/service"
)

// RequireAdmin aborts with service.ErrForbidden unless the caller stored by
// Authenticate is an admin.  A missing identity is treated as
// unauthenticated.
func RequireAdmin() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            id, ok := CurrentIdentity(c)
            if !ok {
                return service.ErrUnauthenticated
            }
            if err := service.RequireAdmin(id); err != nil {
                return err
            }
            return next(c)
        }
    }
}
