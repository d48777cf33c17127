// Package router defines how HTTP routes are registered for the API.
package router

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/glassview/internal/handler"
	"github.com/iliyamo/glassview/internal/metrics"
	"github.com/iliyamo/glassview/internal/middleware"
	"github.com/iliyamo/glassview/internal/service"
)

// UseCommon installs the middleware every request passes through.
// Recover is innermost so a panic reaches the request log and metrics as
// a 500.
func UseCommon(e *echo.Echo, log logrus.FieldLogger, m *metrics.Metrics) {
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Metrics(m))
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.WithError(err).WithField("stack", string(stack)).Error("panic recovered")
			return err
		},
	}))
}

// RegisterRoutes registers the unauthenticated operational endpoints:
// liveness, readiness and prometheus metrics.
func RegisterRoutes(e *echo.Echo, ready *handler.ReadyHandler, metrics http.Handler) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", ready.Ready)
	e.GET("/metrics", echo.WrapHandler(metrics))
}

// RegisterAuth registers the /auth routes.  Register and login are open;
// logout and me need a valid credential.  limit is applied to all of
// them.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, guard *service.Guard, limit echo.MiddlewareFunc) {
	g := e.Group("/auth", limit)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	authn := middleware.Authenticate(guard)
	g.POST("/logout", a.Logout, authn)
	g.GET("/me", a.Me, authn)
}
