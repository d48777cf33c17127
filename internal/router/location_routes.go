package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/glassview/internal/handler"
	"github.com/iliyamo/glassview/internal/middleware"
	"github.com/iliyamo/glassview/internal/service"
)

// LocationMiddleware groups the redis-backed middleware the location
// routes use.  Any of them may be a pass-through when redis is off.
type LocationMiddleware struct {
	Limit      echo.MiddlewareFunc
	Cache      echo.MiddlewareFunc
	Invalidate echo.MiddlewareFunc
}

// RegisterLocation registers the /location routes.  Reads are open to any
// authenticated caller and served through the read cache; mutations are
// admin only and clear the cache when they write.
func RegisterLocation(e *echo.Echo, h *handler.LocationHandler, guard *service.Guard, mw LocationMiddleware) {
	g := e.Group("/location", middleware.Authenticate(guard), mw.Limit)
	g.GET("/:store", h.List, mw.Cache)
	g.GET("/:store/:id", h.Get, mw.Cache)

	admin := []echo.MiddlewareFunc{middleware.RequireAdmin(), mw.Invalidate}
	g.POST("", h.Create, admin...)
	g.PUT("/:store/:id", h.Update, admin...)
	g.DELETE("/:store/:id", h.Delete, admin...)
}
