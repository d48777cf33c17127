package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/glassview/internal/handler"
	"github.com/iliyamo/glassview/internal/middleware"
	"github.com/iliyamo/glassview/internal/service"
)

// RegisterInventory registers the /inventory routes.  Every route needs an
// authenticated caller; ownership checks happen in the coordinator.  The
// rate limiter runs after authentication so buckets are per user.
func RegisterInventory(e *echo.Echo, h *handler.InventoryHandler, guard *service.Guard, limit echo.MiddlewareFunc) {
	g := e.Group("/inventory", middleware.Authenticate(guard), limit)
	g.POST("", h.Create)
	g.GET("/:store", h.List)
	g.GET("/:store/by_location/:location_id", h.ListByLocation)
	g.GET("/:store/:id", h.Get)
	g.PUT("/:store/:id", h.Update)
	g.DELETE("/:store/:id", h.Delete)
}
