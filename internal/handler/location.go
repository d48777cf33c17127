package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/glassview/internal/model"
	"github.com/iliyamo/glassview/internal/service"
)

// LocationHandler exposes location operations.  Reads are open to any
// authenticated caller; mutations are admin only.
type LocationHandler struct {
	Coord *service.Coordinator
}

func NewLocationHandler(coord *service.Coordinator) *LocationHandler {
	return &LocationHandler{Coord: coord}
}

// Create: POST /location writes to both stores.
func (h *LocationHandler) Create(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var loc model.Location
	if err := bind(c, &loc); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Coord.CreateLocation(ctx, id, loc)
	return writeCreated(c, res, err)
}

// List: GET /location/:store
func (h *LocationHandler) List(c echo.Context) error {
	store, err := storeParam(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	locs, err := h.Coord.ListLocations(ctx, store)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, locs)
}

// Get: GET /location/:store/:id
func (h *LocationHandler) Get(c echo.Context) error {
	store, err := storeParam(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	loc, err := h.Coord.GetLocation(ctx, store, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loc)
}

// Update: PUT /location/:store/:id
func (h *LocationHandler) Update(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	store, err := storeParam(c)
	if err != nil {
		return err
	}
	var patch model.LocationPatch
	if err := bind(c, &patch); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	loc, err := h.Coord.UpdateLocation(ctx, id, store, c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loc)
}

// Delete: DELETE /location/:store/:id
func (h *LocationHandler) Delete(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	store, err := storeParam(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Coord.DeleteLocation(ctx, id, store, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
