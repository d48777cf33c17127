package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/glassview/internal/model"
	"github.com/iliyamo/glassview/internal/service"
)

// InventoryHandler exposes inventory operations.  Every route requires an
// authenticated caller; visibility is decided by the coordinator.
type InventoryHandler struct {
	Coord *service.Coordinator
}

func NewInventoryHandler(coord *service.Coordinator) *InventoryHandler {
	return &InventoryHandler{Coord: coord}
}

// Create: POST /inventory writes to both stores.
func (h *InventoryHandler) Create(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var inv model.Inventory
	if err := bind(c, &inv); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Coord.CreateInventory(ctx, id, inv)
	return writeCreated(c, res, err)
}

// List: GET /inventory/:store
func (h *InventoryHandler) List(c echo.Context) error {
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

	items, err := h.Coord.ListInventory(ctx, id, store)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ListByLocation: GET /inventory/:store/by_location/:location_id
func (h *InventoryHandler) ListByLocation(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	store, err := storeParam(c)
	if err != nil {
		return err
	}
	locID, err := strconv.ParseInt(c.Param("location_id"), 10, 64)
	if err != nil || locID <= 0 {
		return &model.ValidationError{Field: "location_id", Reason: "must be a positive integer"}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Coord.ListInventoryByLocation(ctx, id, store, locID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get: GET /inventory/:store/:id
func (h *InventoryHandler) Get(c echo.Context) error {
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

	inv, err := h.Coord.GetInventory(ctx, id, store, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inv)
}

// Update: PUT /inventory/:store/:id applies a partial patch to one store.
func (h *InventoryHandler) Update(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	store, err := storeParam(c)
	if err != nil {
		return err
	}
	var patch model.InventoryPatch
	if err := bind(c, &patch); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	inv, err := h.Coord.UpdateInventory(ctx, id, store, c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inv)
}

// Delete: DELETE /inventory/:store/:id removes the record from one store.
func (h *InventoryHandler) Delete(c echo.Context) error {
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

	if err := h.Coord.DeleteInventory(ctx, id, store, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
