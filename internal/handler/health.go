package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

// Health is a liveness probe.  It returns a plain text "ok" message with
// an HTTP 200 status code and touches no dependency.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Check pings one backing store.
type Check func(ctx context.Context) error

// ReadyHandler reports whether every backing store answers.
type ReadyHandler struct {
	Checks  map[string]Check
	Timeout time.Duration
}

func NewReadyHandler(checks map[string]Check) *ReadyHandler {
	return &ReadyHandler{Checks: checks, Timeout: 2 * time.Second}
}

// Ready runs all checks concurrently.  It answers 503 naming the first
// store that failed.
func (h *ReadyHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for name, check := range h.Checks {
		name, check := name, check
		g.Go(func() error {
			if err := check(gctx); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "not_ready", "detail": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
}
