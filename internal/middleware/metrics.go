package middleware

import (
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/glassview/internal/metrics"
)

// Metrics records request counts and latency per route pattern, and cache
// hits and misses from the X-Cache header NewRedisCache sets.
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)
            if err != nil {
                c.Error(err)
            }

            route := c.Path()
            if route == "" {
                route = "unmatched"
            }
            method := c.Request().Method
            m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response().Status)).Inc()
            m.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

            switch c.Response().Header().Get("X-Cache") {
            case "HIT":
                m.CacheLookupsTotal.WithLabelValues("hit").Inc()
            case "MISS":
                m.CacheLookupsTotal.WithLabelValues("miss").Inc()
            }
            return nil
        }
    }
}
