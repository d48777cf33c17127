package middleware

import (
    "time"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"
)

// RequestLogger logs one line per request.  Handler errors are rendered
// through c.Error first so the logged status is the one the client got.
func RequestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)
            if err != nil {
                c.Error(err)
            }

            res := c.Response()
            fields := logrus.Fields{
                "request_id": res.Header().Get(echo.HeaderXRequestID),
                "method":     c.Request().Method,
                "route":      c.Path(),
                "status":     res.Status,
                "latency":    time.Since(start).String(),
            }
            if id, ok := CurrentIdentity(c); ok {
                fields["user"] = id.Username
            }
            entry := log.WithFields(fields)
            switch {
            case res.Status >= 500:
                entry.Error("request")
            case res.Status >= 400:
                entry.Warn("request")
            default:
                entry.Info("request")
            }
            return nil
        }
    }
}
