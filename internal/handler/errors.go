package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/glassview/internal/middleware"
	"github.com/iliyamo/glassview/internal/model"
	"github.com/iliyamo/glassview/internal/service"
)

// errInvalidBody is returned when a request body cannot be decoded.
var errInvalidBody = errors.New("request body could not be decoded")

// errorResponse maps an error to its status and {"error","detail"} body.
func errorResponse(err error) (int, echo.Map) {
	var ve *model.ValidationError
	var he *echo.HTTPError
	switch {
	case errors.Is(err, errInvalidBody):
		return http.StatusBadRequest, echo.Map{"error": "invalid_body", "detail": err.Error()}
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, echo.Map{"error": "unauthenticated", "detail": "missing or invalid credentials"}
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, echo.Map{"error": "forbidden", "detail": "not allowed for this user"}
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, echo.Map{"error": "not_found", "detail": "record not found"}
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, echo.Map{"error": "validation_error", "detail": ve.Error(), "field": ve.Field}
	case errors.Is(err, service.ErrConflict):
		return http.StatusBadRequest, echo.Map{"error": "conflict", "detail": err.Error()}
	case errors.Is(err, service.ErrCreateFailed):
		return http.StatusBadRequest, echo.Map{"error": "create_failed", "detail": err.Error()}
	case errors.Is(err, service.ErrPartialWrite):
		return http.StatusMultiStatus, echo.Map{"error": "partial_write_failure", "detail": err.Error()}
	case errors.Is(err, service.ErrStoreFailure):
		return http.StatusInternalServerError, echo.Map{"error": "store_failure", "detail": "storage backend error"}
	case errors.As(err, &he):
		code := strings.ReplaceAll(strings.ToLower(http.StatusText(he.Code)), " ", "_")
		return he.Code, echo.Map{"error": code, "detail": he.Message}
	}
	return http.StatusInternalServerError, echo.Map{"error": "internal_error", "detail": "unexpected error"}
}

// HTTPErrorHandler renders every error returned by handlers and middleware.
func HTTPErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			log.WithError(err).WithField("route", c.Path()).Error("request failed")
		}
		if status == http.StatusUnauthorized {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		}
		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			log.WithError(werr).Warn("write error response")
		}
	}
}

// writeCreated renders a dual-write create: 201 with both copies, or 207
// with the relational copy when the document write failed.
func writeCreated[T any](c echo.Context, res service.CreateResult[T], err error) error {
	if err == nil {
		return c.JSON(http.StatusCreated, res)
	}
	if !errors.Is(err, service.ErrPartialWrite) {
		return err
	}
	return c.JSON(http.StatusMultiStatus, echo.Map{
		"error":   "partial_write_failure",
		"detail":  err.Error(),
		"mysql":   res.Relational,
		"mongodb": nil,
	})
}

// bind decodes the body into v and maps decoding failures to errInvalidBody.
func bind(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return errInvalidBody
	}
	return nil
}

func storeParam(c echo.Context) (model.Store, error) {
	s, err := model.ParseStore(c.Param("store"))
	if err != nil {
		return "", service.ErrNotFound
	}
	return s, nil
}

// identity returns the caller stored by the Authenticate middleware.
func identity(c echo.Context) (model.Identity, error) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return model.Identity{}, service.ErrUnauthenticated
	}
	return id, nil
}
