package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/miniorder/order-system/internal/core/domain"
)

// NewHTTPErrorHandler maps domain errors onto HTTP status codes and renders a
// uniform {"error": "..."} envelope. Unknown errors are logged and masked as
// an opaque 500 so storage details never leak to clients.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := "internal server error"

		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(status)
			}
		case errors.Is(err, domain.ErrInvalidOrderInput):
			status = http.StatusBadRequest
			msg = err.Error()
		case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, domain.ErrUserNotFound):
			status = http.StatusNotFound
			msg = err.Error()
		case errors.Is(err, domain.ErrInvalidTransition):
			status = http.StatusUnprocessableEntity
			msg = err.Error()
		case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidToken):
			status = http.StatusUnauthorized
			msg = err.Error()
		case errors.Is(err, domain.ErrUserExists):
			status = http.StatusConflict
			msg = err.Error()
		default:
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("unhandled error")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, map[string]string{"error": msg})
		}
		if writeErr != nil {
			log.Error().Err(writeErr).Msg("failed to write error response")
		}
	}
}
