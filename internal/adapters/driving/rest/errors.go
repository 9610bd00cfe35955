package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
)

// extraError marks failures of per-type extras, rendered under "error"
// instead of "detail".
type extraError struct {
	err error
}

func (e extraError) Error() string { return e.err.Error() }

func (e extraError) Unwrap() error { return e.err }

// statusFor maps domain sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrAuthRequired),
		errors.Is(err, domain.ErrAuthInvalid),
		errors.Is(err, domain.ErrAuthExpired):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnsupported):
		return http.StatusNotImplemented
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrTransport):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// errorHandler renders errors as {"detail": message}, or {"error": message}
// for extras.
func errorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := statusFor(err)
		message := err.Error()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		}

		key := "detail"
		var extra extraError
		if errors.As(err, &extra) {
			key = "error"
		}

		if code >= http.StatusInternalServerError {
			log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, map[string]string{key: message})
		}
		if writeErr != nil {
			log.Warn("writing error response", zap.Error(writeErr))
		}
	}
}
