package http

import (
	"errors"
	"log/slog"
	"net/http"

	"microcredx-backend/internal/domain/apperr"

	"github.com/labstack/echo/v4"
)

// Default messages for errors that carry no client-facing detail.
const (
	msgInternal     = "internal error"
	msgInvalidBody  = "invalid body"
	msgValidation   = "validation failed"
	msgUnauthorized = "Unauthorized"
	msgForbidden    = "Forbidden"
)

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// failure resolves err to a status and a message safe to return. notFound and
// internal override the defaults for 404 and 500; store errors are logged
// here and never echoed back.
func failure(c echo.Context, err error, notFound, internal string) (int, string) {
	code := statusFor(err)
	switch code {
	case http.StatusNotFound:
		if notFound != "" {
			return code, notFound
		}
		return code, "not found"
	case http.StatusUnauthorized:
		return code, msgUnauthorized
	case http.StatusForbidden:
		return code, msgForbidden
	case http.StatusInternalServerError:
		slog.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"err", err,
		)
		if internal != "" {
			return code, internal
		}
		return code, msgInternal
	default:
		return code, err.Error()
	}
}

func writeError(c echo.Context, err error, notFound, internal string) error {
	code, msg := failure(c, err, notFound, internal)
	return c.JSON(code, ErrorResponse{Message: msg})
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgInvalidBody})
}

func invalid(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Message: msgValidation, Details: ToFieldErrors(err)})
}
