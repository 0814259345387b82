package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"microcredx-backend/internal/domain/apperr"
	"microcredx-backend/internal/domain/user"
	"microcredx-backend/internal/infrastructure/identity"

	"github.com/labstack/echo/v4"
)

// Context keys set by BearerAuth and RequireRole.
const (
	CtxIdentity = "identity"
	CtxRole     = "role"
)

// RoleLookup resolves a caller's role by email.
type RoleLookup interface {
	GetRole(ctx context.Context, email string) (user.Role, error)
}

// BearerAuth verifies the Authorization bearer token and stores the caller's
// identity on the context.
func BearerAuth(v identity.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			token = strings.TrimSpace(token)
			if !ok || token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			}

			id, err := v.Verify(c.Request().Context(), token)
			if err != nil {
				slog.Debug("auth: token rejected", "err", err)
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
			}

			c.Set(CtxIdentity, id)
			return next(c)
		}
	}
}

// RequireRole admits callers whose stored role is one of roles. It must be
// used AFTER BearerAuth.
func RequireRole(lookup RoleLookup, roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := c.Get(CtxIdentity).(*identity.Identity)
			if !ok || id == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			}

			role, err := lookup.GetRole(c.Request().Context(), id.Email)
			switch {
			case errors.Is(err, apperr.ErrNotFound):
				return c.JSON(http.StatusForbidden, map[string]string{"message": "Forbidden"})
			case err != nil:
				slog.Error("auth: role lookup", "email", id.Email, "err", err)
				return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal error"})
			}
			if !slices.Contains(roles, role) {
				return c.JSON(http.StatusForbidden, map[string]string{"message": "Forbidden"})
			}

			c.Set(CtxRole, role)
			return next(c)
		}
	}
}
