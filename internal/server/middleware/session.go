package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	identitydomain "multitenant-admin/backend/internal/identity/domain"
	"multitenant-admin/backend/internal/principal"
	sessionservice "multitenant-admin/backend/internal/session/service"
)

// SessionResolver resolves a session cookie token to an identity.
type SessionResolver interface {
	CurrentIdentity(ctx context.Context, token string) (*identitydomain.Identity, error)
}

// Session returns middleware that resolves the session cookie and attaches
// the identity to the request context. Requests without a usable session
// pass through anonymous; enforcement happens in the guards below.
func Session(binder SessionResolver, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}
			id, err := binder.CurrentIdentity(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, sessionservice.ErrNoSession) {
					return next(c)
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
			}
			ctx := principal.WithIdentity(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequirePlatform returns middleware that rejects requests whose identity is
// not a platform user: 401 when anonymous, 403 when the wrong kind.
func RequirePlatform() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := principal.RequirePlatform(c.Request().Context()); err != nil {
				return guardError(c, err)
			}
			return next(c)
		}
	}
}

// RequireTenant returns middleware that rejects requests whose identity is
// not a tenant user: 401 when anonymous, 403 when the wrong kind.
func RequireTenant() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := principal.RequireTenant(c.Request().Context()); err != nil {
				return guardError(c, err)
			}
			return next(c)
		}
	}
}

func guardError(c echo.Context, err error) error {
	if errors.Is(err, principal.ErrWrongKind) {
		return c.JSON(http.StatusForbidden, map[string]string{"message": "Forbidden"})
	}
	return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Not authenticated"})
}
