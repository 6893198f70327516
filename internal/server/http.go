// Package server assembles the HTTP surface: routes, guards and
// instrumentation middleware.
package server

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	healthhandler "multitenant-admin/backend/internal/health/handler"
	identityhandler "multitenant-admin/backend/internal/identity/handler"
	"multitenant-admin/backend/internal/server/middleware"
	tenanthandler "multitenant-admin/backend/internal/tenant/handler"
	tenantuserhandler "multitenant-admin/backend/internal/tenantuser/handler"
	"multitenant-admin/backend/internal/validation"
)

// ServiceName identifies this server in telemetry.
const ServiceName = "mta-backend"

// Deps carries everything the router needs.
type Deps struct {
	Auth        *identityhandler.AuthHandler
	Tenants     *tenanthandler.TenantHandler
	TenantUsers *tenantuserhandler.TenantUserHandler
	Health      *healthhandler.HealthHandler
	Sessions    middleware.SessionResolver
	CookieName  string
	Log         *slog.Logger
}

// New builds the echo instance. The session middleware runs on every route;
// the platform guard wraps only the /api/platform subtree, so the auth
// endpoints stay reachable anonymously.
func New(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.NewRequestValidator()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(otelecho.Middleware(ServiceName))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			args := []any{"method", v.Method, "uri", v.URI, "status", v.Status}
			if v.Error != nil {
				args = append(args, "error", v.Error)
			}
			deps.Log.InfoContext(c.Request().Context(), "request", args...)
			return nil
		},
	}))
	e.Use(middleware.Session(deps.Sessions, deps.CookieName))

	deps.Health.Register(e)

	api := e.Group("/api")
	deps.Auth.Register(api.Group("/auth"))

	platform := api.Group("/platform", middleware.RequirePlatform())
	deps.Tenants.Register(platform.Group("/tenants"))
	deps.TenantUsers.Register(platform.Group("/tenants/:tenantId/users"))

	return e
}
