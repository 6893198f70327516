package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"multitenant-admin/backend/internal/audit"
	"multitenant-admin/backend/internal/identity/domain"
	identityservice "multitenant-admin/backend/internal/identity/service"
	"multitenant-admin/backend/internal/principal"
)

// Authenticator verifies credentials and returns the matching identity.
type Authenticator interface {
	Authenticate(ctx context.Context, identifier, password string) (*domain.Identity, error)
}

// SessionBinder creates and revokes login sessions.
type SessionBinder interface {
	Login(ctx context.Context, id *domain.Identity, ipAddress, priorToken string) (string, error)
	Logout(ctx context.Context, token string) error
}

// AuthHandler serves the login, logout and whoami endpoints for both
// principal kinds. The two login endpoints differ only in how they build
// the identifier handed to the authenticator.
type AuthHandler struct {
	auth       Authenticator
	binder     SessionBinder
	audit      *audit.Logger
	log        *slog.Logger
	cookieName string
	sessionTTL time.Duration
}

// NewAuthHandler returns an AuthHandler with the given dependencies.
func NewAuthHandler(auth Authenticator, binder SessionBinder, auditLog *audit.Logger, log *slog.Logger, cookieName string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, binder: binder, audit: auditLog, log: log, cookieName: cookieName, sessionTTL: sessionTTL}
}

// Register mounts the auth routes on the group.
func (h *AuthHandler) Register(g *echo.Group) {
	g.POST("/platform/login", h.PlatformLogin)
	g.POST("/platform/logout", h.PlatformLogout)
	g.POST("/tenant/login", h.TenantLogin)
	g.POST("/tenant/logout", h.TenantLogout)
	g.GET("/me", h.Me)
}

type platformLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tenantLoginRequest struct {
	Email      string `json:"email" validate:"required"`
	TenantSlug string `json:"tenantSlug" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// loginResponse is also the whoami body. The pointer fields stay null for
// failures and for kinds they do not apply to.
type loginResponse struct {
	UserID   *string `json:"userId"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
	UserType *string `json:"userType"`
	TenantID *string `json:"tenantId"`
	Message  string  `json:"message"`
}

func identityResponse(id *domain.Identity, message string) loginResponse {
	kind := string(id.Kind)
	resp := loginResponse{
		UserID:   &id.ID,
		Username: &id.Username,
		Email:    &id.Email,
		UserType: &kind,
		Message:  message,
	}
	if id.TenantID != "" {
		resp.TenantID = &id.TenantID
	}
	return resp
}

// PlatformLogin handles POST /api/auth/platform/login.
func (h *AuthHandler) PlatformLogin(c echo.Context) error {
	var req platformLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, loginResponse{Message: "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, loginResponse{Message: "Invalid request body"})
	}
	return h.login(c, req.Username, req.Password, "Platform login successful")
}

// TenantLogin handles POST /api/auth/tenant/login. The email and slug are
// folded into one composite identifier so the rest of the flow is shared
// with platform login.
func (h *AuthHandler) TenantLogin(c echo.Context) error {
	var req tenantLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, loginResponse{Message: "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, loginResponse{Message: "Invalid request body"})
	}
	identifier := domain.EncodeTenantUsername(req.Email, req.TenantSlug)
	return h.login(c, identifier, req.Password, "Tenant login successful")
}

func (h *AuthHandler) login(c echo.Context, identifier, password, successMessage string) error {
	ctx := c.Request().Context()

	id, err := h.auth.Authenticate(ctx, identifier, password)
	if err != nil {
		if errors.Is(err, identityservice.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, loginResponse{Message: "Invalid credentials"})
		}
		h.log.ErrorContext(ctx, "login failed", "error", err)
		return c.JSON(http.StatusInternalServerError, loginResponse{Message: "Internal error"})
	}

	priorToken := ""
	if cookie, err := c.Cookie(h.cookieName); err == nil {
		priorToken = cookie.Value
	}
	token, err := h.binder.Login(ctx, id, c.RealIP(), priorToken)
	if err != nil {
		h.log.ErrorContext(ctx, "failed to create session", "error", err)
		return c.JSON(http.StatusInternalServerError, loginResponse{Message: "Internal error"})
	}

	c.SetCookie(h.sessionCookie(token, h.sessionTTL))
	h.audit.Record(ctx, audit.Event{
		TenantID:  id.TenantID,
		UserID:    id.ID,
		Action:    "auth.login",
		Resource:  "sessions",
		IPAddress: c.RealIP(),
	})
	return c.JSON(http.StatusOK, identityResponse(id, successMessage))
}

// PlatformLogout handles POST /api/auth/platform/logout.
func (h *AuthHandler) PlatformLogout(c echo.Context) error {
	return h.logout(c, "Platform logout successful")
}

// TenantLogout handles POST /api/auth/tenant/logout.
func (h *AuthHandler) TenantLogout(c echo.Context) error {
	return h.logout(c, "Tenant logout successful")
}

// logout revokes whatever session the cookie denotes and clears the cookie.
// It succeeds even without a cookie so repeated logouts are harmless.
func (h *AuthHandler) logout(c echo.Context, message string) error {
	ctx := c.Request().Context()
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		if err := h.binder.Logout(ctx, cookie.Value); err != nil {
			h.log.ErrorContext(ctx, "failed to revoke session", "error", err)
			return c.JSON(http.StatusInternalServerError, loginResponse{Message: "Internal error"})
		}
	}
	if id := principal.Current(ctx); id != nil {
		h.audit.Record(ctx, audit.Event{
			TenantID:  id.TenantID,
			UserID:    id.ID,
			Action:    "auth.logout",
			Resource:  "sessions",
			IPAddress: c.RealIP(),
		})
	}
	c.SetCookie(h.sessionCookie("", -time.Hour))
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c echo.Context) error {
	id := principal.Current(c.Request().Context())
	if id == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Not authenticated"})
	}
	return c.JSON(http.StatusOK, identityResponse(id, "Authenticated"))
}

func (h *AuthHandler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
