package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"multitenant-admin/backend/internal/audit"
	"multitenant-admin/backend/internal/principal"
	"multitenant-admin/backend/internal/tenantuser/domain"
	"multitenant-admin/backend/internal/tenantuser/service"
)

// SessionRevoker kills the live sessions of a deleted user.
type SessionRevoker interface {
	RevokeAllForUser(ctx context.Context, userID string) error
}

// TenantUserHandler serves tenant user administration for platform
// operators. All routes are scoped to a tenant through the tenantId path
// parameter.
type TenantUserHandler struct {
	users    *service.TenantUserService
	sessions SessionRevoker
	audit    *audit.Logger
	log      *slog.Logger
}

// NewTenantUserHandler returns a TenantUserHandler with the given dependencies.
func NewTenantUserHandler(users *service.TenantUserService, sessions SessionRevoker, auditLog *audit.Logger, log *slog.Logger) *TenantUserHandler {
	return &TenantUserHandler{users: users, sessions: sessions, audit: auditLog, log: log}
}

// Register mounts the tenant user routes on the group.
func (h *TenantUserHandler) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/count", h.Count)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

type createUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type updateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// userResponse never carries the password hash.
type userResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdDate"`
	UpdatedAt time.Time `json:"lastModifiedDate"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		TenantID:  u.TenantID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// principalError maps narrowing failures: anonymous requests get 401, a
// wrong-kind principal gets 403.
func principalError(c echo.Context, err error) error {
	if errors.Is(err, principal.ErrWrongKind) {
		return c.JSON(http.StatusForbidden, map[string]string{"message": "Forbidden"})
	}
	return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Not authenticated"})
}

// Create handles POST /api/platform/tenants/:tenantId/users.
func (h *TenantUserHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := principal.RequirePlatform(ctx)
	if err != nil {
		return principalError(c, err)
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	tenantID := c.Param("tenantId")
	u, err := h.users.Create(ctx, tenantID, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTenantNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Tenant not found"})
		case errors.Is(err, service.ErrUserAlreadyExists):
			return c.JSON(http.StatusConflict, map[string]string{"message": "User with this email already exists"})
		}
		h.log.ErrorContext(ctx, "failed to create tenant user", "tenantId", tenantID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal error"})
	}

	h.audit.Record(ctx, audit.Event{
		TenantID: tenantID, UserID: p.ID, Action: "tenant_user.create", Resource: "tenant_users/" + u.ID, IPAddress: c.RealIP(),
	})
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

// List handles GET /api/platform/tenants/:tenantId/users.
func (h *TenantUserHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	users, err := h.users.ListByTenant(ctx, c.Param("tenantId"))
	if err != nil {
		if errors.Is(err, service.ErrTenantNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Tenant not found"})
		}
		h.log.ErrorContext(ctx, "failed to list tenant users", "tenantId", c.Param("tenantId"), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal error"})
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

// Count handles GET /api/platform/tenants/:tenantId/users/count.
func (h *TenantUserHandler) Count(c echo.Context) error {
	ctx := c.Request().Context()
	n, err := h.users.CountByTenant(ctx, c.Param("tenantId"))
	if err != nil {
		h.log.ErrorContext(ctx, "failed to count tenant users", "tenantId", c.Param("tenantId"), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal error"})
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": n})
}

// GetByID handles GET /api/platform/tenants/:tenantId/users/:id.
func (h *TenantUserHandler) GetByID(c echo.Context) error {
	ctx := c.Request().Context()
	u, err := h.users.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
		}
		h.log.ErrorContext(ctx, "failed to load tenant user", "id", c.Param("id"), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal error"})
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// Update handles PUT /api/platform/tenants/:tenantId/users/:id. Only first
// and last name are updatable; empty fields keep their current value.
func (h *TenantUserHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := principal.RequirePlatform(ctx)
	if err != nil {
		return principalError(c, err)
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	u, err := h.users.UpdateName(ctx, c.Param("id"), req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
		}
		h.log.ErrorContext(ctx, "failed to update tenant user", "id", c.Param("id"), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal error"})
	}

	h.audit.Record(ctx, audit.Event{
		TenantID: u.TenantID, UserID: p.ID, Action: "tenant_user.update", Resource: "tenant_users/" + u.ID, IPAddress: c.RealIP(),
	})
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// Delete handles DELETE /api/platform/tenants/:tenantId/users/:id.
func (h *TenantUserHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := principal.RequirePlatform(ctx)
	if err != nil {
		return principalError(c, err)
	}

	id := c.Param("id")
	if err := h.users.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
		}
		h.log.ErrorContext(ctx, "failed to delete tenant user", "id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal error"})
	}
	if err := h.sessions.RevokeAllForUser(ctx, id); err != nil {
		h.log.WarnContext(ctx, "failed to revoke sessions of deleted user", "id", id, "error", err)
	}

	h.audit.Record(ctx, audit.Event{
		TenantID: c.Param("tenantId"), UserID: p.ID, Action: "tenant_user.delete", Resource: "tenant_users/" + id, IPAddress: c.RealIP(),
	})
	return c.NoContent(http.StatusNoContent)
}
