package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"multitenant-admin/backend/internal/audit"
	"multitenant-admin/backend/internal/principal"
	"multitenant-admin/backend/internal/tenant/domain"
	"multitenant-admin/backend/internal/tenant/service"
)

// TenantHandler serves tenant administration for platform operators.
// Routes are mounted behind the platform guard; the acting principal is
// recorded on writes.
type TenantHandler struct {
	tenants *service.TenantService
	audit   *audit.Logger
	log     *slog.Logger
}

// NewTenantHandler returns a TenantHandler with the given dependencies.
func NewTenantHandler(tenants *service.TenantService, auditLog *audit.Logger, log *slog.Logger) *TenantHandler {
	return &TenantHandler{tenants: tenants, audit: auditLog, log: log}
}

// Register mounts the tenant routes on the group.
func (h *TenantHandler) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.GET("/slug/:slug", h.GetBySlug)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

type createTenantRequest struct {
	Name   string `json:"name" validate:"required"`
	Slug   string `json:"slug" validate:"required"`
	Status string `json:"status"`
}

type updateTenantRequest struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type tenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdDate"`
	UpdatedBy string    `json:"lastModifiedBy,omitempty"`
	UpdatedAt time.Time `json:"lastModifiedDate"`
}

func toTenantResponse(t *domain.Tenant) tenantResponse {
	return tenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		Status:    t.Status,
		CreatedBy: t.CreatedBy,
		CreatedAt: t.CreatedAt,
		UpdatedBy: t.UpdatedBy,
		UpdatedAt: t.UpdatedAt,
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

// Create handles POST /api/platform/tenants.
func (h *TenantHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := principal.RequirePlatform(ctx)
	if err != nil {
		return principalError(c, err)
	}

	var req createTenantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	t, err := h.tenants.Create(ctx, req.Name, req.Slug, req.Status, p.ID)
	if err != nil {
		if errors.Is(err, service.ErrTenantAlreadyExists) {
			return c.JSON(http.StatusConflict, map[string]string{"message": "Tenant with this slug already exists"})
		}
		h.log.ErrorContext(ctx, "failed to create tenant", "slug", req.Slug, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal error"})
	}

	h.audit.Record(ctx, audit.Event{
		TenantID: t.ID, UserID: p.ID, Action: "tenant.create", Resource: "tenants/" + t.ID, IPAddress: c.RealIP(),
	})
	return c.JSON(http.StatusCreated, toTenantResponse(t))
}

// List handles GET /api/platform/tenants. An optional status query filters.
func (h *TenantHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	tenants, err := h.tenants.List(ctx, c.QueryParam("status"))
	if err != nil {
		h.log.ErrorContext(ctx, "failed to list tenants", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal error"})
	}
	out := make([]tenantResponse, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, toTenantResponse(t))
	}
	return c.JSON(http.StatusOK, out)
}

// GetByID handles GET /api/platform/tenants/:id.
func (h *TenantHandler) GetByID(c echo.Context) error {
	return h.get(c, func() (*domain.Tenant, error) {
		return h.tenants.GetByID(c.Request().Context(), c.Param("id"))
	})
}

// GetBySlug handles GET /api/platform/tenants/slug/:slug.
func (h *TenantHandler) GetBySlug(c echo.Context) error {
	return h.get(c, func() (*domain.Tenant, error) {
		return h.tenants.GetBySlug(c.Request().Context(), c.Param("slug"))
	})
}

func (h *TenantHandler) get(c echo.Context, load func() (*domain.Tenant, error)) error {
	t, err := load()
	if err != nil {
		if errors.Is(err, service.ErrTenantNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Tenant not found"})
		}
		h.log.ErrorContext(c.Request().Context(), "failed to load tenant", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal error"})
	}
	return c.JSON(http.StatusOK, toTenantResponse(t))
}

// Update handles PUT /api/platform/tenants/:id. Empty fields keep their
// current value.
func (h *TenantHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := principal.RequirePlatform(ctx)
	if err != nil {
		return principalError(c, err)
	}

	var req updateTenantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	t, err := h.tenants.Update(ctx, c.Param("id"), req.Name, req.Status, p.ID)
	if err != nil {
		if errors.Is(err, service.ErrTenantNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Tenant not found"})
		}
		h.log.ErrorContext(ctx, "failed to update tenant", "id", c.Param("id"), "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal error"})
	}

	h.audit.Record(ctx, audit.Event{
		TenantID: t.ID, UserID: p.ID, Action: "tenant.update", Resource: "tenants/" + t.ID, IPAddress: c.RealIP(),
	})
	return c.JSON(http.StatusOK, toTenantResponse(t))
}

// Delete handles DELETE /api/platform/tenants/:id.
func (h *TenantHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := principal.RequirePlatform(ctx)
	if err != nil {
		return principalError(c, err)
	}

	id := c.Param("id")
	if err := h.tenants.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrTenantNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "Tenant not found"})
		}
		h.log.ErrorContext(ctx, "failed to delete tenant", "id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal error"})
	}

	h.audit.Record(ctx, audit.Event{
		TenantID: id, UserID: p.ID, Action: "tenant.delete", Resource: "tenants/" + id, IPAddress: c.RealIP(),
	})
	return c.NoContent(http.StatusNoContent)
}
