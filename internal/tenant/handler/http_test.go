package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"multitenant-admin/backend/internal/audit"
	auditdomain "multitenant-admin/backend/internal/audit/domain"
	identitydomain "multitenant-admin/backend/internal/identity/domain"
	"multitenant-admin/backend/internal/principal"
	"multitenant-admin/backend/internal/tenant/domain"
	"multitenant-admin/backend/internal/tenant/service"
	"multitenant-admin/backend/internal/validation"
)

type memTenantRepo struct {
	mu sync.Mutex
	m  map[string]*domain.Tenant
}

func newMemTenantRepo() *memTenantRepo {
	return &memTenantRepo{m: map[string]*domain.Tenant{}}
}

func (r *memTenantRepo) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m[id], nil
}

func (r *memTenantRepo) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.m {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, nil
}

func (r *memTenantRepo) List(ctx context.Context) ([]*domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Tenant, 0, len(r.m))
	for _, t := range r.m {
		out = append(out, t)
	}
	return out, nil
}

func (r *memTenantRepo) ListByStatus(ctx context.Context, status string) ([]*domain.Tenant, error) {
	all, _ := r.List(ctx)
	var out []*domain.Tenant
	for _, t := range all {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTenantRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	t, _ := r.GetBySlug(ctx, slug)
	return t != nil, nil
}

func (r *memTenantRepo) Create(ctx context.Context, t *domain.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t2 := *t
	r.m[t.ID] = &t2
	return nil
}

func (r *memTenantRepo) Update(ctx context.Context, id, name, status, updatedBy string) (*domain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.m[id]
	if !ok {
		return nil, nil
	}
	t.Name = name
	t.Status = status
	t.UpdatedBy = updatedBy
	return t, nil
}

func (r *memTenantRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[id]; !ok {
		return false, nil
	}
	delete(r.m, id)
	return true, nil
}

type tenantFixture struct {
	handler *TenantHandler
	svc     *service.TenantService
	audits  []*auditdomain.Log
	echo    *echo.Echo
}

type captureAuditRepo struct {
	f *tenantFixture
}

func (r *captureAuditRepo) Create(ctx context.Context, l *auditdomain.Log) error {
	r.f.audits = append(r.f.audits, l)
	return nil
}

func newTenantFixture() *tenantFixture {
	f := &tenantFixture{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = service.NewTenantService(newMemTenantRepo())
	f.handler = NewTenantHandler(f.svc, audit.NewLogger(&captureAuditRepo{f: f}, log), log)
	f.echo = echo.New()
	f.echo.Validator = validation.NewRequestValidator()
	return f
}

func platformCtx() *identitydomain.Identity {
	return &identitydomain.Identity{ID: "p1", Username: "admin", Email: "admin@hq.com",
		Kind: identitydomain.UserKindPlatform, Enabled: true}
}

func (f *tenantFixture) do(t *testing.T, method, target, body string, params map[string]string, id *identitydomain.Identity, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if id != nil {
		req = req.WithContext(principal.WithIdentity(req.Context(), id))
	}
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for k, v := range params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec
}

func TestTenantHandler_Create(t *testing.T) {
	f := newTenantFixture()

	rec := f.do(t, http.MethodPost, "/", `{"name":"Acme Corp","slug":"acme"}`, nil, platformCtx(), f.handler.Create)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["slug"] != "acme" || body["status"] != "ACTIVE" {
		t.Errorf("unexpected body: %v", body)
	}
	if body["createdBy"] != "p1" {
		t.Errorf("createdBy = %v, want the acting principal", body["createdBy"])
	}
	if len(f.audits) != 1 || f.audits[0].Action != "tenant.create" {
		t.Errorf("audits = %+v", f.audits)
	}

	t.Run("duplicate slug", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/", `{"name":"Other","slug":"acme"}`, nil, platformCtx(), f.handler.Create)
		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/", `{"name":"X","slug":"x"}`, nil, nil, f.handler.Create)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestTenantHandler_GetAndList(t *testing.T) {
	f := newTenantFixture()
	created, err := f.svc.Create(context.Background(), "Acme Corp", "acme", "", "p1")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := f.do(t, http.MethodGet, "/", "", map[string]string{"id": created.ID}, platformCtx(), f.handler.GetByID)
	if rec.Code != http.StatusOK {
		t.Errorf("GetByID status = %d", rec.Code)
	}

	rec = f.do(t, http.MethodGet, "/", "", map[string]string{"slug": "acme"}, platformCtx(), f.handler.GetBySlug)
	if rec.Code != http.StatusOK {
		t.Errorf("GetBySlug status = %d", rec.Code)
	}

	rec = f.do(t, http.MethodGet, "/", "", map[string]string{"id": "missing"}, platformCtx(), f.handler.GetByID)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing tenant status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Tenant not found") {
		t.Errorf("body = %s", rec.Body.String())
	}

	rec = f.do(t, http.MethodGet, "/", "", nil, platformCtx(), f.handler.List)
	if rec.Code != http.StatusOK {
		t.Errorf("List status = %d", rec.Code)
	}
	var list []map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &list)
	if len(list) != 1 {
		t.Errorf("got %d tenants, want 1", len(list))
	}
}

func TestTenantHandler_UpdateAndDelete(t *testing.T) {
	f := newTenantFixture()
	created, err := f.svc.Create(context.Background(), "Acme Corp", "acme", "", "p1")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := f.do(t, http.MethodPut, "/", `{"status":"SUSPENDED"}`,
		map[string]string{"id": created.ID}, platformCtx(), f.handler.Update)
	if rec.Code != http.StatusOK {
		t.Fatalf("Update status = %d, body %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != "SUSPENDED" {
		t.Errorf("status = %v", body["status"])
	}
	if body["name"] != "Acme Corp" {
		t.Errorf("partial update must keep name, got %v", body["name"])
	}

	rec = f.do(t, http.MethodDelete, "/", "", map[string]string{"id": created.ID}, platformCtx(), f.handler.Delete)
	if rec.Code != http.StatusNoContent {
		t.Errorf("Delete status = %d", rec.Code)
	}

	rec = f.do(t, http.MethodDelete, "/", "", map[string]string{"id": created.ID}, platformCtx(), f.handler.Delete)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second Delete status = %d, want 404", rec.Code)
	}
}
