package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	identitydomain "multitenant-admin/backend/internal/identity/domain"
	"multitenant-admin/backend/internal/principal"
	sessionservice "multitenant-admin/backend/internal/session/service"
)

type stubResolver struct {
	tokens map[string]*identitydomain.Identity
}

func (r *stubResolver) CurrentIdentity(ctx context.Context, token string) (*identitydomain.Identity, error) {
	if id, ok := r.tokens[token]; ok {
		return id, nil
	}
	return nil, sessionservice.ErrNoSession
}

func newSessionHarness() (*echo.Echo, echo.HandlerFunc) {
	e := echo.New()
	handler := func(c echo.Context) error {
		id := principal.Current(c.Request().Context())
		if id == nil {
			return c.String(http.StatusOK, "anonymous")
		}
		return c.String(http.StatusOK, string(id.Kind))
	}
	return e, handler
}

func doSession(t *testing.T, resolver SessionResolver, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	e, handler := newSessionHarness()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "mta_session", Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := Session(resolver, "mta_session")(handler)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	return rec
}

func TestSession(t *testing.T) {
	resolver := &stubResolver{tokens: map[string]*identitydomain.Identity{
		"good": {ID: "t1", Kind: identitydomain.UserKindTenant, TenantID: "tid-acme"},
	}}

	t.Run("valid cookie attaches identity", func(t *testing.T) {
		rec := doSession(t, resolver, "good")
		if got := rec.Body.String(); got != "TENANT" {
			t.Errorf("body = %q, want TENANT", got)
		}
	})

	t.Run("no cookie passes anonymous", func(t *testing.T) {
		rec := doSession(t, resolver, "")
		if got := rec.Body.String(); got != "anonymous" {
			t.Errorf("body = %q, want anonymous", got)
		}
	})

	t.Run("dead session passes anonymous", func(t *testing.T) {
		rec := doSession(t, resolver, "stale")
		if got := rec.Body.String(); got != "anonymous" {
			t.Errorf("body = %q, want anonymous", got)
		}
	})
}

func TestRequirePlatform(t *testing.T) {
	e := echo.New()
	handler := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }

	run := func(id *identitydomain.Identity) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if id != nil {
			req = req.WithContext(principal.WithIdentity(req.Context(), id))
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := RequirePlatform()(handler)(c); err != nil {
			t.Fatalf("middleware: %v", err)
		}
		return rec
	}

	t.Run("platform passes", func(t *testing.T) {
		rec := run(&identitydomain.Identity{ID: "p1", Kind: identitydomain.UserKindPlatform})
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		rec := run(nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Not authenticated") {
			t.Errorf("body = %q", rec.Body.String())
		}
	})

	t.Run("tenant rejected", func(t *testing.T) {
		rec := run(&identitydomain.Identity{ID: "t1", Kind: identitydomain.UserKindTenant, TenantID: "tid-acme"})
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})
}

func TestRequireTenant(t *testing.T) {
	e := echo.New()
	handler := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(principal.WithIdentity(req.Context(),
		&identitydomain.Identity{ID: "p1", Kind: identitydomain.UserKindPlatform}))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := RequireTenant()(handler)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("platform against tenant guard: status = %d, want 403", rec.Code)
	}
}
