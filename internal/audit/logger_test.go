package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"multitenant-admin/backend/internal/audit/domain"
)

type memAuditRepo struct {
	entries []*domain.Log
	fail    error
}

func (r *memAuditRepo) Create(ctx context.Context, l *domain.Log) error {
	if r.fail != nil {
		return r.fail
	}
	r.entries = append(r.entries, l)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLogger_Record(t *testing.T) {
	repo := &memAuditRepo{}
	l := NewLogger(repo, discardLogger())

	l.Record(context.Background(), Event{
		TenantID: "tid-acme",
		UserID:   "u1",
		Action:   "tenant_user.create",
		Resource: "tenant_users/u2",
	})

	if len(repo.entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(repo.entries))
	}
	e := repo.entries[0]
	if e.ID == "" || e.CreatedAt.IsZero() {
		t.Errorf("entry missing id or timestamp: %+v", e)
	}
	if e.TenantID != "tid-acme" {
		t.Errorf("TenantID = %q", e.TenantID)
	}
}

func TestLogger_RecordDefaultsToSystemTenant(t *testing.T) {
	repo := &memAuditRepo{}
	l := NewLogger(repo, discardLogger())

	l.Record(context.Background(), Event{Action: "platform.login", Resource: "sessions"})

	if repo.entries[0].TenantID != domain.SystemTenantID {
		t.Errorf("TenantID = %q, want %q", repo.entries[0].TenantID, domain.SystemTenantID)
	}
}

func TestLogger_RecordSwallowsStorageFailure(t *testing.T) {
	repo := &memAuditRepo{fail: errors.New("db down")}
	l := NewLogger(repo, discardLogger())

	// Must not panic or propagate the error.
	l.Record(context.Background(), Event{Action: "tenant.create", Resource: "tenants"})
}
