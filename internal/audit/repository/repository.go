package repository

import (
	"context"

	"multitenant-admin/backend/internal/audit/domain"
)

// Repository defines persistence for audit log entries.
type Repository interface {
	Create(ctx context.Context, l *domain.Log) error
	// ListByTenant returns the newest entries for a tenant, up to limit.
	ListByTenant(ctx context.Context, tenantID string, limit int) ([]*domain.Log, error)
}
