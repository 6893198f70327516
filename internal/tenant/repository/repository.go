package repository

import (
	"context"

	"multitenant-admin/backend/internal/tenant/domain"
)

// Repository defines persistence for tenants.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	List(ctx context.Context) ([]*domain.Tenant, error)
	ListByStatus(ctx context.Context, status string) ([]*domain.Tenant, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, t *domain.Tenant) error
	// Update sets name, status, and the modifying user; returns the updated
	// tenant or nil when no row matched.
	Update(ctx context.Context, id, name, status, updatedBy string) (*domain.Tenant, error)
	// Delete removes the tenant and reports whether a row was deleted.
	Delete(ctx context.Context, id string) (bool, error)
}
