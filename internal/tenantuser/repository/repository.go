package repository

import (
	"context"

	"multitenant-admin/backend/internal/tenantuser/domain"
)

// Repository defines persistence for tenant users.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByEmailAndTenantSlug resolves a tenant login: the lookup joins
	// through tenants on slug, so a missing tenant yields no match.
	GetByEmailAndTenantSlug(ctx context.Context, email, slug string) (*domain.User, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	CountByTenant(ctx context.Context, tenantID string) (int64, error)
	Create(ctx context.Context, u *domain.User) error
	// UpdateName sets first and last name; returns the updated user or nil
	// when no row matched.
	UpdateName(ctx context.Context, id, firstName, lastName string) (*domain.User, error)
	// Delete removes the user and reports whether a row was deleted.
	Delete(ctx context.Context, id string) (bool, error)
}
