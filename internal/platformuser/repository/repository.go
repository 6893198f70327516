package repository

import (
	"context"

	"multitenant-admin/backend/internal/platformuser/domain"
)

// Repository defines persistence for platform users.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByUsernameOrEmail resolves a raw login identifier against both the
	// username and email columns, matching the single-field login form.
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}
