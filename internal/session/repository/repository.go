package repository

import (
	"context"

	"multitenant-admin/backend/internal/session/domain"
)

// Repository defines persistence for login sessions.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	Create(ctx context.Context, s *domain.Session) error
	// Revoke stamps revoked_at on the session if it is not revoked yet and
	// reports whether a row changed.
	Revoke(ctx context.Context, id string) (bool, error)
	// RevokeAllByUser revokes every live session of the user and returns
	// the count.
	RevokeAllByUser(ctx context.Context, userID string) (int64, error)
	// DeleteExpired removes sessions past their expiry and returns the count.
	DeleteExpired(ctx context.Context) (int64, error)
}
