// Package principal carries the authenticated identity through a request's
// context and narrows it to a typed principal at the point of use. Handlers
// that serve only one kind of user call RequirePlatform or RequireTenant and
// get a principal that cannot be of the wrong kind.
package principal

import (
	"context"
	"errors"

	"multitenant-admin/backend/internal/identity/domain"
)

type contextKey struct{}

var identityKey contextKey

var (
	// ErrUnauthenticated means no identity is attached to the context.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrWrongKind means an identity is attached but its kind does not
	// match what the caller requires.
	ErrWrongKind = errors.New("wrong principal kind")
)

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, id *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Current returns the identity attached to the context, or nil.
func Current(ctx context.Context) *domain.Identity {
	id, _ := ctx.Value(identityKey).(*domain.Identity)
	return id
}

// RequirePlatform narrows the ambient identity to a platform principal.
func RequirePlatform(ctx context.Context) (domain.PlatformPrincipal, error) {
	id := Current(ctx)
	if id == nil {
		return domain.PlatformPrincipal{}, ErrUnauthenticated
	}
	p, err := domain.NewPlatformPrincipal(id)
	if err != nil {
		return domain.PlatformPrincipal{}, ErrWrongKind
	}
	return p, nil
}

// RequireTenant narrows the ambient identity to a tenant principal.
func RequireTenant(ctx context.Context) (domain.TenantPrincipal, error) {
	id := Current(ctx)
	if id == nil {
		return domain.TenantPrincipal{}, ErrUnauthenticated
	}
	p, err := domain.NewTenantPrincipal(id)
	if err != nil {
		return domain.TenantPrincipal{}, ErrWrongKind
	}
	return p, nil
}
