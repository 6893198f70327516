package service

import (
	"context"
	"errors"

	"multitenant-admin/backend/internal/identity/domain"
	platformdomain "multitenant-admin/backend/internal/platformuser/domain"
	"multitenant-admin/backend/internal/security"
	tenantuserdomain "multitenant-admin/backend/internal/tenantuser/domain"
)

var (
	// ErrPrincipalNotFound is returned by Resolve when the identifier does
	// not map to any stored user, including malformed composite identifiers.
	ErrPrincipalNotFound = errors.New("principal not found")
	// ErrInvalidCredentials is the single failure Authenticate reports.
	// Unknown user, wrong password and disabled account all collapse into
	// it so callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// PlatformUserRepo is the platform user lookup needed by the resolver.
type PlatformUserRepo interface {
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*platformdomain.User, error)
}

// TenantUserRepo is the tenant user lookup needed by the resolver.
type TenantUserRepo interface {
	GetByEmailAndTenantSlug(ctx context.Context, email, slug string) (*tenantuserdomain.User, error)
}

// AuthService resolves login identifiers to identities and verifies
// credentials. The identifier encoding decides which store is consulted;
// a tenant identifier never falls back to the platform store and vice versa.
type AuthService struct {
	platformUsers PlatformUserRepo
	tenantUsers   TenantUserRepo
	hasher        *security.Hasher
}

// NewAuthService returns an AuthService backed by the given user stores.
func NewAuthService(platformUsers PlatformUserRepo, tenantUsers TenantUserRepo, hasher *security.Hasher) *AuthService {
	return &AuthService{platformUsers: platformUsers, tenantUsers: tenantUsers, hasher: hasher}
}

// Resolve maps a login identifier to the identity it denotes. Disabled
// accounts resolve normally with Enabled false; only a missing or malformed
// identifier yields ErrPrincipalNotFound.
func (s *AuthService) Resolve(ctx context.Context, identifier string) (*domain.Identity, error) {
	decoded, err := domain.DecodeUsername(identifier)
	if err != nil {
		return nil, ErrPrincipalNotFound
	}

	switch decoded.Kind {
	case domain.UserKindTenant:
		u, err := s.tenantUsers.GetByEmailAndTenantSlug(ctx, decoded.LocalPart, decoded.TenantSlug)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, ErrPrincipalNotFound
		}
		return &domain.Identity{
			ID:           u.ID,
			Username:     u.Email,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			Kind:         domain.UserKindTenant,
			TenantID:     u.TenantID,
			Enabled:      u.Active(),
		}, nil
	default:
		u, err := s.platformUsers.GetByUsernameOrEmail(ctx, decoded.Raw)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, ErrPrincipalNotFound
		}
		return &domain.Identity{
			ID:           u.ID,
			Username:     u.Username,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			Kind:         domain.UserKindPlatform,
			Enabled:      u.IsActive,
		}, nil
	}
}

// Authenticate resolves the identifier and verifies the password. Every
// failure mode except a store error returns ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (*domain.Identity, error) {
	id, err := s.Resolve(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(password, id.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !id.Enabled {
		return nil, ErrInvalidCredentials
	}
	return id, nil
}
