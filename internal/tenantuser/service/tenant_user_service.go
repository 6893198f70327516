package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"multitenant-admin/backend/internal/security"
	tenantdomain "multitenant-admin/backend/internal/tenant/domain"
	"multitenant-admin/backend/internal/tenantuser/domain"
)

// Sentinel errors for the tenant user service; the handler maps them to HTTP status codes.
var (
	ErrUserNotFound      = errors.New("tenant user not found")
	ErrUserAlreadyExists = errors.New("tenant user with this email already exists")
	ErrTenantNotFound    = errors.New("tenant not found")
)

// UserRepo is the minimal tenant user repository needed by the service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	CountByTenant(ctx context.Context, tenantID string) (int64, error)
	Create(ctx context.Context, u *domain.User) error
	UpdateName(ctx context.Context, id, firstName, lastName string) (*domain.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// TenantRepo is the minimal tenant repository needed by the service.
type TenantRepo interface {
	GetByID(ctx context.Context, id string) (*tenantdomain.Tenant, error)
}

// TenantUserService implements tenant user administration for platform operators.
type TenantUserService struct {
	userRepo   UserRepo
	tenantRepo TenantRepo
	hasher     *security.Hasher
}

// NewTenantUserService returns a TenantUserService with the given dependencies.
func NewTenantUserService(userRepo UserRepo, tenantRepo TenantRepo, hasher *security.Hasher) *TenantUserService {
	return &TenantUserService{userRepo: userRepo, tenantRepo: tenantRepo, hasher: hasher}
}

// Create creates a user in the given tenant. The tenant must exist and the
// email must be unused; the password is bcrypt-hashed before persistence.
func (s *TenantUserService) Create(ctx context.Context, tenantID, email, password, firstName, lastName string) (*domain.User, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID returns the user for id or ErrUserNotFound.
func (s *TenantUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// ListByTenant returns the users of the given tenant. The tenant must exist.
func (s *TenantUserService) ListByTenant(ctx context.Context, tenantID string) ([]*domain.User, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}
	return s.userRepo.ListByTenant(ctx, tenantID)
}

// List returns all tenant users across tenants.
func (s *TenantUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

// UpdateName applies a partial name update: empty fields keep current values.
func (s *TenantUserService) UpdateName(ctx context.Context, id, firstName, lastName string) (*domain.User, error) {
	current, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrUserNotFound
	}
	if firstName == "" {
		firstName = current.FirstName
	}
	if lastName == "" {
		lastName = current.LastName
	}
	updated, err := s.userRepo.UpdateName(ctx, id, firstName, lastName)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}
	return updated, nil
}

// Delete removes the user or returns ErrUserNotFound.
func (s *TenantUserService) Delete(ctx context.Context, id string) error {
	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}

// CountByTenant returns the number of users in the given tenant.
func (s *TenantUserService) CountByTenant(ctx context.Context, tenantID string) (int64, error) {
	return s.userRepo.CountByTenant(ctx, tenantID)
}
