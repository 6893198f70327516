package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"multitenant-admin/backend/internal/tenant/domain"
)

// Sentinel errors for the tenant service; the handler maps them to HTTP status codes.
var (
	ErrTenantNotFound      = errors.New("tenant not found")
	ErrTenantAlreadyExists = errors.New("tenant with this slug already exists")
)

// Repo is the minimal tenant repository needed by the tenant service.
type Repo interface {
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	List(ctx context.Context) ([]*domain.Tenant, error)
	ListByStatus(ctx context.Context, status string) ([]*domain.Tenant, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, t *domain.Tenant) error
	Update(ctx context.Context, id, name, status, updatedBy string) (*domain.Tenant, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// TenantService implements tenant administration for platform operators.
type TenantService struct {
	repo Repo
}

// NewTenantService returns a TenantService backed by the given repository.
func NewTenantService(repo Repo) *TenantService {
	return &TenantService{repo: repo}
}

// Create creates a tenant with a unique slug. createdBy is the acting
// platform user's id, recorded on the row.
func (s *TenantService) Create(ctx context.Context, name, slug, status, createdBy string) (*domain.Tenant, error) {
	exists, err := s.repo.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrTenantAlreadyExists
	}
	now := time.Now().UTC()
	t := &domain.Tenant{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug,
		Status:    status,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedBy: createdBy,
		UpdatedAt: now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetByID returns the tenant for id or ErrTenantNotFound.
func (s *TenantService) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTenantNotFound
	}
	return t, nil
}

// GetBySlug returns the tenant for slug or ErrTenantNotFound.
func (s *TenantService) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	t, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTenantNotFound
	}
	return t, nil
}

// List returns all tenants, or only those with the given status when status is non-empty.
func (s *TenantService) List(ctx context.Context, status string) ([]*domain.Tenant, error) {
	if status != "" {
		return s.repo.ListByStatus(ctx, status)
	}
	return s.repo.List(ctx)
}

// Update applies a partial update: empty name or status keeps the current value.
// updatedBy is the acting platform user's id.
func (s *TenantService) Update(ctx context.Context, id, name, status, updatedBy string) (*domain.Tenant, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrTenantNotFound
	}
	if name == "" {
		name = current.Name
	}
	if status == "" {
		status = current.Status
	}
	updated, err := s.repo.Update(ctx, id, name, status, updatedBy)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrTenantNotFound
	}
	return updated, nil
}

// Delete removes the tenant or returns ErrTenantNotFound.
func (s *TenantService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTenantNotFound
	}
	return nil
}
