package service

import (
	"context"
	"sync"
	"testing"

	"multitenant-admin/backend/internal/security"
	tenantdomain "multitenant-admin/backend/internal/tenant/domain"
	"multitenant-admin/backend/internal/tenantuser/domain"
)

type memUserRepo struct {
	mu sync.Mutex
	m  map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{m: map[string]*domain.User{}}
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m[id], nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.m {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) ListByTenant(ctx context.Context, tenantID string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.m {
		if u.TenantID == tenantID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.m))
	for _, u := range r.m {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) CountByTenant(ctx context.Context, tenantID string) (int64, error) {
	users, _ := r.ListByTenant(ctx, tenantID)
	return int64(len(users)), nil
}

func (r *memUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u2 := *u
	r.m[u.ID] = &u2
	return nil
}

func (r *memUserRepo) UpdateName(ctx context.Context, id, firstName, lastName string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.m[id]
	if !ok {
		return nil, nil
	}
	u.FirstName = firstName
	u.LastName = lastName
	return u, nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[id]; !ok {
		return false, nil
	}
	delete(r.m, id)
	return true, nil
}

type memTenantRepo struct {
	mu sync.Mutex
	m  map[string]*tenantdomain.Tenant
}

func (r *memTenantRepo) GetByID(ctx context.Context, id string) (*tenantdomain.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m[id], nil
}

func newTestService() (*TenantUserService, *memUserRepo) {
	users := newMemUserRepo()
	tenants := &memTenantRepo{m: map[string]*tenantdomain.Tenant{
		"t1": {ID: "t1", Name: "Acme Corp", Slug: "acme", Status: tenantdomain.StatusActive},
	}}
	return NewTenantUserService(users, tenants, security.NewHasher(4)), users
}

func TestTenantUserService_Create(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Create(ctx, "t1", "bob@x.com", "secret123", "Bob", "Smith")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.TenantID != "t1" || u.Email != "bob@x.com" {
		t.Errorf("unexpected user: %+v", u)
	}
	if u.Status != domain.StatusActive {
		t.Errorf("Status = %q, want ACTIVE", u.Status)
	}
	if u.PasswordHash == "" || u.PasswordHash == "secret123" {
		t.Error("password must be stored hashed")
	}

	if _, err := svc.Create(ctx, "t1", "bob@x.com", "other", "", ""); err != ErrUserAlreadyExists {
		t.Errorf("duplicate email: err = %v, want ErrUserAlreadyExists", err)
	}
	if _, err := svc.Create(ctx, "missing", "new@x.com", "secret", "", ""); err != ErrTenantNotFound {
		t.Errorf("missing tenant: err = %v, want ErrTenantNotFound", err)
	}
}

func TestTenantUserService_ListByTenant(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, _ = svc.Create(ctx, "t1", "a@x.com", "secret", "", "")
	_, _ = svc.Create(ctx, "t1", "b@x.com", "secret", "", "")

	users, err := svc.ListByTenant(ctx, "t1")
	if err != nil {
		t.Fatalf("ListByTenant: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("got %d users, want 2", len(users))
	}

	if _, err := svc.ListByTenant(ctx, "missing"); err != ErrTenantNotFound {
		t.Errorf("missing tenant: err = %v, want ErrTenantNotFound", err)
	}

	n, err := svc.CountByTenant(ctx, "t1")
	if err != nil {
		t.Fatalf("CountByTenant: %v", err)
	}
	if n != 2 {
		t.Errorf("CountByTenant = %d, want 2", n)
	}
}

func TestTenantUserService_UpdateName(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	u, _ := svc.Create(ctx, "t1", "bob@x.com", "secret", "Bob", "Smith")

	updated, err := svc.UpdateName(ctx, u.ID, "Robert", "")
	if err != nil {
		t.Fatalf("UpdateName: %v", err)
	}
	if updated.FirstName != "Robert" {
		t.Errorf("FirstName = %q, want Robert", updated.FirstName)
	}
	if updated.LastName != "Smith" {
		t.Errorf("empty last name should keep current, got %q", updated.LastName)
	}

	if _, err := svc.UpdateName(ctx, "missing", "X", "Y"); err != ErrUserNotFound {
		t.Errorf("missing user: err = %v, want ErrUserNotFound", err)
	}
}

func TestTenantUserService_Delete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	u, _ := svc.Create(ctx, "t1", "bob@x.com", "secret", "", "")

	if err := svc.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, u.ID); err != ErrUserNotFound {
		t.Errorf("second Delete: err = %v, want ErrUserNotFound", err)
	}
	if _, err := svc.GetByID(ctx, u.ID); err != ErrUserNotFound {
		t.Errorf("GetByID after delete: err = %v, want ErrUserNotFound", err)
	}
}
