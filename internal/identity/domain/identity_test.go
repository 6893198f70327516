package domain

import "testing"

func platformIdentity() *Identity {
	return &Identity{
		ID:       "u1",
		Username: "admin",
		Email:    "admin@example.com",
		Kind:     UserKindPlatform,
		Enabled:  true,
	}
}

func tenantIdentity() *Identity {
	return &Identity{
		ID:       "tu1",
		Username: "bob@x.com",
		Email:    "bob@x.com",
		Kind:     UserKindTenant,
		TenantID: "t1",
		Enabled:  true,
	}
}

func TestIdentityValidate(t *testing.T) {
	if err := platformIdentity().Validate(); err != nil {
		t.Errorf("platform identity: %v", err)
	}
	if err := tenantIdentity().Validate(); err != nil {
		t.Errorf("tenant identity: %v", err)
	}

	bad := tenantIdentity()
	bad.TenantID = ""
	if err := bad.Validate(); err != ErrMissingTenantID {
		t.Errorf("tenant without tenant id: err = %v, want ErrMissingTenantID", err)
	}

	bad = platformIdentity()
	bad.TenantID = "t1"
	if err := bad.Validate(); err != ErrUnexpectedTenant {
		t.Errorf("platform with tenant id: err = %v, want ErrUnexpectedTenant", err)
	}
}

func TestNewPlatformPrincipal(t *testing.T) {
	p, err := NewPlatformPrincipal(platformIdentity())
	if err != nil {
		t.Fatalf("NewPlatformPrincipal: %v", err)
	}
	if p.ID != "u1" || p.Username != "admin" || p.Email != "admin@example.com" {
		t.Errorf("unexpected projection: %+v", p)
	}

	if _, err := NewPlatformPrincipal(tenantIdentity()); err != ErrNotPlatformUser {
		t.Errorf("tenant identity: err = %v, want ErrNotPlatformUser", err)
	}
}

func TestNewTenantPrincipal(t *testing.T) {
	p, err := NewTenantPrincipal(tenantIdentity())
	if err != nil {
		t.Fatalf("NewTenantPrincipal: %v", err)
	}
	if p.ID != "tu1" || p.TenantID != "t1" {
		t.Errorf("unexpected projection: %+v", p)
	}

	if _, err := NewTenantPrincipal(platformIdentity()); err != ErrNotTenantUser {
		t.Errorf("platform identity: err = %v, want ErrNotTenantUser", err)
	}

	broken := tenantIdentity()
	broken.TenantID = ""
	if _, err := NewTenantPrincipal(broken); err != ErrMissingTenantID {
		t.Errorf("missing tenant id: err = %v, want ErrMissingTenantID", err)
	}
}
