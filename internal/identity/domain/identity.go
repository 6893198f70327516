package domain

import "errors"

// UserKind discriminates the two principal kinds that share the login surface.
type UserKind string

const (
	// UserKindPlatform is the platform-wide operator kind, never tenant-scoped.
	UserKindPlatform UserKind = "PLATFORM"
	// UserKindTenant is a principal scoped to exactly one tenant.
	UserKindTenant UserKind = "TENANT"
)

// Narrowing errors returned by the principal constructors.
var (
	ErrNotPlatformUser  = errors.New("identity is not a platform user")
	ErrNotTenantUser    = errors.New("identity is not a tenant user")
	ErrMissingTenantID  = errors.New("tenant identity has no tenant id")
	ErrUnexpectedTenant = errors.New("platform identity carries a tenant id")
)

// Identity is the canonical authenticated principal produced by the resolver.
// Kind is the discriminant: TenantID must be set when Kind is tenant and must
// be empty when Kind is platform. PasswordHash never leaves the auth layer.
type Identity struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Kind         UserKind
	TenantID     string // set iff Kind == UserKindTenant
	Enabled      bool
}

// Validate checks the kind/tenant-id invariant. Identities built by the
// resolver always pass; the check guards hand-constructed values.
func (i *Identity) Validate() error {
	switch i.Kind {
	case UserKindPlatform:
		if i.TenantID != "" {
			return ErrUnexpectedTenant
		}
	case UserKindTenant:
		if i.TenantID == "" {
			return ErrMissingTenantID
		}
	default:
		return errors.New("unknown user kind")
	}
	return nil
}

// PlatformPrincipal is the read-only view of a platform identity handed to
// platform-only handlers. It carries no secret material and no enabled flag.
type PlatformPrincipal struct {
	ID       string
	Username string
	Email    string
}

// TenantPrincipal is the read-only view of a tenant identity handed to
// tenant-only handlers.
type TenantPrincipal struct {
	ID       string
	TenantID string
	Username string
	Email    string
}

// NewPlatformPrincipal narrows an Identity to the platform view. The kind tag
// must match; a tenant identity is rejected, never coerced.
func NewPlatformPrincipal(id *Identity) (PlatformPrincipal, error) {
	if id.Kind != UserKindPlatform {
		return PlatformPrincipal{}, ErrNotPlatformUser
	}
	if id.TenantID != "" {
		return PlatformPrincipal{}, ErrUnexpectedTenant
	}
	return PlatformPrincipal{ID: id.ID, Username: id.Username, Email: id.Email}, nil
}

// NewTenantPrincipal narrows an Identity to the tenant view. Both the kind
// tag and the tenant-id invariant are enforced.
func NewTenantPrincipal(id *Identity) (TenantPrincipal, error) {
	if id.Kind != UserKindTenant {
		return TenantPrincipal{}, ErrNotTenantUser
	}
	if id.TenantID == "" {
		return TenantPrincipal{}, ErrMissingTenantID
	}
	return TenantPrincipal{ID: id.ID, TenantID: id.TenantID, Username: id.Username, Email: id.Email}, nil
}
