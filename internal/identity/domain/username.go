package domain

import (
	"errors"
	"strings"
)

// TenantMarker separates the local part from the tenant slug in a composite
// login identifier, e.g. "bob@example.com@tenant:acme". A plain identifier
// without the marker addresses a platform user.
const TenantMarker = "@tenant:"

// ErrMalformedUsername is returned for identifiers that contain the tenant
// marker but do not split into exactly one non-empty local part and one
// non-empty slug. Callers must not surface it distinctly from a failed
// lookup.
var ErrMalformedUsername = errors.New("malformed login identifier")

// DecodedUsername is the result of parsing a composite login identifier.
// For platform lookups Raw holds the identifier as submitted (username or
// email); for tenant lookups LocalPart and TenantSlug hold the two halves.
type DecodedUsername struct {
	Kind       UserKind
	Raw        string // platform only
	LocalPart  string // tenant only
	TenantSlug string // tenant only
}

// DecodeUsername parses a login identifier. Parsing is purely syntactic:
// no marker means a platform lookup; exactly one marker with non-empty
// halves means a tenant lookup; anything else is malformed.
func DecodeUsername(identifier string) (DecodedUsername, error) {
	switch strings.Count(identifier, TenantMarker) {
	case 0:
		return DecodedUsername{Kind: UserKindPlatform, Raw: identifier}, nil
	case 1:
		local, slug, _ := strings.Cut(identifier, TenantMarker)
		if local == "" || slug == "" {
			return DecodedUsername{}, ErrMalformedUsername
		}
		return DecodedUsername{Kind: UserKindTenant, LocalPart: local, TenantSlug: slug}, nil
	default:
		return DecodedUsername{}, ErrMalformedUsername
	}
}

// EncodeTenantUsername builds the composite identifier for a tenant login.
// DecodeUsername(EncodeTenantUsername(a, b)) yields the tenant form (a, b)
// whenever a is non-empty and marker-free and b is non-empty.
func EncodeTenantUsername(localPart, tenantSlug string) string {
	return localPart + TenantMarker + tenantSlug
}
