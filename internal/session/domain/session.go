package domain

import (
	"time"

	identitydomain "multitenant-admin/backend/internal/identity/domain"
)

// Session is a server-side login session. The cookie token carries only the
// session ID; everything else lives in this row and the identity is rebuilt
// from the user stores on every request.
type Session struct {
	ID        string
	UserID    string
	UserKind  identitydomain.UserKind
	TenantID  string // set iff UserKind is tenant
	IPAddress string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Live reports whether the session is usable at the given instant.
func (s *Session) Live(now time.Time) bool {
	if s.RevokedAt != nil {
		return false
	}
	return now.Before(s.ExpiresAt)
}
