package domain

import (
	"errors"
	"strings"
	"time"
)

// StatusActive is the canonical active value of the tenant user status
// column. Unlike platform users (boolean is_active), tenant users carry a
// free-text status that is compared case-insensitively; the two encodings
// are kept distinct on purpose.
const StatusActive = "ACTIVE"

// User is a tenant-scoped account. Tenant users authenticate with their
// email plus the tenant slug and belong to exactly one tenant.
type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active reports whether the user's status counts as active. The comparison
// is case-insensitive, matching how the status column is written by hand in
// practice ("active", "Active", "ACTIVE").
func (u *User) Active() bool {
	return strings.EqualFold(u.Status, StatusActive)
}

// Validate validates the user for persistence. Returns an error describing the first validation failure.
func (u *User) Validate() error {
	if u.TenantID == "" {
		return errors.New("tenant id is required")
	}
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	return nil
}
