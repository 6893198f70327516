package domain

import (
	"errors"
	"time"
)

// StatusActive is the canonical active tenant status. Status is stored as
// free text and compared case-insensitively where it gates behavior.
const StatusActive = "ACTIVE"

// Tenant represents a customer tenant addressed by its unique slug.
type Tenant struct {
	ID        string
	Name      string
	Slug      string
	Status    string
	CreatedBy string // platform user id of the creator
	CreatedAt time.Time
	UpdatedBy string
	UpdatedAt time.Time
}

// Validate validates the tenant for persistence. Returns an error describing the first validation failure.
func (t *Tenant) Validate() error {
	if t.Name == "" {
		return errors.New("name is required")
	}
	if t.Slug == "" {
		return errors.New("slug is required")
	}
	if t.Status == "" {
		t.Status = StatusActive
	}
	return nil
}
