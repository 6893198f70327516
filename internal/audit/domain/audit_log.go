package domain

import "time"

// SystemTenantID marks audit entries that are not scoped to a tenant, such
// as platform operator actions and platform logins.
const SystemTenantID = "_system"

// Log is one recorded action. Metadata is a free-form JSON string.
type Log struct {
	ID        string
	TenantID  string
	UserID    string
	Action    string
	Resource  string
	IPAddress string
	Metadata  string
	CreatedAt time.Time
}
