package repository

import (
	"context"
	"database/sql"

	"multitenant-admin/backend/internal/audit/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an audit repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const auditColumns = `id, tenant_id, user_id, action, resource, ip_address, metadata, created_at`

// Create inserts the audit entry.
func (r *PostgresRepository) Create(ctx context.Context, l *domain.Log) error {
	var userID, metadata sql.NullString
	if l.UserID != "" {
		userID = sql.NullString{String: l.UserID, Valid: true}
	}
	if l.Metadata != "" {
		metadata = sql.NullString{String: l.Metadata, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (`+auditColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.ID, l.TenantID, userID, l.Action, l.Resource, l.IPAddress, metadata, l.CreatedAt)
	return err
}

// ListByTenant returns the newest entries for a tenant, up to limit.
func (r *PostgresRepository) ListByTenant(ctx context.Context, tenantID string, limit int) ([]*domain.Log, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+auditColumns+` FROM audit_logs WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2`,
		tenantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Log
	for rows.Next() {
		var l domain.Log
		var userID, metadata sql.NullString
		if err := rows.Scan(&l.ID, &l.TenantID, &userID, &l.Action, &l.Resource, &l.IPAddress, &metadata, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.UserID = userID.String
		l.Metadata = metadata.String
		out = append(out, &l)
	}
	return out, rows.Err()
}
