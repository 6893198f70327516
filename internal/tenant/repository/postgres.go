package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"multitenant-admin/backend/internal/tenant/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a tenant repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const tenantColumns = `id, name, slug, status, created_by, created_date, last_modified_by, last_modified_date`

// GetByID returns the tenant for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
	return scanTenant(row)
}

// GetBySlug returns the tenant with the given slug, or nil if not found.
func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE slug = $1`, slug)
	return scanTenant(row)
}

// List returns all tenants ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]*domain.Tenant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants ORDER BY created_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTenants(rows)
}

// ListByStatus returns tenants with the given status ordered by creation time.
func (r *PostgresRepository) ListByStatus(ctx context.Context, status string) ([]*domain.Tenant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE status = $1 ORDER BY created_date`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTenants(rows)
}

// ExistsBySlug reports whether a tenant with the given slug exists.
func (r *PostgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM tenants WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

// Create persists the tenant to the database. The tenant must have ID set; it is not assigned by this method.
func (r *PostgresRepository) Create(ctx context.Context, t *domain.Tenant) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tenants (id, name, slug, status, created_by, created_date, last_modified_by, last_modified_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.Name, t.Slug, t.Status, nullable(t.CreatedBy), t.CreatedAt, nullable(t.UpdatedBy), t.UpdatedAt)
	return err
}

// Update sets name, status, and the modifying user. Returns the updated
// tenant, or nil when no row matched.
func (r *PostgresRepository) Update(ctx context.Context, id, name, status, updatedBy string) (*domain.Tenant, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE tenants SET name = $2, status = $3, last_modified_by = $4, last_modified_date = $5
		 WHERE id = $1
		 RETURNING `+tenantColumns, id, name, status, nullable(updatedBy), time.Now().UTC())
	return scanTenant(row)
}

// Delete removes the tenant and reports whether a row was deleted.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTenantFrom(s rowScanner) (*domain.Tenant, error) {
	var t domain.Tenant
	var createdBy, updatedBy sql.NullString
	err := s.Scan(&t.ID, &t.Name, &t.Slug, &t.Status, &createdBy, &t.CreatedAt, &updatedBy, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.CreatedBy = createdBy.String
	t.UpdatedBy = updatedBy.String
	return &t, nil
}

func scanTenant(row *sql.Row) (*domain.Tenant, error) {
	t, err := scanTenantFrom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func collectTenants(rows *sql.Rows) ([]*domain.Tenant, error) {
	var out []*domain.Tenant
	for rows.Next() {
		t, err := scanTenantFrom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
