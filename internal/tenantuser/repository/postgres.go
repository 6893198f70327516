package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"multitenant-admin/backend/internal/tenantuser/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a tenant user repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, tenant_id, email, password_hash, first_name, last_name, status, created_date, last_modified_date`

// GetByID returns the tenant user for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM tenant_users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail returns the tenant user with the given email, or nil if not found.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM tenant_users WHERE email = $1`, email)
	return scanUser(row)
}

// GetByEmailAndTenantSlug returns the tenant user with the given email in the
// tenant identified by slug, or nil when either the tenant or the user is
// missing. The join makes tenant existence a precondition of the match.
func (r *PostgresRepository) GetByEmailAndTenantSlug(ctx context.Context, email, slug string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT u.id, u.tenant_id, u.email, u.password_hash, u.first_name, u.last_name, u.status, u.created_date, u.last_modified_date
		 FROM tenant_users u
		 JOIN tenants t ON u.tenant_id = t.id
		 WHERE u.email = $1 AND t.slug = $2`, email, slug)
	return scanUser(row)
}

// ListByTenant returns all users of the given tenant ordered by creation time.
func (r *PostgresRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM tenant_users WHERE tenant_id = $1 ORDER BY created_date`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// List returns all tenant users ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM tenant_users ORDER BY created_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// CountByTenant returns the number of users in the given tenant.
func (r *PostgresRepository) CountByTenant(ctx context.Context, tenantID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tenant_users WHERE tenant_id = $1`, tenantID).Scan(&n)
	return n, err
}

// Create persists the user to the database. The user must have ID set; it is not assigned by this method.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tenant_users (id, tenant_id, email, password_hash, first_name, last_name, status, created_date, last_modified_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.TenantID, u.Email, u.PasswordHash,
		nullable(u.FirstName), nullable(u.LastName), u.Status, u.CreatedAt, u.UpdatedAt)
	return err
}

// UpdateName sets first and last name. Returns the updated user, or nil when no row matched.
func (r *PostgresRepository) UpdateName(ctx context.Context, id, firstName, lastName string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE tenant_users SET first_name = $2, last_name = $3, last_modified_date = $4
		 WHERE id = $1
		 RETURNING `+userColumns, id, nullable(firstName), nullable(lastName), time.Now().UTC())
	return scanUser(row)
}

// Delete removes the user and reports whether a row was deleted.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tenant_users WHERE id = $1`, id)
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

func scanUserFrom(s rowScanner) (*domain.User, error) {
	var u domain.User
	var first, last sql.NullString
	err := s.Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &first, &last, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.FirstName = first.String
	u.LastName = last.String
	return &u, nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	u, err := scanUserFrom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func collectUsers(rows *sql.Rows) ([]*domain.User, error) {
	var out []*domain.User
	for rows.Next() {
		u, err := scanUserFrom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
