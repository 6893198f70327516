// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the admin user (admin) already exists.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"multitenant-admin/backend/internal/config"
	"multitenant-admin/backend/internal/db"
	platformdomain "multitenant-admin/backend/internal/platformuser/domain"
	platformuserrepo "multitenant-admin/backend/internal/platformuser/repository"
	"multitenant-admin/backend/internal/security"
	tenantdomain "multitenant-admin/backend/internal/tenant/domain"
	tenantrepo "multitenant-admin/backend/internal/tenant/repository"
	tenantuserdomain "multitenant-admin/backend/internal/tenantuser/domain"
	tenantuserrepo "multitenant-admin/backend/internal/tenantuser/repository"
)

const (
	adminUsername = "admin"
	adminEmail    = "admin@example.com"
	adminPassword = "password123"

	devTenantName = "Acme Corp"
	devTenantSlug = "acme"

	devUserEmail    = "dev@acme.test"
	devUserPassword = "password123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	platformUsers := platformuserrepo.NewPostgresRepository(conn)
	existing, err := platformUsers.GetByUsernameOrEmail(ctx, adminUsername)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	if existing != nil {
		log.Printf("seed: %s already exists, nothing to do", adminUsername)
		return
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	hash, err := hasher.Hash(adminPassword)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}

	now := time.Now().UTC()
	admin := &platformdomain.User{
		ID:           uuid.New().String(),
		Username:     adminUsername,
		Email:        adminEmail,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := platformUsers.Create(ctx, admin); err != nil {
		log.Fatalf("seed platform user: %v", err)
	}

	tenants := tenantrepo.NewPostgresRepository(conn)
	tenant := &tenantdomain.Tenant{
		ID:        uuid.New().String(),
		Name:      devTenantName,
		Slug:      devTenantSlug,
		Status:    tenantdomain.StatusActive,
		CreatedBy: admin.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tenants.Create(ctx, tenant); err != nil {
		log.Fatalf("seed tenant: %v", err)
	}

	devHash, err := hasher.Hash(devUserPassword)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	tenantUsers := tenantuserrepo.NewPostgresRepository(conn)
	devUser := &tenantuserdomain.User{
		ID:           uuid.New().String(),
		TenantID:     tenant.ID,
		Email:        devUserEmail,
		PasswordHash: devHash,
		FirstName:    "Dev",
		LastName:     "User",
		Status:       tenantuserdomain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tenantUsers.Create(ctx, devUser); err != nil {
		log.Fatalf("seed tenant user: %v", err)
	}

	log.Printf("seed: created %s / %s and tenant %q with user %s", adminUsername, adminPassword, devTenantSlug, devUserEmail)
}
