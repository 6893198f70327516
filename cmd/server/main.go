package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"multitenant-admin/backend/internal/audit"
	auditrepo "multitenant-admin/backend/internal/audit/repository"
	"multitenant-admin/backend/internal/config"
	"multitenant-admin/backend/internal/db"
	healthhandler "multitenant-admin/backend/internal/health/handler"
	identityhandler "multitenant-admin/backend/internal/identity/handler"
	identityservice "multitenant-admin/backend/internal/identity/service"
	"multitenant-admin/backend/internal/logging"
	platformuserrepo "multitenant-admin/backend/internal/platformuser/repository"
	"multitenant-admin/backend/internal/security"
	"multitenant-admin/backend/internal/server"
	sessionrepo "multitenant-admin/backend/internal/session/repository"
	sessionservice "multitenant-admin/backend/internal/session/service"
	tenanthandler "multitenant-admin/backend/internal/tenant/handler"
	tenantrepo "multitenant-admin/backend/internal/tenant/repository"
	tenantservice "multitenant-admin/backend/internal/tenant/service"
	tenantuserhandler "multitenant-admin/backend/internal/tenantuser/handler"
	tenantuserrepo "multitenant-admin/backend/internal/tenantuser/repository"
	tenantuserservice "multitenant-admin/backend/internal/tenantuser/service"
	"multitenant-admin/backend/internal/telemetry/otel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Env, cfg.LogLevel)

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, server.ServiceName, cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = providers.Shutdown(shutdownCtx)
	}()

	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewSessionTokens([]byte(cfg.SessionSecret), server.ServiceName, cfg.SessionTTL())

	platformUsers := platformuserrepo.NewPostgresRepository(conn)
	tenants := tenantrepo.NewPostgresRepository(conn)
	tenantUsers := tenantuserrepo.NewPostgresRepository(conn)
	sessions := sessionrepo.NewPostgresRepository(conn)

	auditLog := audit.NewLogger(auditrepo.NewPostgresRepository(conn), logger).
		WithEmitter(otel.NewAuditEmitter(providers.LoggerProvider))

	auth := identityservice.NewAuthService(platformUsers, tenantUsers, hasher)
	binder := sessionservice.NewBinder(sessions, platformUsers, tenantUsers, tokens, cfg.SessionTTL())

	e := server.New(server.Deps{
		Auth:        identityhandler.NewAuthHandler(auth, binder, auditLog, logger, cfg.SessionCookieName, cfg.SessionTTL()),
		Tenants:     tenanthandler.NewTenantHandler(tenantservice.NewTenantService(tenants), auditLog, logger),
		TenantUsers: tenantuserhandler.NewTenantUserHandler(tenantuserservice.NewTenantUserService(tenantUsers, tenants, hasher), binder, auditLog, logger),
		Health:      healthhandler.NewHealthHandler(conn),
		Sessions:    binder,
		CookieName:  cfg.SessionCookieName,
		Log:         logger,
	})

	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("http server stopped")
}
