package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hr-platform/internal/audit"
	"hr-platform/internal/auth"
	"hr-platform/internal/config"
	"hr-platform/internal/dashboard"
	"hr-platform/internal/departments"
	"hr-platform/internal/employees"
	"hr-platform/internal/httpapi"
	"hr-platform/internal/obs"
	"hr-platform/internal/rbac"
	"hr-platform/internal/requests"
	"hr-platform/pkg/logger"
	"hr-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Missing .env is fine; real deployments inject env directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	obs.Init()

	tokens, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	store := auth.NewPostgresStore(db)
	var authOpts []auth.ServiceOption
	if cfg.Auth.IdentityCacheTTL > 0 {
		cache := auth.NewRedisIdentityCache(rdb, cfg.Auth.IdentityCacheTTL)
		authOpts = append(authOpts, auth.WithIdentityCache(cache))
	}
	authSvc := auth.NewService(store, tokens, cfg.Auth.RefreshGrace, authOpts...)

	if err := auth.EnsureAdmin(rootCtx, store, cfg.Bootstrap, rbac.RoleAdmin, log); err != nil {
		log.Error("admin bootstrap failed", "err", err)
		os.Exit(1)
	}

	h := httpapi.Handlers{
		Auth:        authSvc,
		Employees:   employees.NewService(employees.NewPostgresRepo(db)),
		Departments: departments.NewService(departments.NewPostgresRepo(db)),
		Requests:    requests.NewService(db),
		Dashboard:   dashboard.NewService(dashboard.NewPostgresRepo(db)),
		Audit:       audit.NewService(audit.NewPostgresRepo(db)),
		Production:  cfg.IsProduction(),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, cfg, h, authSvc, rdb)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
