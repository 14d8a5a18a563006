package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kuma-mall/admin-backend/internal/config"
	"github.com/kuma-mall/admin-backend/internal/database"
	applog "github.com/kuma-mall/admin-backend/internal/logger"
	"github.com/kuma-mall/admin-backend/internal/metrics"
	"github.com/kuma-mall/admin-backend/internal/modules/access"
	"github.com/kuma-mall/admin-backend/internal/modules/admin"
	"github.com/kuma-mall/admin-backend/internal/modules/auth"
	"github.com/kuma-mall/admin-backend/internal/modules/group"
	"github.com/kuma-mall/admin-backend/internal/modules/product"
	"github.com/kuma-mall/admin-backend/internal/web"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("database connected")

	limiter := auth.NoopLimiter()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, login attempts will not be limited", zap.Error(err))
		}
		limiter = auth.NewRedisLimiter(rdb, cfg.LoginLimit.Attempts, cfg.LoginLimit.Window)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           newRouter(cfg, logger, db, limiter, metrics.New()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("admin API listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openDB(ctx context.Context) (*sql.DB, error) {
	return database.Open(ctx, cfg.Database.URL, database.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
}

func newRouter(cfg *config.Config, logger *zap.Logger, db *sql.DB, limiter auth.Limiter, m *metrics.HTTP) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(applog.AccessLog(logger))
	router.Use(m.Middleware)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(cfg.HTTP.RequestTimeout))

	router.Get("/healthz", healthz(db, logger))
	router.Method(http.MethodGet, "/metrics", m.Handler())

	// ── Identity & Access ───────────────────────────────────
	issuer := access.NewIssuer(cfg.Session.Secret, cfg.Session.TTL)
	guard := access.NewGuard(issuer, cfg.Session.CookieName, logger)

	adminRepo := admin.NewPostgresRepository(db)
	adminService := admin.NewService(adminRepo, logger)
	admin.NewHandler(adminService, guard, logger).RegisterRoutes(router)

	authService := auth.NewService(adminRepo, issuer, logger)
	cookie := auth.CookieOptions{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure}
	auth.NewHandler(authService, guard, limiter, cookie, logger).RegisterRoutes(router)

	// ── Catalog ─────────────────────────────────────────────
	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo)
	product.NewHandler(productService, guard, logger).RegisterRoutes(router)

	groupRepo := group.NewPostgresRepository(db)
	groupService := group.NewService(groupRepo, logger)
	group.NewHandler(groupService, guard, logger).RegisterRoutes(router)

	return router
}

type pinger interface {
	PingContext(ctx context.Context) error
}

func healthz(db pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			web.JSON(w, http.StatusServiceUnavailable, web.Message{Message: "database unavailable"})
			return
		}
		web.JSON(w, http.StatusOK, web.Message{Message: "ok"})
	}
}
