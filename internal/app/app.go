package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/extrato-backend/internal/adapter/postgres"
	"github.com/heartmarshall/extrato-backend/internal/adapter/postgres/ledger"
	"github.com/heartmarshall/extrato-backend/internal/adapter/postgres/person"
	jwtauth "github.com/heartmarshall/extrato-backend/internal/auth"
	"github.com/heartmarshall/extrato-backend/internal/config"
	"github.com/heartmarshall/extrato-backend/internal/metrics"
	"github.com/heartmarshall/extrato-backend/internal/service/auth"
	"github.com/heartmarshall/extrato-backend/internal/service/importer"
	"github.com/heartmarshall/extrato-backend/internal/service/people"
	"github.com/heartmarshall/extrato-backend/internal/service/statement"
	"github.com/heartmarshall/extrato-backend/internal/slug"
	"github.com/heartmarshall/extrato-backend/internal/transport/middleware"
	"github.com/heartmarshall/extrato-backend/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, connects to the
// database, optionally applies migrations, wires every service and serves
// HTTP until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	handler, limiter, err := buildRouter(cfg, pool, logger)
	if err != nil {
		return err
	}
	defer limiter.Stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	return serve(ctx, srv, cfg.Server, logger)
}

// serve runs srv until it fails or ctx is cancelled, in which case it is
// given ShutdownTimeout to drain in-flight requests.
func serve(ctx context.Context, srv *http.Server, cfg config.ServerConfig, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, nil
}

// newImporter builds the import orchestrator on top of the pool. m may be nil.
func newImporter(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger, m *metrics.Metrics) *importer.Service {
	var rec importRecorder
	if m != nil {
		rec = m
	}
	return importer.NewService(
		logger,
		person.New(pool),
		ledger.New(pool),
		postgres.NewTxManager(pool),
		slug.NewGenerator(nil),
		rec,
		cfg.Import,
	)
}

// importRecorder keeps a nil *metrics.Metrics from reaching the importer as
// a non-nil interface.
type importRecorder interface {
	ObserveImport(outcome string, newPeople, entries, orphaned int, d time.Duration)
	ObserveTokenCollision()
}

func buildRouter(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (http.Handler, *middleware.RateLimiter, error) {
	key, err := cfg.Auth.SecretKey()
	if err != nil {
		return nil, nil, err
	}

	personRepo := person.New(pool)
	ledgerRepo := ledger.New(pool)
	txm := postgres.NewTxManager(pool)

	authSvc, err := auth.NewService(logger,
		jwtauth.NewJWTManager(key, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
		cfg.Auth,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("auth service: %w", err)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	statementSvc := statement.NewService(logger, personRepo, ledgerRepo)
	peopleSvc := people.NewService(logger, personRepo, txm)
	importSvc := newImporter(cfg, pool, logger, m)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)

	handlers := rest.Handlers{
		Health:    rest.NewHealthHandler(pool, ledgerRepo, Version),
		Auth:      rest.NewAuthHandler(authSvc, logger),
		Statement: rest.NewStatementHandler(statementSvc, logger),
		Admin:     rest.NewAdminHandler(peopleSvc, logger),
		Import:    rest.NewImportHandler(importSvc, cfg.Import.MaxUploadBytes, logger),
	}
	routerCfg := rest.RouterConfig{
		Logger:             logger,
		CORS:               cfg.CORS,
		Tokens:             authSvc,
		RateLimiter:        limiter,
		StatementPerSecond: cfg.RateLimit.StatementPerSecond,
	}
	if m != nil {
		routerCfg.Metrics = m
		routerCfg.MetricsPath = cfg.Metrics.Path
	}

	handler := rest.NewRouter(handlers, routerCfg)

	return handler, limiter, nil
}
