// Command server runs the property management API.
//
// @title                       Property API
// @version                     1.0
// @description                 Property management backend: accounts, properties, contractor time clock and ledger.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/keyline/property-api/internal/api"
	"github.com/keyline/property-api/internal/api/handler"
	"github.com/keyline/property-api/internal/api/metrics"
	"github.com/keyline/property-api/internal/core/service"
	mongostore "github.com/keyline/property-api/internal/infrastructure/db/mongo"
	"github.com/keyline/property-api/internal/infrastructure/db/postgres"
	redisstore "github.com/keyline/property-api/internal/infrastructure/db/redis"
	"github.com/keyline/property-api/internal/infrastructure/queue"
	"github.com/keyline/property-api/internal/pkg/config"
	"github.com/keyline/property-api/internal/pkg/token"
	"github.com/keyline/property-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "property-api",
		Env:     cfg.Env,
	})

	// --- Relational store: the service does not listen until the schema is in place ---
	db, err := postgres.Connect(ctx, postgres.Config{
		DSN:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	}, log)
	if err != nil {
		return err
	}
	defer func() { _ = postgres.Close(db) }()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return err
	}
	log.Info().Msg("schema ready")

	checks := map[string]handler.HealthCheck{
		"postgres": func(ctx context.Context) error { return postgres.Ping(ctx, db) },
	}

	signer, err := token.NewSigner(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTTTL)
	if err != nil {
		return err
	}

	authOpts := service.AuthOptions{
		AutoProvision: cfg.Auth.AutoProvision,
		ProvisionRole: cfg.Auth.ProvisionRole,
		BCryptCost:    cfg.Auth.BCryptCost,
	}

	// --- Optional login throttle ---
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()

		authOpts.Limiter = redisstore.NewLoginThrottle(rdb, cfg.Redis.MaxFailures, cfg.Redis.LockoutAfter)
		checks["redis"] = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login throttle enabled")
	}

	// --- Optional audit trail ---
	var dispatcher *queue.Dispatcher
	if cfg.Mongo.URI != "" {
		client, mdb, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		auditRepo := mongostore.NewAuditRepository(mdb)
		if err := auditRepo.EnsureIndexes(ctx); err != nil {
			return err
		}

		dispatcher = queue.NewDispatcher(cfg.Mongo.Workers, auditRepo, log, metrics.AuditEventsDroppedTotal)
		dispatcher.Start()
		metrics.RegisterAuditQueueDepth(dispatcher.Pending)

		authOpts.Audit = dispatcher
		checks["mongodb"] = func(ctx context.Context) error { return mongostore.Ping(ctx, client) }
		log.Info().Str("database", cfg.Mongo.Database).Msg("audit trail enabled")
	}

	timeClock := service.NewTimeClockService(
		postgres.NewTimeEntryRepository(db),
		postgres.NewContractorRepository(db),
		postgres.NewPropertyRepository(db),
		log,
	)

	e := api.NewRouter(api.Dependencies{
		Auth:         service.NewAuthService(postgres.NewUserRepository(db), signer, authOpts, log),
		Properties:   service.NewPropertyService(postgres.NewPropertyRepository(db), log),
		Contractors:  service.NewContractorService(postgres.NewContractorRepository(db), log),
		TimeClock:    timeClock,
		Ledger:       service.NewLedgerService(postgres.NewTransactionRepository(db), log),
		Tokens:       signer,
		HealthChecks: checks,
		StaticDir:    cfg.StaticDir,
		CORSOrigins:  cfg.CORSOrigins,
		Log:          log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	if dispatcher != nil {
		drainCtx, cancelDrain := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelDrain()
		if err := dispatcher.Stop(drainCtx); err != nil {
			log.Warn().Err(err).Int("pending", dispatcher.Pending()).Msg("audit events not persisted at shutdown")
		}
	}
	log.Info().Msg("server exited")
	return nil
}

