// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"slices"
	"syscall"

	"github.com/taibuivan/helpdesk/internal/api"
	"github.com/taibuivan/helpdesk/internal/auth"
	"github.com/taibuivan/helpdesk/internal/person"
	"github.com/taibuivan/helpdesk/internal/platform/config"
	"github.com/taibuivan/helpdesk/internal/platform/constants"
	"github.com/taibuivan/helpdesk/internal/platform/metrics"
	"github.com/taibuivan/helpdesk/internal/platform/migration"
	pgstore "github.com/taibuivan/helpdesk/internal/platform/postgres"
	redisstore "github.com/taibuivan/helpdesk/internal/platform/redis"
	"github.com/taibuivan/helpdesk/internal/platform/sec"
	"github.com/taibuivan/helpdesk/internal/ticket"
)

// serve runs the startup sequence and blocks until shutdown.
//
// # Startup Sequence
//
//  1. Storage: PostgreSQL (with migrations) or in-memory repositories.
//  2. Redis principal cache, when REDIS_URL is set.
//  3. Token codec, services and handlers.
//  4. HTTP server with graceful shutdown on SIGINT/SIGTERM.
func serve(parent context.Context, cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Bound connection attempts so misconfiguration is caught quickly
	// rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(ctx, constants.StartupTimeout)
	defer startupCancel()

	if cfg.IsProduction() && slices.Contains(cfg.CORSAllowedOrigins, "*") {
		log.Warn("cors_allows_any_origin", slog.String("hint", "set CORS_ALLOWED_ORIGINS explicitly in production"))
	}

	var (
		personRepo person.Repository
		ticketRepo ticket.Repository
		health     api.HealthDependencies
	)

	// ── 1. Storage ────────────────────────────────────────────────────────
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if cfg.RunMigrations {
			if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}
		}

		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		personRepo = person.NewPostgresRepository(pool)
		ticketRepo = ticket.NewPostgresRepository(pool)
		health.CheckDatabase = func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }

	case config.StorageMemory:
		log.Warn("memory_storage_enabled")
		memoryPeople := person.NewMemoryRepository()
		personRepo = memoryPeople
		ticketRepo = ticket.NewMemoryRepository(memoryPeople)
	}

	// ── 2. Principal Cache ────────────────────────────────────────────────
	var cache person.PrincipalCache
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		cache = person.NewRedisPrincipalCache(rdb, cfg.PrincipalCacheTTL)
		health.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	}

	// ── 3. Domain Wiring ──────────────────────────────────────────────────
	codec, err := sec.NewTokenCodec([]byte(cfg.JWTSecret), cfg.JWTExpiration)
	if err != nil {
		return fmt.Errorf("initialize token codec: %w", err)
	}
	hasher := sec.NewBcryptHasher(cfg.BcryptCost)
	observer := metrics.New()

	directory := person.NewDirectory(personRepo, cache, log)
	people := person.NewService(personRepo, ticketRepo, hasher, directory, log)
	tickets := ticket.NewService(ticketRepo, people, log)

	verifier, err := auth.NewCredentialVerifier(directory, hasher)
	if err != nil {
		return fmt.Errorf("initialize credential verifier: %w", err)
	}

	liveness, readiness := api.NewHealthHandlers(health, log)

	server := api.NewServer(ctx, cfg, log,
		api.Security{Verifier: codec, Directory: directory},
		observer,
		api.Handlers{
			Liveness:    liveness,
			Readiness:   readiness,
			Login:       auth.NewHandler(verifier, codec, observer),
			Clients:     person.NewClientHandler(people),
			Technicians: person.NewTechnicianHandler(people),
			Tickets:     ticket.NewHandler(tickets),
		},
	)

	// ── 4. Graceful Shutdown ──────────────────────────────────────────────
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server_stopped_cleanly")
	return nil
}
