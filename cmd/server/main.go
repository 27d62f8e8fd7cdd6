// Package main is the entry point for the OWatch dashboard backend.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"owatch-server/internal/config"
	"owatch-server/internal/handler"
	"owatch-server/internal/pkg/db"
	"owatch-server/internal/pkg/lock"
	"owatch-server/internal/repository"
	"owatch-server/internal/service"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	// Run database migrations
	if err := repository.Migrate(ctx, dbPool.Pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(dbPool.Pool)
	stakeRepo := repository.NewStakeRepository(dbPool.Pool)
	conversionRepo := repository.NewConversionRepository(dbPool.Pool)
	videoRepo := repository.NewVideoRepository(dbPool.Pool)

	// Per-address mutation lock
	addrLock := lock.NewAddressLock()

	// Initialize services
	accountService := service.NewAccountService(
		accountRepo,
		stakeRepo,
		conversionRepo,
		videoRepo,
		addrLock,
		cfg.Rewards.WatchThresholdPercent,
		cfg.Rewards.CommitDelay,
	)
	convertService := service.NewConvertService(
		accountRepo,
		conversionRepo,
		addrLock,
		cfg.Rewards.HistoryLimit,
		cfg.Rewards.CommitDelay,
	)
	stakingService := service.NewStakingService(
		accountRepo,
		stakeRepo,
		addrLock,
		cfg.Rewards.CommitDelay,
	)

	// Build the HTTP API
	h := handler.NewHandler(accountService, convertService, stakingService, dbPool.HealthCheck)
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      h.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server is starting...")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
	log.Info().Msg("Server stopped gracefully")
}
