// Package main is the entry point for the Telegram bounty bot.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/allinbits/telegram-bots/internal/bot"
	"github.com/allinbits/telegram-bots/internal/config"
	"github.com/allinbits/telegram-bots/internal/payout"
	"github.com/allinbits/telegram-bots/internal/pkg/db"
	"github.com/allinbits/telegram-bots/internal/repository"
	"github.com/allinbits/telegram-bots/internal/service"
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

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	// Run database migrations
	if err := runMigrations(ctx, dbPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	bountyRepo := repository.NewBountyRepository(dbPool.Pool)
	claimRepo := repository.NewClaimRepository(dbPool.Pool)
	recipientRepo := repository.NewRecipientRepository(dbPool.Pool)

	// Initialize payout client
	payoutClient := payout.NewClient(&cfg.Payout)

	// Initialize services
	bountyService := service.NewBountyService(bountyRepo, claimRepo, recipientRepo, payoutClient)
	recipientService := service.NewRecipientService(recipientRepo)

	// Create bot dependencies
	deps := &bot.BountyDependencies{
		Config:           cfg,
		BountyService:    bountyService,
		RecipientService: recipientService,
	}

	// Initialize bot
	bountyBot, err := bot.NewBountyBot(deps)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start bot in a goroutine
	go func() {
		log.Info().Msg("Bounty bot is starting...")
		bountyBot.Start()
	}()

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	// Graceful shutdown
	bountyBot.Stop()
	log.Info().Msg("Bot stopped gracefully")
}

// runMigrations executes database migrations for the bounty bot tables.
func runMigrations(ctx context.Context, pool *db.Pool) error {
	log.Info().Msg("Running database migrations...")

	// Migration 1: Create bounties table
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS bounties (
			id BIGSERIAL PRIMARY KEY,
			amount TEXT NOT NULL,
			denom TEXT NOT NULL,
			task TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at BIGINT NOT NULL,
			completed_at BIGINT,
			recipient TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_bounties_completed ON bounties(completed);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 1: bounties table created")

	// Migration 2: Create claims table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS claims (
			id BIGSERIAL PRIMARY KEY,
			bounty_id BIGINT NOT NULL,
			username TEXT NOT NULL,
			proof TEXT,
			created_at BIGINT NOT NULL,
			UNIQUE (bounty_id, username)
		);
		CREATE INDEX IF NOT EXISTS idx_claims_bounty ON claims(bounty_id);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 2: claims table created")

	// Migration 3: Create recipients table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS recipients (
			username TEXT PRIMARY KEY,
			address TEXT NOT NULL
		);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 3: recipients table created")

	log.Info().Msg("All migrations completed successfully")
	return nil
}
