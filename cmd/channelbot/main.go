// Package main is the entry point for the Telegram channel list bot.
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

	// Initialize repository and service
	channelRepo := repository.NewChannelRepository(dbPool.Pool)
	channelService := service.NewChannelService(channelRepo)

	// Create bot dependencies
	deps := &bot.ChannelDependencies{
		Config:         cfg,
		ChannelService: channelService,
	}

	// Initialize bot
	channelBot, err := bot.NewChannelBot(deps)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start bot in a goroutine
	go func() {
		log.Info().Msg("Channel bot is starting...")
		channelBot.Start()
	}()

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	// Graceful shutdown
	channelBot.Stop()
	log.Info().Msg("Bot stopped gracefully")
}

// runMigrations executes database migrations for the channel bot tables.
func runMigrations(ctx context.Context, pool *db.Pool) error {
	log.Info().Msg("Running database migrations...")

	// Migration 1: Create scopes table
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS scopes (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			chat_id BIGINT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scopes_chat ON scopes(chat_id);
		CREATE INDEX IF NOT EXISTS idx_scopes_name ON scopes(name);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 1: scopes table created")

	// Migration 2: Create channels table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS channels (
			id BIGSERIAL PRIMARY KEY,
			scope_id BIGINT NOT NULL REFERENCES scopes(id) ON DELETE CASCADE,
			description TEXT NOT NULL,
			url TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_channels_scope ON channels(scope_id);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 2: channels table created")

	log.Info().Msg("All migrations completed successfully")
	return nil
}
