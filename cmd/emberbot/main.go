package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/solstanik/emberbot/internal/bot"
	"github.com/solstanik/emberbot/internal/storage"

	_ "github.com/solstanik/emberbot/internal/modules/audit"
	_ "github.com/solstanik/emberbot/internal/modules/core"
	_ "github.com/solstanik/emberbot/internal/modules/games"
	_ "github.com/solstanik/emberbot/internal/modules/leveling"
	_ "github.com/solstanik/emberbot/internal/modules/moderation"
	_ "github.com/solstanik/emberbot/internal/modules/settings"
	_ "github.com/solstanik/emberbot/internal/modules/tickets"
)

// version is set at build time via ldflags:
// go build -ldflags "-X main.version=1.0.0" ./cmd/emberbot
var version = "dev"

func main() {
	// Configure JSON logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	slog.Info("starting emberbot", "version", version)

	// Local development convenience; ignored when no .env exists.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := bot.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Open and migrate the database
	db, err := storage.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := storage.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Create and configure bot
	b := bot.NewBot(cfg, storage.New(db))
	b.LoadModules()

	// Start bot
	if err := b.Start(); err != nil {
		slog.Error("failed to start bot", "error", err)
		os.Exit(1)
	}

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("received termination signal, shutting down")
	if err := b.Stop(); err != nil {
		slog.Error("failed to shutdown", "error", err)
	}

	slog.Info("completed bot shutdown")
	os.Exit(0)
}
