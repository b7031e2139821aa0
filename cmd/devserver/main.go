package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/WizCoderr/admin.ajastra/internal/config"
	"github.com/WizCoderr/admin.ajastra/internal/devserver"
	"github.com/WizCoderr/admin.ajastra/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// The console defaults to warn; a server wants its request log
	level := cfg.Logging.Level
	if os.Getenv("LOG_LEVEL") == "" {
		level = "info"
	}
	log := logger.Init(level, cfg.Logging.Format)

	srv, err := devserver.New(cfg.DevServer, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("addr", cfg.DevServer.Addr).Bool("seed", cfg.DevServer.Seed).Msg("Starting Ajastra dev API...")

	if err := srv.Start(ctx); err != nil {
		log.Error().Err(err).Msg("Server failed")
		os.Exit(1)
	}
}
