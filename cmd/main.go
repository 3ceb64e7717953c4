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

	"github.com/joho/godotenv"
	"github.com/povarna/rpg-intake-agent/internal/setup"
	setuplogger "github.com/povarna/rpg-intake-agent/internal/setup/logger"
	"github.com/povarna/rpg-intake-agent/internal/stream"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load env
	envErr := godotenv.Load()

	cfg := setup.LoadConfig()

	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := setuplogger.New(cfg.LogLevel)
	log.Logger = logger

	if envErr != nil {
		logger.Warn().Msg("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Consumers publish their verdicts downstream
	cfg.PublishResults = true

	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer deps.Close()

	consumer, err := stream.NewStreamConsumer(ctx, cfg.StreamConfig(), deps.Intake, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create stream consumer")
	}

	if err := consumer.Setup(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to setup consumer")
	}

	go serveMetrics(deps, &logger)

	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("Consumer stopped with error")
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down...")

	if err := consumer.Stop(); err != nil {
		logger.Warn().Err(err).Msg("Failed to stop consumer")
	}

	logger.Info().Msg("Intake Agent stopped")
}

func serveMetrics(deps *setup.Dependencies, logger *zerolog.Logger) {
	port := os.Getenv("INTAKE_METRICS_PORT")
	if port == "" {
		port = "19090"
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", deps.Metrics.Handler())

	server := http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info().Str("address", server.Addr).Msg("Serving metrics")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("Metrics server failed")
	}
}
