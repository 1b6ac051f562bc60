package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/setup"
	applog "github.com/povarna/generative-ai-agents/circuit-eval/internal/setup/logger"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/stream"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/stream/redis"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := setup.LoadConfig()

	// Consumers run unattended, so they log JSON
	logger := applog.New(cfg.LogLevel)
	log.Logger = logger

	if cfg.RedisAddr == "" {
		log.Fatal().Msg("REDIS_ADDR is required for the stream consumer")
	}

	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer deps.Close()

	streams := deps.Circuit.Stream
	streamCfg := &stream.StreamConfig{
		Provider: cfg.StreamProvider,
		RedisConfig: redis.NewRedisStreamConfig(
			cfg.RedisAddr,
			cfg.RedisPassword,
			streams.Jobs,
			streams.Results,
			streams.Group,
			cfg.ConsumerName,
		),
	}

	consumer, err := stream.NewStreamConsumer(ctx, streamCfg, deps.Solver, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create stream consumer")
	}
	defer consumer.Stop()

	if err := consumer.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to setup consumer")
	}

	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("Consumer stopped with error")
			cancel()
		}
	}()

	log.Info().
		Str("jobs", streams.Jobs).
		Str("results", streams.Results).
		Str("consumer", cfg.ConsumerName).
		Msg("Circuit solver consuming")

	<-ctx.Done()
	logger.Info().Msg("Shutting down...")

	log.Info().Msg("Circuit solver stopped")
}
