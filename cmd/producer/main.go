package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/batch"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/config"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
	red "github.com/povarna/generative-ai-agents/circuit-eval/internal/redis"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/stream/redis"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type options struct {
	file       string
	stream     string
	id         string
	target     string
	override   string
	singlePart bool
}

func main() {
	var opts options
	flag.StringVar(&opts.file, "f", "", "Circuit instruction file, '-' for stdin")
	flag.StringVar(&opts.stream, "stream", "", "Job stream name (defaults to stream.jobs from the circuit config)")
	flag.StringVar(&opts.id, "id", "", "Job identifier (defaults to the file name)")
	flag.StringVar(&opts.target, "target", "", "Signal to resolve")
	flag.StringVar(&opts.override, "override", "", "Signal overridden in the second phase")
	flag.BoolVar(&opts.singlePart, "single", false, "Skip the override phase")
	flag.Parse()

	if opts.file == "" {
		fmt.Fprintln(os.Stderr, "Usage: producer -f <circuit-file>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := run(opts); err != nil {
		log.Error().Err(err).Msg("producer failed")
		os.Exit(1)
	}
}

func run(opts options) error {
	_ = godotenv.Load()

	stream := opts.stream
	if stream == "" {
		circuitConfig, err := config.LoadCircuitConfig()
		if err != nil {
			return err
		}
		stream = circuitConfig.Stream.Jobs
	}

	var input io.Reader = os.Stdin
	id := opts.id
	if opts.file != "-" {
		f, err := os.Open(opts.file)
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
		if id == "" {
			id = filepath.Base(opts.file)
		}
	}

	ctx := context.Background()

	// Reject malformed files before they reach the queue
	_, lines, err := batch.NewReader(input, &log.Logger).Load(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.file, err)
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client, err := red.ConnectRedis(ctx, addr, os.Getenv("REDIS_PASSWORD"), 3, &log.Logger)
	if err != nil {
		return err
	}
	defer client.Close()

	entryID, err := redis.NewProducer(client, stream).Publish(ctx, models.SolveRequest{
		ID:           id,
		Instructions: lines,
		Target:       opts.target,
		Override:     opts.override,
		SinglePart:   opts.singlePart,
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("stream", stream).
		Str("entry", entryID).
		Str("id", id).
		Int("instructions", len(lines)).
		Msg("Published successfully!")
	return nil
}
