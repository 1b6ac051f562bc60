package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/batch"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/setup"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	startTime := time.Now()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	output := flag.String("output", "", "Output file relative path")
	format := flag.String("format", batch.FormatJSONL, "Output file format. Supported formats: 'jsonl', 'summary'")
	workers := flag.Int("workers", 5, "Concurrent solver workers")
	dryRun := flag.Bool("dry-run", false, "Validate inputs without solving")

	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: batch [flags] <circuit-file>...")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	ctx, cancel := setupGracefulShutdown()
	defer cancel()

	cfg := setup.LoadConfig()

	deps, err := setup.Wire(ctx, cfg, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	jobs, invalid := loadJobs(ctx, files, deps.Logger)
	log.Info().Int("total", len(files)).Int("invalid", invalid).Msg("Input files parsed")

	if *dryRun {
		if invalid > 0 {
			log.Fatal().Int("errors", invalid).Msg("Validation failed")
		}
		log.Info().Msg("Validation successful")
		return
	}

	// Open output file
	var outputFile io.Writer
	if *output == "" {
		outputFile = os.Stdout
		log.Info().Msg("Writing to stdout")
	} else {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatal().Err(err).Str("file", *output).Msg("Failed to create output file")
		}
		defer f.Close()
		outputFile = f
		log.Info().Str("file", *output).Msg("Writing to output file")
	}

	writer, err := batch.NewWriter(outputFile, *format, deps.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create writer")
	}

	processor := batch.NewProcessor(deps.Solver, *workers, deps.Logger)
	outcomes := processor.Process(ctx, jobs)

	solved, failed := 0, invalid
	for outcome := range outcomes {
		if outcome.Error != nil {
			failed++
		} else {
			solved++
		}
		if err := writer.Write(outcome); err != nil {
			log.Error().Err(err).Str("source", outcome.Source).Msg("Failed to write result")
		}
	}
	if err := writer.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to flush output")
	}
	if err := deps.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close result cache")
	}

	log.Info().
		Int("solved", solved).
		Int("failed", failed).
		Dur("duration", time.Since(startTime)).
		Msg("Batch processing complete")

	if failed > 0 {
		os.Exit(1)
	}
}

// loadJobs parses every file up front. Files that fail to parse are logged
// and counted but not queued.
func loadJobs(ctx context.Context, files []string, logger *zerolog.Logger) ([]batch.Job, int) {
	jobs := make([]batch.Job, 0, len(files))
	invalid := 0
	for _, path := range files {
		lines, err := readInstructions(ctx, path, logger)
		if err != nil {
			logger.Error().Err(err).Str("file", path).Msg("Invalid circuit file")
			invalid++
			continue
		}
		jobs = append(jobs, batch.Job{
			Source:  path,
			Request: models.SolveRequest{ID: path, Instructions: lines},
		})
	}
	return jobs, invalid
}

func readInstructions(ctx context.Context, path string, logger *zerolog.Logger) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	_, lines, err := batch.NewReader(f, logger).Load(ctx)
	return lines, err
}

func setupGracefulShutdown() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Warn().Msg("Received interrupt signal, finishing current work...")
		cancel()
	}()

	return ctx, cancel
}
