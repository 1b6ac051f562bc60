// Command circuit solves a wiring puzzle: it prints the value of the target
// signal, then the value it takes when the override signal is driven with the
// first answer.
//
//	circuit <input-file>
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/batch"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/setup"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var errMissingInput = errors.New("missing input file argument")

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args, os.Stdout); err != nil {
		log.Error().Err(err).Msg("Circuit evaluation failed")
		if errors.Is(err, errMissingInput) {
			fmt.Fprintf(os.Stderr, "Usage: %s <input-file>\n", os.Args[0])
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	path, err := inputPathFromArgs(args)
	if err != nil {
		return err
	}

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := setup.LoadConfig()
	if os.Getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = "warn"
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	logger := log.Logger.Level(level)

	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		return fmt.Errorf("failed to wire dependencies: %w", err)
	}
	defer deps.Close()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	wires, _, err := batch.NewReader(f, &logger).Load(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	result, err := deps.Solver.SolveProgram(ctx, path, wires, deps.Solver.Options())
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Part1: contents of %s is %d\n", result.Target, result.Part1)
	if result.Part2 != nil {
		fmt.Fprintf(out, "Part2: contents of %s is %d\n", result.Target, *result.Part2)
	}
	return nil
}

// inputPathFromArgs returns the first positional argument.
func inputPathFromArgs(args []string) (string, error) {
	if len(args) < 2 || args[1] == "" {
		return "", errMissingInput
	}
	return args[1], nil
}
