package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/aggregator"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/cache"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/config"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/prechecks"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/redis"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/solver"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/wiring"
	"github.com/rs/zerolog"
)

type Config struct {
	LogLevel        string
	RedisAddr       string
	RedisPassword   string
	RedisMaxRetries int
	CacheDir        string
	APIPort         string
	ConsumerName    string
	StreamProvider  string
	Target          string
	Override        string
}

type Dependencies struct {
	Solver  *solver.Solver
	Circuit *config.CircuitConfig
	Logger  *zerolog.Logger

	closers []io.Closer
}

// Close releases the result cache connection or store.
func (d *Dependencies) Close() error {
	var errs []error
	for _, c := range d.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func LoadConfig() *Config {
	return &Config{
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisMaxRetries: getEnvInt("REDIS_MAX_RETRIES", 5),
		CacheDir:        getEnv("CIRCUIT_CACHE_DIR", ""),
		APIPort:         getEnv("CIRCUIT_API_PORT", "18082"),
		ConsumerName:    getEnv("HOSTNAME", "circuit-consumer"),
		StreamProvider:  getEnv("STREAM_PROVIDER", "redis"),
		Target:          getEnv("CIRCUIT_TARGET", ""),
		Override:        getEnv("CIRCUIT_OVERRIDE", ""),
	}
}

// Wire builds the solver and its collaborators. Results are cached in Redis
// when REDIS_ADDR is set, otherwise in a local store under CIRCUIT_CACHE_DIR,
// otherwise not at all.
func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	circuitConfig, err := config.LoadCircuitConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load circuit config: %w", err)
	}
	if cfg.Target != "" {
		circuitConfig.Solver.Target = cfg.Target
	}
	if cfg.Override != "" {
		circuitConfig.Solver.Override = cfg.Override
	}
	if err := circuitConfig.Validate(); err != nil {
		return nil, err
	}

	resultCache, err := createResultCache(ctx, cfg, circuitConfig, logger)
	if err != nil {
		return nil, err
	}

	// Static checks
	stageRunner := prechecks.NewStageRunner(prechecks.DefaultCheckers())
	agg := aggregator.NewAggregator(logger)

	s := solver.NewSolver(resultCache, stageRunner, agg, solver.Options{
		Target:    wiring.Signal(circuitConfig.Solver.Target),
		Override:  wiring.Signal(circuitConfig.Solver.Override),
		PartTwo:   circuitConfig.Solver.PartTwoEnabled(),
		RunChecks: circuitConfig.Solver.ChecksEnabled(),
	}, logger)

	deps := &Dependencies{
		Solver:  s,
		Circuit: circuitConfig,
		Logger:  logger,
	}
	if closer, ok := resultCache.(io.Closer); ok {
		deps.closers = append(deps.closers, closer)
	}
	return deps, nil
}

func createResultCache(ctx context.Context, cfg *Config, circuitConfig *config.CircuitConfig, logger *zerolog.Logger) (solver.ResultCache, error) {
	if cfg.RedisAddr == "" {
		if cfg.CacheDir != "" {
			c, err := cache.OpenBadgerCache(cfg.CacheDir, circuitConfig.Cache.KeyPrefix, circuitConfig.Cache.TTL, logger)
			if err != nil {
				return nil, fmt.Errorf("failed to open result cache: %w", err)
			}
			return c, nil
		}
		logger.Debug().Msg("REDIS_ADDR not set, result cache disabled")
		return cache.Noop{}, nil
	}

	client, err := redis.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisMaxRetries, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect result cache: %w", err)
	}
	return cache.NewRedisCache(client, circuitConfig.Cache.KeyPrefix, circuitConfig.Cache.TTL, logger), nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		value = defaultValue
	}

	return value
}
