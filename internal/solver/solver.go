package solver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/circuit"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/prechecks"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/wiring"
	"github.com/rs/zerolog"
)

//go:generate mockgen -source=solver.go -destination=mocks/solver_mocks.go -package=mocks

// ResultCache stores solved results by program digest
type ResultCache interface {
	Get(ctx context.Context, key string) (models.SolveResult, bool, error)
	Set(ctx context.Context, key string, result models.SolveResult) error
}

// CheckRunner runs the static checks over a parsed program
type CheckRunner interface {
	Run(program prechecks.Program) []models.CheckResult
}

// Aggregator folds check results into a report
type Aggregator interface {
	Aggregate(id string, checks []models.CheckResult) models.CheckReport
}

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrChecksFailed   = errors.New("static checks failed")
)

// ChecksFailedError carries the report of a program refused before evaluation.
type ChecksFailedError struct {
	Report models.CheckReport
}

func (e *ChecksFailedError) Error() string {
	var findings []string
	for _, check := range e.Report.Checks {
		if check.Severity == models.SeverityError {
			findings = append(findings, check.Findings...)
		}
	}
	return fmt.Sprintf("%v: %s", ErrChecksFailed, strings.Join(findings, "; "))
}

func (e *ChecksFailedError) Unwrap() error {
	return ErrChecksFailed
}

// Options are the defaults applied to requests that leave a field empty.
type Options struct {
	Target    wiring.Signal
	Override  wiring.Signal
	PartTwo   bool
	RunChecks bool
}

type Solver struct {
	cache      ResultCache
	checks     CheckRunner
	aggregator Aggregator
	options    Options
	logger     *zerolog.Logger
}

func NewSolver(
	cache ResultCache,
	checks CheckRunner,
	aggregator Aggregator,
	options Options,
	logger *zerolog.Logger,
) *Solver {
	return &Solver{
		cache:      cache,
		checks:     checks,
		aggregator: aggregator,
		options:    options,
		logger:     logger,
	}
}

func (s *Solver) Options() Options {
	return s.options
}

// Solve parses the request's instructions and runs the two-phase solve.
func (s *Solver) Solve(ctx context.Context, req models.SolveRequest) (models.SolveResult, error) {
	program, err := wiring.ParseProgram(req.Instructions)
	if err != nil {
		return models.SolveResult{}, err
	}

	opts := s.options
	if req.Target != "" {
		opts.Target = wiring.Signal(req.Target)
	}
	if req.Override != "" {
		opts.Override = wiring.Signal(req.Override)
	}
	if req.SinglePart {
		opts.PartTwo = false
	}

	return s.SolveProgram(ctx, req.ID, program, opts)
}

// SolveProgram resolves the target on a fresh copy of the circuit, then, when
// opts.PartTwo is set, drives the override signal with that value on another
// fresh copy and resolves the target again.
func (s *Solver) SolveProgram(ctx context.Context, id string, program []wiring.Wire, opts Options) (models.SolveResult, error) {
	start := time.Now()
	s.logger.Info().Str("requestID", id).Int("wires", len(program)).Msg("starting solve")

	if opts.Target == "" {
		return models.SolveResult{}, fmt.Errorf("%w: empty target signal", ErrInvalidRequest)
	}
	if opts.PartTwo && (opts.Override == "" || opts.Override == opts.Target) {
		return models.SolveResult{}, fmt.Errorf("%w: override signal %q must differ from target %q", ErrInvalidRequest, opts.Override, opts.Target)
	}

	key := CacheKey(program, opts)
	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("result cache lookup failed")
	} else if ok {
		cached.ID = id
		cached.Cached = true
		s.logger.Info().Str("requestID", id).Msg("result served from cache")
		return cached, nil
	}

	if opts.RunChecks && s.checks != nil {
		report := s.aggregator.Aggregate(id, s.checks.Run(prechecks.Program{Wires: program, Target: opts.Target}))
		if report.Verdict == models.VerdictFail {
			s.logger.Info().Str("requestID", id).Msg("early exit triggered")
			return models.SolveResult{}, &ChecksFailedError{Report: report}
		}
	}

	base := circuit.FromWires(program, s.logger)

	first := base.Clone()
	part1, err := first.Resolve(opts.Target)
	if err != nil {
		return models.SolveResult{}, fmt.Errorf("part 1: %w", err)
	}

	result := models.SolveResult{
		ID:          id,
		Target:      string(opts.Target),
		Part1:       uint16(part1),
		Signals:     base.Len(),
		Evaluations: first.Evaluations(),
	}

	if opts.PartTwo {
		if err := ctx.Err(); err != nil {
			return models.SolveResult{}, err
		}

		second := base.Clone()
		second.Define(opts.Override, wiring.Literal{Value: part1})
		part2, err := second.Resolve(opts.Target)
		if err != nil {
			return models.SolveResult{}, fmt.Errorf("part 2: %w", err)
		}

		value := uint16(part2)
		result.Part2 = &value
		result.Override = string(opts.Override)
		result.Evaluations += second.Evaluations()
	}
	result.Duration = time.Since(start)

	if err := s.cache.Set(ctx, key, result); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("result cache store failed")
	}

	s.logger.Info().
		Str("requestID", id).
		Uint16("part1", result.Part1).
		Int("evaluations", result.Evaluations).
		Dur("duration", result.Duration).
		Msg("solve complete")
	return result, nil
}

// Resolve evaluates the requested signals on a single circuit, sharing
// memoized values between them. With no signals listed every defined signal
// is resolved.
func (s *Solver) Resolve(ctx context.Context, req models.ResolveRequest) (models.ResolveResult, error) {
	program, err := wiring.ParseProgram(req.Instructions)
	if err != nil {
		return models.ResolveResult{}, err
	}

	c := circuit.FromWires(program, s.logger)

	signals := c.Signals()
	if len(req.Signals) > 0 {
		signals = make([]wiring.Signal, len(req.Signals))
		for i, name := range req.Signals {
			signals[i] = wiring.Signal(name)
		}
	}

	values := make(map[string]uint16, len(signals))
	for _, signal := range signals {
		if err := ctx.Err(); err != nil {
			return models.ResolveResult{}, err
		}
		v, err := c.Resolve(signal)
		if err != nil {
			return models.ResolveResult{}, err
		}
		values[string(signal)] = uint16(v)
	}

	return models.ResolveResult{Values: values, Evaluations: c.Evaluations()}, nil
}

// Check runs the static checks without evaluating anything.
func (s *Solver) Check(ctx context.Context, req models.CheckRequest) (models.CheckReport, error) {
	if s.checks == nil {
		return models.CheckReport{}, fmt.Errorf("%w: no checks configured", ErrInvalidRequest)
	}

	program, err := wiring.ParseProgram(req.Instructions)
	if err != nil {
		return models.CheckReport{}, err
	}

	target := s.options.Target
	if req.Target != "" {
		target = wiring.Signal(req.Target)
	}

	return s.aggregator.Aggregate(req.ID, s.checks.Run(prechecks.Program{Wires: program, Target: target})), nil
}
