package batch

import (
	"context"
	"sync"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
	"github.com/rs/zerolog"
)

type Solver interface {
	Solve(ctx context.Context, req models.SolveRequest) (models.SolveResult, error)
}

// Job is one circuit file to solve.
type Job struct {
	Source  string
	Request models.SolveRequest
}

type Outcome struct {
	Source string
	Result models.SolveResult
	Error  error
}

// Processor solves jobs on a fixed pool of workers. Each job builds its own
// circuit, so workers share nothing but the solver's cache.
type Processor struct {
	solver  Solver
	workers int
	logger  *zerolog.Logger
}

func NewProcessor(solver Solver, workers int, logger *zerolog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		solver:  solver,
		workers: workers,
		logger:  logger,
	}
}

// Process emits one outcome per job, in completion order. Jobs not started
// before ctx is cancelled are dropped.
func (p *Processor) Process(ctx context.Context, jobs []Job) <-chan Outcome {
	in := make(chan Job)
	out := make(chan Outcome)

	var wg sync.WaitGroup
	for range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range in {
				result, err := p.solver.Solve(ctx, job.Request)
				if err != nil {
					p.logger.Warn().Err(err).Str("source", job.Source).Msg("solve failed")
				}
				out <- Outcome{Source: job.Source, Result: result, Error: err}
			}
		}()
	}

	go func() {
		defer close(in)
		for _, job := range jobs {
			select {
			case in <- job:
			case <-ctx.Done():
				p.logger.Warn().Msg("processing cancelled")
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
