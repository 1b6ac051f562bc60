// Package metrics records Prometheus metrics around the solver.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/circuit"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/solver"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/wiring"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "circuit"

type Solver interface {
	Solve(ctx context.Context, req models.SolveRequest) (models.SolveResult, error)
	Resolve(ctx context.Context, req models.ResolveRequest) (models.ResolveResult, error)
	Check(ctx context.Context, req models.CheckRequest) (models.CheckReport, error)
}

// InstrumentedSolver wraps a Solver and counts every call by operation and
// outcome.
type InstrumentedSolver struct {
	next Solver

	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	evaluations prometheus.Histogram
	cacheHits   prometheus.Counter
	verdicts    *prometheus.CounterVec
}

func NewInstrumentedSolver(next Solver, reg prometheus.Registerer) *InstrumentedSolver {
	factory := promauto.With(reg)
	return &InstrumentedSolver{
		next: next,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Solver calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Solver call latency by operation.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"operation"}),
		evaluations: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluations",
			Help:      "Operator applications per solved or resolved circuit.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Solves answered from the result cache.",
		}),
		verdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "check_verdicts_total",
			Help:      "Static check reports by verdict.",
		}, []string{"verdict"}),
	}
}

func (s *InstrumentedSolver) Solve(ctx context.Context, req models.SolveRequest) (models.SolveResult, error) {
	start := time.Now()
	result, err := s.next.Solve(ctx, req)
	s.observe("solve", start, err)
	if err == nil {
		if result.Cached {
			s.cacheHits.Inc()
		} else {
			s.evaluations.Observe(float64(result.Evaluations))
		}
	}
	return result, err
}

func (s *InstrumentedSolver) Resolve(ctx context.Context, req models.ResolveRequest) (models.ResolveResult, error) {
	start := time.Now()
	result, err := s.next.Resolve(ctx, req)
	s.observe("resolve", start, err)
	if err == nil {
		s.evaluations.Observe(float64(result.Evaluations))
	}
	return result, err
}

func (s *InstrumentedSolver) Check(ctx context.Context, req models.CheckRequest) (models.CheckReport, error) {
	start := time.Now()
	report, err := s.next.Check(ctx, req)
	s.observe("check", start, err)
	if err == nil {
		s.verdicts.WithLabelValues(string(report.Verdict)).Inc()
	}
	return report, err
}

func (s *InstrumentedSolver) observe(operation string, start time.Time, err error) {
	s.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	s.requests.WithLabelValues(operation, Outcome(err)).Inc()
}

// Outcome buckets an error into a low-cardinality label.
func Outcome(err error) string {
	var parseErr *wiring.ParseError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &parseErr), errors.Is(err, solver.ErrInvalidRequest):
		return "invalid"
	case errors.Is(err, solver.ErrChecksFailed):
		return "rejected"
	case errors.Is(err, circuit.ErrUndefinedSignal):
		return "undefined"
	case errors.Is(err, circuit.ErrCyclicDefinition):
		return "cycle"
	default:
		return "error"
	}
}
