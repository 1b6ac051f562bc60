package cache

import (
	"context"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
)

// Noop is used when no Redis address is configured. Every lookup misses.
type Noop struct{}

func (Noop) Get(context.Context, string) (models.SolveResult, bool, error) {
	return models.SolveResult{}, false, nil
}

func (Noop) Set(context.Context, string, models.SolveResult) error {
	return nil
}
