package prechecks

import (
	"slices"
	"strings"
	"sync"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
)

type StageRunner struct {
	Checkers []Checker
}

func NewStageRunner(checkers []Checker) *StageRunner {
	return &StageRunner{
		Checkers: checkers,
	}
}

// DefaultCheckers returns every static check in the package.
func DefaultCheckers() []Checker {
	return []Checker{
		NewTargetChecker(),
		NewUndefinedChecker(),
		NewCycleChecker(),
		NewRedefinitionChecker(),
	}
}

// Run executes all checkers concurrently. Checkers only read the program.
// Results are ordered by checker name.
func (r *StageRunner) Run(program Program) []models.CheckResult {
	results := make(chan models.CheckResult, len(r.Checkers))
	var wg sync.WaitGroup

	for _, checker := range r.Checkers {
		wg.Add(1)
		go func(c Checker) {
			defer wg.Done()
			results <- c.Check(program)
		}(checker)
	}

	wg.Wait()
	close(results)

	var checkResults []models.CheckResult
	for res := range results {
		checkResults = append(checkResults, res)
	}
	slices.SortFunc(checkResults, func(a, b models.CheckResult) int {
		return strings.Compare(a.Name, b.Name)
	})

	return checkResults
}
