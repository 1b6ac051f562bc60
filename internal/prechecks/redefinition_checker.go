package prechecks

import (
	"fmt"
	"time"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/wiring"
)

type RedefinitionChecker struct {
}

func NewRedefinitionChecker() *RedefinitionChecker {
	return &RedefinitionChecker{}
}

// RedefinitionChecker warns about signals driven by more than one wire. The
// last definition wins, which is rarely what the author of the input meant.
func (c *RedefinitionChecker) Check(program Program) models.CheckResult {
	now := time.Now()

	counts := make(map[wiring.Signal]int)
	for _, w := range program.Wires {
		counts[w.Target]++
	}

	defs := definitions(program.Wires)
	var findings []string
	for _, signal := range sortedKeys(counts) {
		if n := counts[signal]; n > 1 {
			findings = append(findings, fmt.Sprintf("signal %q is defined %d times, last definition %q wins",
				signal, n, defs[signal]))
		}
	}

	res := result("redefinition-checker", models.SeverityWarning, findings)
	res.Duration = time.Since(now)
	return res
}
