package prechecks

import (
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/wiring"
)

// Program is a parsed circuit together with the signal a solve will ask for.
type Program struct {
	Wires  []wiring.Wire
	Target wiring.Signal
}

type Checker interface {
	Check(program Program) models.CheckResult
}

// definitions keeps the last wire for every target, matching circuit semantics.
func definitions(wires []wiring.Wire) map[wiring.Signal]wiring.Operation {
	defs := make(map[wiring.Signal]wiring.Operation, len(wires))
	for _, w := range wires {
		defs[w.Target] = w.Op
	}
	return defs
}

func result(name string, severity models.Severity, findings []string) models.CheckResult {
	if len(findings) == 0 {
		severity = models.SeverityNone
	}
	return models.CheckResult{Name: name, Severity: severity, Findings: findings}
}

// reachable returns every signal the target reads, directly or through other
// wires, including the target itself and any undefined signals on the way.
// An empty target reaches everything that is defined.
func reachable(defs map[wiring.Signal]wiring.Operation, target wiring.Signal) map[wiring.Signal]bool {
	seen := make(map[wiring.Signal]bool, len(defs))
	if target == "" {
		for signal := range defs {
			seen[signal] = true
		}
		return seen
	}

	pending := []wiring.Signal{target}
	for len(pending) > 0 {
		signal := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if seen[signal] {
			continue
		}
		seen[signal] = true
		pending = append(pending, wiring.Inputs(defs[signal])...)
	}
	return seen
}

// scopedResult fails only on findings the target depends on. Defects the
// target never reads surface as warnings, since evaluation would not hit them.
func scopedResult(name string, blocking, detached []string) models.CheckResult {
	if len(blocking) > 0 {
		return result(name, models.SeverityError, append(blocking, detached...))
	}
	return result(name, models.SeverityWarning, detached)
}
