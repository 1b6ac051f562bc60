package prechecks

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/wiring"
)

type CycleChecker struct {
}

func NewCycleChecker() *CycleChecker {
	return &CycleChecker{}
}

const (
	unvisited = iota
	inProgress
	done
)

// CycleChecker finds signals that transitively depend on themselves. Each
// cycle is reported once, as the path in which it was first entered. Only
// cycles the target depends on make the program fail.
func (c *CycleChecker) Check(program Program) models.CheckResult {
	now := time.Now()
	defs := definitions(program.Wires)
	inScope := reachable(defs, program.Target)

	state := make(map[wiring.Signal]int, len(defs))
	var stack []wiring.Signal
	var blocking, detached []string

	var visit func(signal wiring.Signal)
	visit = func(signal wiring.Signal) {
		state[signal] = inProgress
		stack = append(stack, signal)

		for _, in := range wiring.Inputs(defs[signal]) {
			if _, ok := defs[in]; !ok {
				continue
			}
			switch state[in] {
			case unvisited:
				visit(in)
			case inProgress:
				start := slices.Index(stack, in)
				finding := formatCycle(append(slices.Clone(stack[start:]), in))
				if inScope[in] {
					blocking = append(blocking, finding)
				} else {
					detached = append(detached, finding+", target does not read it")
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[signal] = done
	}

	for _, signal := range sortedKeys(defs) {
		if state[signal] == unvisited {
			visit(signal)
		}
	}

	res := scopedResult("cycle-checker", blocking, detached)
	res.Duration = time.Since(now)
	return res
}

func formatCycle(path []wiring.Signal) string {
	names := make([]string, len(path))
	for i, s := range path {
		names[i] = string(s)
	}
	return "cycle " + strings.Join(names, " -> ")
}

func sortedKeys[V any](m map[wiring.Signal]V) []wiring.Signal {
	return slices.Sorted(maps.Keys(m))
}
