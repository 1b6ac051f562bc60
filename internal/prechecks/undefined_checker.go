package prechecks

import (
	"fmt"
	"slices"
	"time"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/wiring"
)

type UndefinedChecker struct {
}

func NewUndefinedChecker() *UndefinedChecker {
	return &UndefinedChecker{}
}

// UndefinedChecker reports every signal read by some wire but driven by none.
// Only signals the target depends on make the program fail.
func (c *UndefinedChecker) Check(program Program) models.CheckResult {
	now := time.Now()
	defs := definitions(program.Wires)
	inScope := reachable(defs, program.Target)

	readers := make(map[wiring.Signal][]wiring.Signal)
	for _, w := range program.Wires {
		for _, in := range wiring.Inputs(w.Op) {
			if _, ok := defs[in]; !ok && !slices.Contains(readers[in], w.Target) {
				readers[in] = append(readers[in], w.Target)
			}
		}
	}

	var blocking, detached []string
	for _, signal := range sortedKeys(readers) {
		finding := fmt.Sprintf("signal %q is read by %v but never defined", signal, readers[signal])
		if inScope[signal] {
			blocking = append(blocking, finding)
		} else {
			detached = append(detached, finding+", target does not read it")
		}
	}

	res := scopedResult("undefined-checker", blocking, detached)
	res.Duration = time.Since(now)
	return res
}
