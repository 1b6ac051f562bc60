package prechecks

import (
	"testing"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/wiring"
)

func mustProgram(t *testing.T, target wiring.Signal, lines ...string) Program {
	t.Helper()
	wires, err := wiring.ParseProgram(lines)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	return Program{Wires: wires, Target: target}
}
