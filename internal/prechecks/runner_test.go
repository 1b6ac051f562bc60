package prechecks

import (
	"testing"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
)

func TestRunner(t *testing.T) {
	runner := NewStageRunner(DefaultCheckers())

	tests := []struct {
		name       string
		lines      []string
		wantErrors []string
	}{
		{
			name:  "sample circuit with a target",
			lines: []string{"123 -> x", "456 -> y", "x AND y -> a"},
		},
		{
			name:       "missing target and input",
			lines:      []string{"x AND y -> d", "1 -> x"},
			wantErrors: []string{"target-checker"},
		},
		{
			name:       "target reads an undefined input",
			lines:      []string{"x AND y -> a", "1 -> x"},
			wantErrors: []string{"undefined-checker"},
		},
		{
			name:  "defects the target never reads",
			lines: []string{"1 -> b", "b -> a", "zz AND q -> r", "m -> n", "n -> m"},
		},
		{
			name:       "cycle through the target",
			lines:      []string{"b -> a", "a OR c -> b", "5 -> c"},
			wantErrors: []string{"cycle-checker"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := runner.Run(mustProgram(t, "a", tt.lines...))

			if len(results) != 4 {
				t.Fatalf("expected 4 results, got %d", len(results))
			}

			expectedOrder := []string{"cycle-checker", "redefinition-checker", "target-checker", "undefined-checker"}
			failing := map[string]bool{}
			for i, res := range results {
				if res.Name != expectedOrder[i] {
					t.Errorf("result %d: %s, want %s", i, res.Name, expectedOrder[i])
				}
				if res.Duration < 0 {
					t.Errorf("Duration should be non-negative, got %v for checker %s", res.Duration, res.Name)
				}
				if res.Severity == models.SeverityError {
					failing[res.Name] = true
				}
			}

			if len(failing) != len(tt.wantErrors) {
				t.Errorf("failing checkers: %v, want %v", failing, tt.wantErrors)
			}
			for _, name := range tt.wantErrors {
				if !failing[name] {
					t.Errorf("expected %s to report an error", name)
				}
			}
		})
	}
}
