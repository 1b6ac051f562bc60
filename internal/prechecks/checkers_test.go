package prechecks

import (
	"strings"
	"testing"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
)

func TestCheckers(t *testing.T) {
	tests := []struct {
		name         string
		checker      Checker
		lines        []string
		wantSeverity models.Severity
		wantFindings []string
	}{
		{
			name:         "target defined",
			checker:      NewTargetChecker(),
			lines:        []string{"1 -> a"},
			wantSeverity: models.SeverityNone,
		},
		{
			name:         "target missing",
			checker:      NewTargetChecker(),
			lines:        []string{"1 -> b"},
			wantSeverity: models.SeverityError,
			wantFindings: []string{`target signal "a" is never defined`},
		},
		{
			name:         "all inputs defined",
			checker:      NewUndefinedChecker(),
			lines:        []string{"x AND y -> a", "1 -> x", "2 -> y"},
			wantSeverity: models.SeverityNone,
		},
		{
			name:         "undefined inputs",
			checker:      NewUndefinedChecker(),
			lines:        []string{"x AND y -> a", "NOT y -> b", "1 -> x"},
			wantSeverity: models.SeverityError,
			wantFindings: []string{`signal "y" is read by [a b] but never defined`},
		},
		{
			name:         "undefined input the target never reads",
			checker:      NewUndefinedChecker(),
			lines:        []string{"1 -> b", "b -> a", "zz AND q -> r"},
			wantSeverity: models.SeverityWarning,
			wantFindings: []string{`signal "q" is read by [r] but never defined, target does not read it`, `signal "zz"`},
		},
		{
			name:         "undefined inputs on both sides of the target",
			checker:      NewUndefinedChecker(),
			lines:        []string{"x -> a", "y -> r"},
			wantSeverity: models.SeverityError,
			wantFindings: []string{`signal "x" is read by [a] but never defined`, `signal "y" is read by [r] but never defined, target does not read it`},
		},
		{
			name:         "acyclic",
			checker:      NewCycleChecker(),
			lines:        []string{"b -> a", "c OR c -> b", "1 -> c"},
			wantSeverity: models.SeverityNone,
		},
		{
			name:         "self loop",
			checker:      NewCycleChecker(),
			lines:        []string{"a -> a"},
			wantSeverity: models.SeverityError,
			wantFindings: []string{"cycle a -> a"},
		},
		{
			name:         "two signal loop",
			checker:      NewCycleChecker(),
			lines:        []string{"b -> a", "NOT a -> b"},
			wantSeverity: models.SeverityError,
			wantFindings: []string{"cycle a -> b -> a"},
		},
		{
			name:         "loop the target never reads",
			checker:      NewCycleChecker(),
			lines:        []string{"1 -> b", "b -> a", "m -> n", "n -> m"},
			wantSeverity: models.SeverityWarning,
			wantFindings: []string{"cycle m -> n -> m, target does not read it"},
		},
		{
			name:         "target reads a loop through another signal",
			checker:      NewCycleChecker(),
			lines:        []string{"c -> a", "NOT d -> c", "c -> d"},
			wantSeverity: models.SeverityError,
			wantFindings: []string{"cycle c -> d -> c"},
		},
		{
			name:         "redefinition last wins",
			checker:      NewRedefinitionChecker(),
			lines:        []string{"1 -> a", "2 -> a", "3 -> b"},
			wantSeverity: models.SeverityWarning,
			wantFindings: []string{`signal "a" is defined 2 times, last definition "2" wins`},
		},
		{
			name:         "no redefinition",
			checker:      NewRedefinitionChecker(),
			lines:        []string{"1 -> a", "3 -> b"},
			wantSeverity: models.SeverityNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.checker.Check(mustProgram(t, "a", tt.lines...))

			if got.Severity != tt.wantSeverity {
				t.Errorf("Severity: %s, want %s (findings %v)", got.Severity, tt.wantSeverity, got.Findings)
			}
			if len(got.Findings) != len(tt.wantFindings) {
				t.Fatalf("Findings: %v, want %v", got.Findings, tt.wantFindings)
			}
			for i, want := range tt.wantFindings {
				if !strings.Contains(got.Findings[i], want) {
					t.Errorf("Finding[%d]: %q, want substring %q", i, got.Findings[i], want)
				}
			}
		})
	}
}
