package aggregator

import (
	"testing"
	"time"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name   string
		checks []models.CheckResult
		want   models.Verdict
	}{
		{
			name: "clean program passes",
			checks: []models.CheckResult{
				{Name: "cycle-checker", Severity: models.SeverityNone, Duration: time.Millisecond},
				{Name: "undefined-checker", Severity: models.SeverityNone, Duration: time.Millisecond},
			},
			want: models.VerdictPass,
		},
		{
			name: "warnings only go to review",
			checks: []models.CheckResult{
				{Name: "cycle-checker", Severity: models.SeverityNone},
				{Name: "redefinition-checker", Severity: models.SeverityWarning, Findings: []string{`signal "a" is defined 2 times`}},
			},
			want: models.VerdictReview,
		},
		{
			name: "any error fails",
			checks: []models.CheckResult{
				{Name: "redefinition-checker", Severity: models.SeverityWarning, Findings: []string{"w"}},
				{Name: "undefined-checker", Severity: models.SeverityError, Findings: []string{"e"}},
			},
			want: models.VerdictFail,
		},
		{
			name:   "no checks passes",
			checks: nil,
			want:   models.VerdictPass,
		},
	}

	agg := NewAggregator(newTestLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := agg.Aggregate("test", tt.checks)

			if report.Verdict != tt.want {
				t.Errorf("expected %s, got %s", tt.want, report.Verdict)
			}
			if report.ID != "test" {
				t.Errorf("expected ID test, got %s", report.ID)
			}
			if report.Checks == nil {
				t.Error("Checks should never be nil")
			}
		})
	}
}
