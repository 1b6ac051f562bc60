package aggregator

import (
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
	"github.com/rs/zerolog"
)

type Aggregator struct {
	logger *zerolog.Logger
}

func NewAggregator(logger *zerolog.Logger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// Aggregate folds check results into a report. Any error-level finding fails
// the program, warnings alone send it to review.
func (a *Aggregator) Aggregate(id string, checks []models.CheckResult) models.CheckReport {
	report := models.CheckReport{
		ID:      id,
		Checks:  checks,
		Verdict: models.VerdictPass,
	}

	if len(checks) == 0 {
		report.Checks = []models.CheckResult{}
	}

	errorCount, warningCount := 0, 0
	for _, check := range checks {
		switch check.Severity {
		case models.SeverityError:
			errorCount += len(check.Findings)
		case models.SeverityWarning:
			warningCount += len(check.Findings)
		}
	}

	report.Verdict = a.calculateVerdict(errorCount, warningCount)

	a.logger.
		Info().
		Int("errors", errorCount).
		Int("warnings", warningCount).
		Str("verdict", string(report.Verdict)).
		Msg("aggregation complete")
	return report
}

func (a *Aggregator) calculateVerdict(errorCount, warningCount int) models.Verdict {
	if errorCount > 0 {
		return models.VerdictFail
	}
	if warningCount > 0 {
		return models.VerdictReview
	}
	return models.VerdictPass
}
