package prechecks

import (
	"fmt"
	"time"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
)

type TargetChecker struct {
}

func NewTargetChecker() *TargetChecker {
	return &TargetChecker{}
}

func (c *TargetChecker) Check(program Program) models.CheckResult {
	now := time.Now()

	var findings []string
	if program.Target == "" {
		findings = append(findings, "no target signal given")
	} else if _, ok := definitions(program.Wires)[program.Target]; !ok {
		findings = append(findings, fmt.Sprintf("target signal %q is never defined", program.Target))
	}

	res := result("target-checker", models.SeverityError, findings)
	res.Duration = time.Since(now)
	return res
}
