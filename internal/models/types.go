package models

import (
	"time"
)

type Verdict string

const (
	VerdictPass   Verdict = "pass"
	VerdictFail   Verdict = "fail"
	VerdictReview Verdict = "review"
)

type Severity string

const (
	SeverityNone    Severity = "none"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Input message

type SolveRequest struct {
	ID           string   `json:"id,omitempty" jsonschema:"optional identifier echoed in the result"`
	Instructions []string `json:"instructions" jsonschema:"circuit instructions such as 'x AND y -> d', one per entry"`
	Target       string   `json:"target,omitempty" jsonschema:"signal to resolve, defaults to a"`
	Override     string   `json:"override,omitempty" jsonschema:"signal overridden with the first answer before the second phase, defaults to b"`
	SinglePart   bool     `json:"single_part,omitempty" jsonschema:"skip the override phase"`
}

type ResolveRequest struct {
	Instructions []string `json:"instructions" jsonschema:"circuit instructions, one per entry"`
	Signals      []string `json:"signals,omitempty" jsonschema:"signals to resolve, all defined signals when empty"`
}

type CheckRequest struct {
	ID           string   `json:"id,omitempty"`
	Instructions []string `json:"instructions" jsonschema:"circuit instructions, one per entry"`
	Target       string   `json:"target,omitempty" jsonschema:"signal that must be resolvable, defaults to a"`
}

// Output

type SolveResult struct {
	ID          string        `json:"id,omitempty"`
	Target      string        `json:"target"`
	Override    string        `json:"override,omitempty"`
	Part1       uint16        `json:"part1"`
	Part2       *uint16       `json:"part2,omitempty"`
	Signals     int           `json:"signals"`
	Evaluations int           `json:"evaluations"`
	Cached      bool          `json:"cached"`
	Duration    time.Duration `json:"duration_ns"`
}

type ResolveResult struct {
	Values      map[string]uint16 `json:"values"`
	Evaluations int               `json:"evaluations"`
}

// One static check's output
type CheckResult struct {
	Name     string        `json:"name"`
	Severity Severity      `json:"severity"`
	Findings []string      `json:"findings,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

type CheckReport struct {
	ID      string        `json:"id,omitempty"`
	Checks  []CheckResult `json:"checks"`
	Verdict Verdict       `json:"verdict"`
}
