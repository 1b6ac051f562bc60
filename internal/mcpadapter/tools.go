package mcpadapter

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	SolveToolName   = "solve_circuit"
	ResolveToolName = "resolve_signals"
	CheckToolName   = "check_circuit"
)

// SolveInput is the MCP tool input schema (matches HTTP API field names).
type SolveInput struct {
	ID           string   `json:"id,omitempty" jsonschema:"optional identifier echoed in the result"`
	Instructions []string `json:"instructions" jsonschema:"circuit instructions such as 'x AND y -> d', one per entry"`
	Target       string   `json:"target,omitempty" jsonschema:"signal to resolve, defaults to a"`
	Override     string   `json:"override,omitempty" jsonschema:"signal driven with the first answer before the second phase, defaults to b"`
	SinglePart   bool     `json:"single_part,omitempty" jsonschema:"skip the override phase"`
}

type ResolveInput struct {
	Instructions []string `json:"instructions" jsonschema:"circuit instructions, one per entry"`
	Signals      []string `json:"signals,omitempty" jsonschema:"signals to resolve, every defined signal when empty"`
}

type CheckInput struct {
	ID           string   `json:"id,omitempty" jsonschema:"optional identifier echoed in the report"`
	Instructions []string `json:"instructions" jsonschema:"circuit instructions, one per entry"`
	Target       string   `json:"target,omitempty" jsonschema:"signal that must be resolvable, defaults to a"`
}

// NewServer registers the circuit tools on a fresh MCP server.
func NewServer(solver Solver, version string) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "circuit-eval",
			Version: version,
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        SolveToolName,
		Description: "Resolve the target signal of a 16-bit logic circuit, then resolve it again with the override signal driven by the first answer",
	}, NewSolveHandler(solver))

	mcp.AddTool(server, &mcp.Tool{
		Name:        ResolveToolName,
		Description: "Resolve the listed signals of a logic circuit, or every defined signal when none are listed",
	}, NewResolveHandler(solver))

	mcp.AddTool(server, &mcp.Tool{
		Name:        CheckToolName,
		Description: "Report undefined signals, cycles and redefinitions in a logic circuit without evaluating it",
	}, NewCheckHandler(solver))

	return server
}
