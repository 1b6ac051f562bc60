package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
)

type Solver interface {
	Solve(ctx context.Context, req models.SolveRequest) (models.SolveResult, error)
	Resolve(ctx context.Context, req models.ResolveRequest) (models.ResolveResult, error)
	Check(ctx context.Context, req models.CheckRequest) (models.CheckReport, error)
}

// NewSolveHandler returns a tool handler that uses the given solver.
// Pass the returned function to mcp.AddTool.
func NewSolveHandler(solver Solver) mcp.ToolHandlerFor[SolveInput, models.SolveResult] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SolveInput) (*mcp.CallToolResult, models.SolveResult, error) {
		result, err := solver.Solve(ctx, models.SolveRequest{
			ID:           input.ID,
			Instructions: input.Instructions,
			Target:       input.Target,
			Override:     input.Override,
			SinglePart:   input.SinglePart,
		})
		return nil, result, err
	}
}

func NewResolveHandler(solver Solver) mcp.ToolHandlerFor[ResolveInput, models.ResolveResult] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ResolveInput) (*mcp.CallToolResult, models.ResolveResult, error) {
		result, err := solver.Resolve(ctx, models.ResolveRequest{
			Instructions: input.Instructions,
			Signals:      input.Signals,
		})
		return nil, result, err
	}
}

func NewCheckHandler(solver Solver) mcp.ToolHandlerFor[CheckInput, models.CheckReport] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CheckInput) (*mcp.CallToolResult, models.CheckReport, error) {
		report, err := solver.Check(ctx, models.CheckRequest{
			ID:           input.ID,
			Instructions: input.Instructions,
			Target:       input.Target,
		})
		return nil, report, err
	}
}
