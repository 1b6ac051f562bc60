package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/circuit"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/solver"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/wiring"
	"github.com/rs/zerolog"
)

type Solver interface {
	Solve(ctx context.Context, req models.SolveRequest) (models.SolveResult, error)
	Resolve(ctx context.Context, req models.ResolveRequest) (models.ResolveResult, error)
	Check(ctx context.Context, req models.CheckRequest) (models.CheckReport, error)
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type Handler struct {
	solver Solver
	logger *zerolog.Logger
}

func NewHandler(solver Solver, logger *zerolog.Logger) *Handler {
	return &Handler{
		solver: solver,
		logger: logger,
	}
}

// POST /api/v1/solve
// Body: SolveRequest
// Returns: SolveResult
func (h *Handler) Solve(req *restful.Request, resp *restful.Response) {
	var solveRequest models.SolveRequest
	if err := req.ReadEntity(&solveRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}
	if solveRequest.ID == "" {
		solveRequest.ID = uuid.NewString()
	}

	h.logger.Info().
		Str("id", solveRequest.ID).
		Int("instructions", len(solveRequest.Instructions)).
		Str("target", solveRequest.Target).
		Msg("Start solve")

	result, err := h.solver.Solve(req.Request.Context(), solveRequest)
	if err != nil {
		h.writeError(resp, err)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /api/v1/resolve
func (h *Handler) Resolve(req *restful.Request, resp *restful.Response) {
	var resolveRequest models.ResolveRequest
	if err := req.ReadEntity(&resolveRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	result, err := h.solver.Resolve(req.Request.Context(), resolveRequest)
	if err != nil {
		h.writeError(resp, err)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /api/v1/check
func (h *Handler) Check(req *restful.Request, resp *restful.Response) {
	var checkRequest models.CheckRequest
	if err := req.ReadEntity(&checkRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}
	if checkRequest.ID == "" {
		checkRequest.ID = uuid.NewString()
	}

	report, err := h.solver.Check(req.Request.Context(), checkRequest)
	if err != nil {
		h.writeError(resp, err)
		return
	}

	h.logger.Info().Str("id", report.ID).Str("verdict", string(report.Verdict)).Msg("Check complete")
	resp.WriteHeaderAndEntity(http.StatusOK, report)
}

// Health handler GET API /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}

func (h *Handler) writeError(resp *restful.Response, err error) {
	var checksErr *solver.ChecksFailedError
	if errors.As(err, &checksErr) {
		h.logger.Info().Err(err).Msg("Program refused by static checks")
		middleware.HandleCheckFailure(resp, err, checksErr.Report)
		return
	}

	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg("Request failed")
	} else {
		h.logger.Info().Err(err).Int("status", status).Msg("Request rejected")
	}
	middleware.HandleError(resp, err, status)
}

// StatusFor maps solver errors to HTTP status codes.
func StatusFor(err error) int {
	var parseErr *wiring.ParseError
	switch {
	case errors.As(err, &parseErr), errors.Is(err, solver.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, circuit.ErrUndefinedSignal),
		errors.Is(err, circuit.ErrCyclicDefinition),
		errors.Is(err, solver.ErrChecksFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
