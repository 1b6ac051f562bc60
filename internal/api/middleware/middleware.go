package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
	"github.com/rs/zerolog/log"
)

type ErrorResponse struct {
	Error  string              `json:"error"`
	Status int                 `json:"status"`
	Report *models.CheckReport `json:"report,omitempty"`
}

func HandleError(resp *restful.Response, err error, status int) {
	resp.WriteHeaderAndEntity(status, ErrorResponse{
		Error:  err.Error(),
		Status: status,
	})
}

// HandleCheckFailure answers with the report that caused a program to be refused.
func HandleCheckFailure(resp *restful.Response, err error, report models.CheckReport) {
	resp.WriteHeaderAndEntity(http.StatusUnprocessableEntity, ErrorResponse{
		Error:  err.Error(),
		Status: http.StatusUnprocessableEntity,
		Report: &report,
	})
}

// Logger logs one line per request.
func Logger(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	start := time.Now()
	chain.ProcessFilter(req, resp)

	log.Info().
		Str("method", req.Request.Method).
		Str("path", req.Request.URL.Path).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("Request handled")
}

// RecoverPanic turns a panicking handler into a 500 response.
func RecoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("path", req.Request.URL.Path).
				Msg("Recovered from panic")
			HandleError(resp, fmt.Errorf("internal error"), http.StatusInternalServerError)
		}
	}()
	chain.ProcessFilter(req, resp)
}
