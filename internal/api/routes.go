package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
)

const APIDocsPath = "/apidocs.json"

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/solve").
			To(handler.Solve).
			Doc("Resolve the target signal, then re-resolve it with the override signal driven by the first answer").
			Metadata(restfulspec.KeyOpenAPITags, []string{"circuit"}).
			Reads(models.SolveRequest{}).
			Writes(models.SolveResult{}).
			Returns(200, "OK", models.SolveResult{}).
			Returns(400, "Malformed Instructions", middleware.ErrorResponse{}).
			Returns(422, "Unresolvable Circuit", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/resolve").
			To(handler.Resolve).
			Doc("Resolve a list of signals, or every defined signal").
			Metadata(restfulspec.KeyOpenAPITags, []string{"circuit"}).
			Reads(models.ResolveRequest{}).
			Writes(models.ResolveResult{}).
			Returns(200, "OK", models.ResolveResult{}).
			Returns(400, "Malformed Instructions", middleware.ErrorResponse{}).
			Returns(422, "Unresolvable Circuit", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/check").
			To(handler.Check).
			Doc("Run the static checks without evaluating").
			Metadata(restfulspec.KeyOpenAPITags, []string{"circuit"}).
			Reads(models.CheckRequest{}).
			Writes(models.CheckReport{}).
			Returns(200, "OK", models.CheckReport{}).
			Returns(400, "Malformed Instructions", middleware.ErrorResponse{}))

	container.Add(ws)
}

// RegisterAPIDocs serves the OpenAPI description of every registered web service.
func RegisterAPIDocs(container *restful.Container) {
	config := restfulspec.Config{
		WebServices: container.RegisteredWebServices(),
		APIPath:     APIDocsPath,
		PostBuildSwaggerObjectHandler: func(swo *spec.Swagger) {
			swo.Info = &spec.Info{
				InfoProps: spec.InfoProps{
					Title:       "Circuit Eval API",
					Description: "Evaluates 16-bit logic circuits described by wiring instructions",
					Version:     "1.0.0",
				},
			}
		},
	}
	container.Add(restfulspec.NewOpenAPIService(config))
}
