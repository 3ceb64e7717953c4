package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/povarna/rpg-intake-agent/internal/api/middleware"
	"github.com/povarna/rpg-intake-agent/internal/generate"
	"github.com/povarna/rpg-intake-agent/internal/models"
)

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
		Route(ws.POST("/intake").
			To(handler.Intake).
			Doc("Validate a generated content response").
			Metadata(restfulspec.KeyOpenAPITags, []string{"intake"}).
			Reads(models.IntakeRequest{}).
			Writes(models.IntakeResult{}).
			Returns(200, "OK", models.IntakeResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/communities/{community_id}/rules").
			To(handler.Rules).
			Doc("Resolved rules for a community").
			Metadata(restfulspec.KeyOpenAPITags, []string{"rules"}).
			Param(ws.PathParameter("community_id", "Community identifier").DataType("string")).
			Writes(RulesResponse{}).
			Returns(200, "OK", RulesResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/generate/{kind}").
			To(handler.Generate).
			Doc("Generate content and run it through intake").
			Metadata(restfulspec.KeyOpenAPITags, []string{"generate"}).
			Param(ws.PathParameter("kind", "Content kind (location, npc)").DataType("string")).
			Reads(GenerateRequest{}).
			Writes(generate.Result{}).
			Returns(200, "OK", generate.Result{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(404, "Unknown Kind", middleware.ErrorResponse{}).
			Returns(422, "Content Rejected", generate.Result{}).
			Returns(503, "Generation Disabled", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}

// RegisterOpenAPI serves the swagger document for every web service already in container.
func RegisterOpenAPI(container *restful.Container) {
	config := restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       "/apidocs.json",
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}

	container.Add(restfulspec.NewOpenAPIService(config))
}

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "RPG Intake Agent API",
			Description: "Validates AI-generated locations and NPCs before they enter the game world",
			Version:     "1.0.0",
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "health", Description: "Health checks"}},
		{TagProps: spec.TagProps{Name: "intake", Description: "Response validation"}},
		{TagProps: spec.TagProps{Name: "rules", Description: "Community rules"}},
		{TagProps: spec.TagProps{Name: "generate", Description: "Content generation"}},
	}
}
