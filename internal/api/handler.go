package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/rpg-intake-agent/internal/api/middleware"
	"github.com/povarna/rpg-intake-agent/internal/generate"
	"github.com/povarna/rpg-intake-agent/internal/models"
	"github.com/povarna/rpg-intake-agent/internal/rules"
	"github.com/rs/zerolog"
)

var errGeneratorDisabled = errors.New("content generation is not configured")

type Intaker interface {
	Intake(ctx context.Context, req models.IntakeRequest) (models.IntakeResult, error)
}

type ContentGenerator interface {
	Generate(ctx context.Context, req generate.Request) (generate.Result, error)
}

type Handler struct {
	intaker   Intaker
	rules     rules.Provider
	generator ContentGenerator
	logger    *zerolog.Logger
}

// NewHandler builds the API handler. generator may be nil when no LLM provider is configured.
func NewHandler(intaker Intaker, provider rules.Provider, generator ContentGenerator, logger *zerolog.Logger) *Handler {
	return &Handler{
		intaker:   intaker,
		rules:     provider,
		generator: generator,
		logger:    logger,
	}
}

// POST /api/v1/intake
// Body: IntakeRequest
// Returns: IntakeResult, a rejection is a 200 with accepted=false
func (h *Handler) Intake(req *restful.Request, resp *restful.Response) {
	var intakeRequest models.IntakeRequest
	if err := req.ReadEntity(&intakeRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(intakeRequest.CommunityID) == "" {
		middleware.HandleError(resp, middleware.ErrMissingCommunity, http.StatusBadRequest)
		return
	}

	result, err := h.intaker.Intake(req.Request.Context(), intakeRequest)
	if err != nil {
		h.logger.Error().Err(err).Str("event_id", intakeRequest.EventID).Msg("Intake failed")
		middleware.HandleError(resp, err, statusFor(err))
		return
	}

	_ = resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// GET /api/v1/communities/{community_id}/rules
func (h *Handler) Rules(req *restful.Request, resp *restful.Response) {
	communityID := req.PathParameter("community_id")

	ruleSet, err := h.rules.RuleSet(req.Request.Context(), communityID)
	if err != nil {
		h.logger.Error().Err(err).Str("community_id", communityID).Msg("Failed to resolve rules")
		middleware.HandleError(resp, err, statusFor(err))
		return
	}

	_ = resp.WriteHeaderAndEntity(http.StatusOK, RulesResponse{
		CommunityID: communityID,
		Rules:       ruleSet.Values(),
	})
}

// POST /api/v1/generate/{kind}
// Body: GenerateRequest
// Returns: generate.Result, 422 with the last rejection when every attempt was rejected
func (h *Handler) Generate(req *restful.Request, resp *restful.Response) {
	if h.generator == nil {
		middleware.HandleError(resp, errGeneratorDisabled, http.StatusServiceUnavailable)
		return
	}

	kind := models.ContentKind(req.PathParameter("kind"))
	if kind != models.ContentKindLocation && kind != models.ContentKindNPC {
		middleware.HandleError(resp, middleware.ErrUnsupportedKind, http.StatusNotFound)
		return
	}

	var body GenerateRequest
	if err := req.ReadEntity(&body); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("community_id", body.CommunityID).
		Str("kind", string(kind)).
		Msg("Start generation")

	result, err := h.generator.Generate(req.Request.Context(), generate.Request{
		EventID:     body.EventID,
		CommunityID: body.CommunityID,
		Kind:        kind,
		Theme:       body.Theme,
		Hint:        body.Hint,
		Languages:   body.Languages,
	})
	if err != nil {
		if errors.Is(err, generate.ErrGenerationRejected) {
			_ = resp.WriteHeaderAndEntity(http.StatusUnprocessableEntity, result)
			return
		}
		h.logger.Error().Err(err).Str("kind", string(kind)).Msg("Generation failed")
		middleware.HandleError(resp, err, statusFor(err))
		return
	}

	_ = resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// Health handler GET API /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	_ = resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, rules.ErrInvalidCommunity):
		return http.StatusBadRequest
	case errors.Is(err, generate.ErrUnknownKind):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
