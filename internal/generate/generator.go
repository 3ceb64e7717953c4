package generate

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/povarna/rpg-intake-agent/internal/intake"
	"github.com/povarna/rpg-intake-agent/internal/llm"
	"github.com/povarna/rpg-intake-agent/internal/models"
	"github.com/rs/zerolog"
)

var (
	ErrGenerationRejected = errors.New("generated content rejected")
	ErrUnknownKind        = errors.New("unknown content kind")
)

// Intaker validates generated text for a community
type Intaker interface {
	Intake(ctx context.Context, req models.IntakeRequest) (models.IntakeResult, error)
}

// AttemptRecorder counts prompts sent to the content service
type AttemptRecorder interface {
	ObserveAttempt(kind models.ContentKind)
}

type Request struct {
	EventID     string             `json:"event_id,omitempty" jsonschema:"optional event identifier"`
	CommunityID string             `json:"community_id" jsonschema:"guild or community the content is for"`
	Kind        models.ContentKind `json:"kind" jsonschema:"content kind: location or npc"`
	Theme       string             `json:"theme,omitempty" jsonschema:"optional world theme"`
	Hint        string             `json:"hint,omitempty" jsonschema:"optional free-text hint from the player"`
	Languages   []string           `json:"languages,omitempty" jsonschema:"language codes to generate, default en"`
}

type Result struct {
	Intake   models.IntakeResult `json:"intake"`
	Attempts int                 `json:"attempts"`
}

type Config struct {
	MaxAttempts int
	MaxTokens   int
	Temperature float64
	Retry       bool
}

func applyDefaults(cfg *Config) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 512
	}
}

// Generator prompts the content service and re-prompts with the rejection reason
// until the intake gate accepts the answer or attempts run out.
type Generator struct {
	llmClient llm.LLMClient
	intake    Intaker
	recorder  AttemptRecorder
	cfg       Config
	logger    *zerolog.Logger
}

func NewGenerator(llmClient llm.LLMClient, intake Intaker, recorder AttemptRecorder, cfg Config, logger *zerolog.Logger) *Generator {
	applyDefaults(&cfg)
	return &Generator{
		llmClient: llmClient,
		intake:    intake,
		recorder:  recorder,
		cfg:       cfg,
		logger:    logger,
	}
}

func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	basePrompt, err := buildPrompt(req)
	if err != nil {
		return Result{}, err
	}

	if req.EventID == "" {
		req.EventID = uuid.NewString()
	}

	prompt := basePrompt
	var last models.IntakeResult

	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Result{Intake: last, Attempts: attempt - 1}, err
		}

		if g.recorder != nil {
			g.recorder.ObserveAttempt(req.Kind)
		}

		resp, err := g.invoke(ctx, prompt)
		if err != nil {
			g.logger.Error().
				Err(err).
				Str("event_id", req.EventID).
				Int("attempt", attempt).
				Msg("LLM call failed")
			return Result{Intake: last, Attempts: attempt}, fmt.Errorf("generate %s: %w", req.Kind, err)
		}

		last, err = g.intake.Intake(ctx, models.IntakeRequest{
			EventID:     fmt.Sprintf("%s-%d", req.EventID, attempt),
			CommunityID: req.CommunityID,
			Kind:        req.Kind,
			Raw:         resp.Content,
		})
		if err != nil {
			return Result{Intake: last, Attempts: attempt}, err
		}

		if last.Accepted {
			last = requireSection(last, req.Kind)
		}

		if last.Accepted {
			g.logger.Info().
				Str("event_id", req.EventID).
				Str("kind", string(req.Kind)).
				Int("attempts", attempt).
				Msg("generated content accepted")
			return Result{Intake: last, Attempts: attempt}, nil
		}

		g.logger.Warn().
			Str("event_id", req.EventID).
			Int("attempt", attempt).
			Str("reason", last.Reason).
			Msg("generated content rejected, re-prompting")

		prompt = repairPrompt(basePrompt, resp.Content, last.Reason)
	}

	return Result{Intake: last, Attempts: g.cfg.MaxAttempts},
		fmt.Errorf("%w after %d attempts: %s", ErrGenerationRejected, g.cfg.MaxAttempts, last.Reason)
}

var kindSections = map[models.ContentKind]string{
	models.ContentKindLocation: intake.SectionNewLocation,
	models.ContentKindNPC:      intake.SectionNewNPC,
}

// requireSection rejects accepted content that lacks the section for the requested kind.
func requireSection(result models.IntakeResult, kind models.ContentKind) models.IntakeResult {
	section := kindSections[kind]
	if _, ok := result.Content[section]; ok {
		return result
	}

	result.Accepted = false
	result.Content = nil
	result.Kind = models.KindMissingField
	result.Reason = fmt.Sprintf("Missing required section %s", section)
	return result
}

func (g *Generator) invoke(ctx context.Context, prompt string) (*llm.LLMResponse, error) {
	request := llm.LLMRequest{
		System:      systemPrompt,
		Prompt:      prompt,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}
	if g.cfg.Retry {
		return g.llmClient.InvokeModelWithRetry(ctx, request)
	}
	return g.llmClient.InvokeModel(ctx, request)
}
