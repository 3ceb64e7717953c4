package intake

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/povarna/rpg-intake-agent/internal/models"
	"github.com/povarna/rpg-intake-agent/internal/rules"
	"github.com/rs/zerolog"
)

// ContentValidator validates one raw response against a community rule set
type ContentValidator interface {
	Validate(raw models.RawResponse, ruleSet rules.RuleSet) models.Outcome
}

// Publisher forwards intake results to downstream consumers
type Publisher interface {
	Publish(ctx context.Context, result models.IntakeResult) error
}

// Recorder records intake results in metrics
type Recorder interface {
	Observe(result models.IntakeResult)
}

type Service struct {
	rules     rules.Provider
	validator ContentValidator
	publisher Publisher
	recorder  Recorder
	logger    *zerolog.Logger
}

// NewService wires the intake pipeline. publisher and recorder may be nil.
func NewService(
	provider rules.Provider,
	validator ContentValidator,
	publisher Publisher,
	recorder Recorder,
	logger *zerolog.Logger,
) *Service {
	return &Service{
		rules:     provider,
		validator: validator,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
	}
}

// Intake resolves the community rules, validates the raw response and forwards the result.
// A rejected response is a normal result; the error is reserved for infrastructure failures.
func (s *Service) Intake(ctx context.Context, req models.IntakeRequest) (models.IntakeResult, error) {
	if req.EventID == "" {
		req.EventID = uuid.NewString()
	}

	s.logger.Info().
		Str("event_id", req.EventID).
		Str("community_id", req.CommunityID).
		Str("kind", string(req.Kind)).
		Msg("starting intake")

	ruleSet, err := s.rules.RuleSet(ctx, req.CommunityID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("event_id", req.EventID).
			Str("community_id", req.CommunityID).
			Msg("failed to resolve community rules")
		return models.IntakeResult{}, fmt.Errorf("resolve rules for community %s: %w", req.CommunityID, err)
	}

	now := time.Now()
	outcome := s.validator.Validate(models.RawResponse(req.Raw), ruleSet)
	result := models.NewIntakeResult(req, outcome, time.Since(now))

	if s.recorder != nil {
		s.recorder.Observe(result)
	}

	if result.Accepted {
		s.logger.Info().
			Str("event_id", result.EventID).
			Int("sections", len(result.Content)).
			Dur("duration", result.Duration).
			Msg("content accepted")
	} else {
		s.logger.Warn().
			Str("event_id", result.EventID).
			Str("failure_kind", string(result.Kind)).
			Str("reason", result.Reason).
			Msg("content rejected")
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, result); err != nil {
			s.logger.Error().Err(err).Str("event_id", result.EventID).Msg("failed to publish intake result")
			return result, fmt.Errorf("publish intake result %s: %w", result.EventID, err)
		}
	}

	return result, nil
}
