package mcpadapter

import (
	"context"
	"errors"
	"testing"

	"github.com/povarna/rpg-intake-agent/internal/generate"
	"github.com/povarna/rpg-intake-agent/internal/intake"
	"github.com/povarna/rpg-intake-agent/internal/models"
	"github.com/povarna/rpg-intake-agent/internal/rules"
	"github.com/rs/zerolog"
)

func TestValidateHandler(t *testing.T) {
	logger := zerolog.Nop()
	service := intake.NewService(rules.NewStaticProvider(nil), intake.NewValidator(), nil, nil, &logger)
	handler := NewValidateHandler(service)

	tests := []struct {
		name     string
		raw      string
		accepted bool
		reason   string
	}{
		{name: "empty object", raw: `{}`, accepted: true},
		{name: "prose", raw: `The forest is dark.`, reason: "Invalid JSON"},
		{name: "array", raw: `[]`, reason: "Response is not a JSON object"},
		{name: "empty location", raw: `{"new_location": {}}`, reason: "Missing required fields for new location"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			callResult, result, err := handler(context.Background(), nil, ValidateInput{
				EventID:     "evt-1",
				CommunityID: "guild-1",
				Raw:         tt.raw,
			})
			if err != nil {
				t.Fatalf("handler failed: %v", err)
			}
			if callResult != nil {
				t.Error("expected structured output only")
			}
			if result.Accepted != tt.accepted || result.Reason != tt.reason {
				t.Errorf("got accepted=%v reason=%q, want accepted=%v reason=%q", result.Accepted, result.Reason, tt.accepted, tt.reason)
			}
		})
	}
}

func TestValidateHandler_InvalidCommunity(t *testing.T) {
	logger := zerolog.Nop()
	service := intake.NewService(rules.NewStaticProvider(nil), intake.NewValidator(), nil, nil, &logger)

	_, _, err := NewValidateHandler(service)(context.Background(), nil, ValidateInput{Raw: "{}"})
	if !errors.Is(err, rules.ErrInvalidCommunity) {
		t.Errorf("expected ErrInvalidCommunity, got %v", err)
	}
}

type generatorFunc func(ctx context.Context, req generate.Request) (generate.Result, error)

func (f generatorFunc) Generate(ctx context.Context, req generate.Request) (generate.Result, error) {
	return f(ctx, req)
}

func TestGenerateHandler(t *testing.T) {
	var got generate.Request
	handler := NewGenerateHandler(generatorFunc(func(ctx context.Context, req generate.Request) (generate.Result, error) {
		got = req
		return generate.Result{Attempts: 2, Intake: models.IntakeResult{Accepted: true}}, nil
	}))

	_, result, err := handler(context.Background(), nil, GenerateInput{
		CommunityID: "guild-1",
		Kind:        "npc",
		Theme:       "grimdark",
		Languages:   []string{"en", "fr"},
	})
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if got.Kind != models.ContentKindNPC || got.Theme != "grimdark" || len(got.Languages) != 2 {
		t.Errorf("unexpected generate request %+v", got)
	}
	if result.Attempts != 2 || !result.Intake.Accepted {
		t.Errorf("unexpected result %+v", result)
	}
}
