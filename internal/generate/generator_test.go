package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/povarna/rpg-intake-agent/internal/generate/mocks"
	"github.com/povarna/rpg-intake-agent/internal/intake"
	"github.com/povarna/rpg-intake-agent/internal/llm"
	llmmocks "github.com/povarna/rpg-intake-agent/internal/llm/mocks"
	"github.com/povarna/rpg-intake-agent/internal/models"
	"github.com/povarna/rpg-intake-agent/internal/rules"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func newIntakeService() *intake.Service {
	return intake.NewService(rules.NewStaticProvider(nil), intake.NewValidator(), nil, nil, newTestLogger())
}

const validNPC = `{"new_npc": {"name_i18n": {"en": "Old Man"}, "description_i18n": {"en": "Bent and grey."}}}`

func TestGenerator_AcceptedFirstAttempt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := llmmocks.NewMockLLMClient(ctrl)
	mockRecorder := mocks.NewMockAttemptRecorder(ctrl)

	mockRecorder.EXPECT().ObserveAttempt(models.ContentKindNPC).Times(1)
	mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req llm.LLMRequest) (*llm.LLMResponse, error) {
			if !strings.Contains(req.Prompt, "non-player character") {
				t.Errorf("expected NPC prompt, got %q", req.Prompt)
			}
			if !strings.Contains(req.Prompt, "Languages: en, de") {
				t.Errorf("expected language list in prompt, got %q", req.Prompt)
			}
			if req.System == "" {
				t.Error("expected a system prompt")
			}
			return &llm.LLMResponse{Content: validNPC}, nil
		})

	generator := NewGenerator(mockLLM, newIntakeService(), mockRecorder, Config{}, newTestLogger())

	result, err := generator.Generate(context.Background(), Request{
		CommunityID: "guild-1",
		Kind:        models.ContentKindNPC,
		Languages:   []string{"en", "de"},
	})
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if result.Attempts != 1 {
		t.Errorf("Attempts: %d, want 1", result.Attempts)
	}
	if !result.Intake.Accepted {
		t.Errorf("expected accepted content, got %q", result.Intake.Reason)
	}
}

func TestGenerator_RepromptsWithReason(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := llmmocks.NewMockLLMClient(ctrl)

	gomock.InOrder(
		mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).
			Return(&llm.LLMResponse{Content: `{"new_npc": {"name_i18n": {"en": "Old Man"}}}`}, nil),
		mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req llm.LLMRequest) (*llm.LLMResponse, error) {
				if !strings.Contains(req.Prompt, "Missing required fields for new NPC") {
					t.Errorf("repair prompt should carry the rejection reason, got %q", req.Prompt)
				}
				return &llm.LLMResponse{Content: validNPC}, nil
			}),
	)

	generator := NewGenerator(mockLLM, newIntakeService(), nil, Config{MaxAttempts: 3}, newTestLogger())

	result, err := generator.Generate(context.Background(), Request{
		CommunityID: "guild-1",
		Kind:        models.ContentKindNPC,
	})
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if result.Attempts != 2 {
		t.Errorf("Attempts: %d, want 2", result.Attempts)
	}
}

func TestGenerator_GivesUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := llmmocks.NewMockLLMClient(ctrl)
	mockLLM.EXPECT().InvokeModelWithRetry(gomock.Any(), gomock.Any()).
		Return(&llm.LLMResponse{Content: "Sure! Here is a forest."}, nil).
		Times(2)

	generator := NewGenerator(mockLLM, newIntakeService(), nil, Config{MaxAttempts: 2, Retry: true}, newTestLogger())

	result, err := generator.Generate(context.Background(), Request{
		CommunityID: "guild-1",
		Kind:        models.ContentKindLocation,
	})
	if !errors.Is(err, ErrGenerationRejected) {
		t.Fatalf("expected ErrGenerationRejected, got %v", err)
	}
	if result.Attempts != 2 {
		t.Errorf("Attempts: %d, want 2", result.Attempts)
	}
	if result.Intake.Reason != intake.ReasonInvalidJSON {
		t.Errorf("Reason: %q, want %q", result.Intake.Reason, intake.ReasonInvalidJSON)
	}
}

func TestGenerator_LLMError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := llmmocks.NewMockLLMClient(ctrl)
	mockIntaker := mocks.NewMockIntaker(ctrl)

	llmErr := errors.New("AccessDeniedException")
	mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Return(nil, llmErr)

	generator := NewGenerator(mockLLM, mockIntaker, nil, Config{}, newTestLogger())

	_, err := generator.Generate(context.Background(), Request{
		CommunityID: "guild-1",
		Kind:        models.ContentKindLocation,
	})
	if !errors.Is(err, llmErr) {
		t.Errorf("expected wrapped LLM error, got %v", err)
	}
}

func TestGenerator_IntakeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := llmmocks.NewMockLLMClient(ctrl)
	mockIntaker := mocks.NewMockIntaker(ctrl)

	intakeErr := errors.New("rules store down")
	mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Return(&llm.LLMResponse{Content: validNPC}, nil)
	mockIntaker.EXPECT().Intake(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.IntakeRequest) (models.IntakeResult, error) {
			if req.CommunityID != "guild-1" || req.Kind != models.ContentKindNPC {
				t.Errorf("unexpected intake request %+v", req)
			}
			if !strings.HasPrefix(req.EventID, "evt-7-") {
				t.Errorf("attempt event id should derive from the request, got %q", req.EventID)
			}
			return models.IntakeResult{}, intakeErr
		})

	generator := NewGenerator(mockLLM, mockIntaker, nil, Config{}, newTestLogger())

	_, err := generator.Generate(context.Background(), Request{
		EventID:     "evt-7",
		CommunityID: "guild-1",
		Kind:        models.ContentKindNPC,
	})
	if !errors.Is(err, intakeErr) {
		t.Errorf("expected intake error, got %v", err)
	}
}

func TestGenerator_UnknownKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	generator := NewGenerator(llmmocks.NewMockLLMClient(ctrl), mocks.NewMockIntaker(ctrl), nil, Config{}, newTestLogger())

	_, err := generator.Generate(context.Background(), Request{
		CommunityID: "guild-1",
		Kind:        "dragon",
	})
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestGenerator_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	generator := NewGenerator(llmmocks.NewMockLLMClient(ctrl), mocks.NewMockIntaker(ctrl), nil, Config{}, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := generator.Generate(ctx, Request{
		CommunityID: "guild-1",
		Kind:        models.ContentKindNPC,
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGenerator_RepromptsOnWrongSection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := llmmocks.NewMockLLMClient(ctrl)

	gomock.InOrder(
		mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).
			Return(&llm.LLMResponse{Content: validNPC}, nil),
		mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req llm.LLMRequest) (*llm.LLMResponse, error) {
				if !strings.Contains(req.Prompt, "Missing required section new_location") {
					t.Errorf("repair prompt should name the missing section, got %q", req.Prompt)
				}
				return &llm.LLMResponse{Content: `{}`}, nil
			}),
	)

	generator := NewGenerator(mockLLM, newIntakeService(), nil, Config{MaxAttempts: 2}, newTestLogger())

	result, err := generator.Generate(context.Background(), Request{
		CommunityID: "guild-1",
		Kind:        models.ContentKindLocation,
	})
	if !errors.Is(err, ErrGenerationRejected) {
		t.Fatalf("expected ErrGenerationRejected, got %v", err)
	}
	if result.Intake.Accepted || result.Intake.Content != nil {
		t.Errorf("content without a location should not be accepted: %+v", result.Intake)
	}
	if result.Intake.Kind != models.KindMissingField || result.Intake.Reason != "Missing required section new_location" {
		t.Errorf("unexpected failure %q/%q", result.Intake.Kind, result.Intake.Reason)
	}
	if result.Attempts != 2 {
		t.Errorf("Attempts: %d, want 2", result.Attempts)
	}
}
