package intake

import (
	"testing"

	"github.com/povarna/rpg-intake-agent/internal/models"
	"github.com/povarna/rpg-intake-agent/internal/rules"
)

func TestLengthCheck(t *testing.T) {
	check := NewLengthCheck()

	npc := models.ParsedResponse{
		"new_npc": map[string]any{
			"name_i18n":        map[string]any{"en": "Old Man", "de": "Alter Mann"},
			"description_i18n": map[string]any{"en": "Bent and grey."},
		},
	}

	tests := []struct {
		name   string
		rules  map[string]any
		reason string
	}{
		{name: "no bounds", rules: nil},
		{name: "within bounds", rules: map[string]any{RuleMinTextLength: 3, RuleMaxTextLength: 40}},
		{
			name:   "too long",
			rules:  map[string]any{RuleMaxTextLength: 8},
			reason: "Text too long for new_npc.name_i18n[de]: 10 > 8",
		},
		{
			name:   "too short with json number",
			rules:  map[string]any{RuleMinTextLength: float64(8)},
			reason: "Text too short for new_npc.name_i18n[en]: 7 < 8",
		},
		{name: "non numeric bound ignored", rules: map[string]any{RuleMaxTextLength: "short"}},
		{name: "zero bound ignored", rules: map[string]any{RuleMaxTextLength: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failure := check.Check(npc, rules.NewRuleSet(tt.rules))
			if tt.reason == "" {
				if failure != nil {
					t.Errorf("expected no failure, got %q", failure.Reason)
				}
				return
			}
			if failure == nil {
				t.Fatalf("expected failure %q", tt.reason)
			}
			if failure.Reason != tt.reason || failure.Kind != models.KindRuleViolation {
				t.Errorf("got %+v, want reason %q", failure, tt.reason)
			}
		})
	}
}

func TestLengthCheck_CountsRunes(t *testing.T) {
	parsed := models.ParsedResponse{
		"new_location": map[string]any{
			"name_i18n":         map[string]any{"ja": "森"},
			"descriptions_i18n": map[string]any{"ja": "暗い森"},
		},
	}

	if failure := NewLengthCheck().Check(parsed, rules.NewRuleSet(map[string]any{RuleMaxTextLength: 3})); failure != nil {
		t.Errorf("multi-byte text within bound rejected: %q", failure.Reason)
	}
}
