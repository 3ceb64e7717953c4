package intake

import (
	"github.com/povarna/rpg-intake-agent/internal/models"
	"github.com/povarna/rpg-intake-agent/internal/rules"
)

const (
	SectionNewLocation = "new_location"
	SectionNewNPC      = "new_npc"

	FieldName                = "name_i18n"
	FieldLocationDescription = "descriptions_i18n"
	FieldNPCDescription      = "description_i18n"
)

// SectionRule requires Fields inside the object stored under Key, when Key is present.
type SectionRule struct {
	Key    string
	Fields []string
	Reason string
}

// DefaultSections lists the content sections the game accepts, in check order.
func DefaultSections() []SectionRule {
	return []SectionRule{
		{
			Key:    SectionNewLocation,
			Fields: []string{FieldName, FieldLocationDescription},
			Reason: "Missing required fields for new location",
		},
		{
			Key:    SectionNewNPC,
			Fields: []string{FieldName, FieldNPCDescription},
			Reason: "Missing required fields for new NPC",
		},
	}
}

func (s SectionRule) check(parsed models.ParsedResponse) (models.Outcome, bool) {
	value, present := parsed[s.Key]
	if !present {
		return models.Outcome{}, false
	}

	// A section that is not an object carries none of the fields.
	section, _ := value.(map[string]any)
	for _, field := range s.Fields {
		if _, ok := section[field]; !ok {
			return models.Reject(models.KindMissingField, s.Reason), true
		}
	}
	return models.Outcome{}, false
}

// SemanticCheck inspects structurally valid content against the community rules.
// A nil return accepts the content.
type SemanticCheck interface {
	Name() string
	Check(parsed models.ParsedResponse, ruleSet rules.RuleSet) *models.Failure
}
