package intake

import (
	"fmt"
	"sort"

	"github.com/povarna/rpg-intake-agent/internal/models"
	"github.com/povarna/rpg-intake-agent/internal/rules"
	"golang.org/x/text/language"
)

// RuleRequiredLanguages lists the BCP 47 tags every multilingual field must provide.
const RuleRequiredLanguages = "intake.required_languages"

// LanguageCheck requires each multilingual field of the known sections to carry
// every language the community lists under intake.required_languages.
// Communities without that rule are not affected.
type LanguageCheck struct {
	sections []SectionRule
}

func NewLanguageCheck() *LanguageCheck {
	return &LanguageCheck{sections: DefaultSections()}
}

func (c *LanguageCheck) Name() string {
	return "languages"
}

func (c *LanguageCheck) Check(parsed models.ParsedResponse, ruleSet rules.RuleSet) *models.Failure {
	required := canonicalTags(ruleSet.Strings(RuleRequiredLanguages))
	if len(required) == 0 {
		return nil
	}

	for _, section := range c.sections {
		value, ok := parsed[section.Key].(map[string]any)
		if !ok {
			continue
		}

		for _, field := range section.Fields {
			localized, _ := value[field].(map[string]any)
			present := canonicalKeys(localized)

			var missing []string
			for _, tag := range required {
				if !present[tag] {
					missing = append(missing, tag)
				}
			}

			if len(missing) > 0 {
				sort.Strings(missing)
				return &models.Failure{
					Kind:   models.KindRuleViolation,
					Reason: fmt.Sprintf("Missing required languages for %s: %v", section.Key, missing),
				}
			}
		}
	}

	return nil
}

func canonicalTags(codes []string) []string {
	var tags []string
	seen := map[string]bool{}
	for _, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		name := tag.String()
		if !seen[name] {
			seen[name] = true
			tags = append(tags, name)
		}
	}
	return tags
}

func canonicalKeys(localized map[string]any) map[string]bool {
	present := make(map[string]bool, len(localized))
	for code, text := range localized {
		if s, ok := text.(string); !ok || s == "" {
			continue
		}
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		present[tag.String()] = true
	}
	return present
}
