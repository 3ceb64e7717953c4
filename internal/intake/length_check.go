package intake

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/povarna/rpg-intake-agent/internal/models"
	"github.com/povarna/rpg-intake-agent/internal/rules"
)

const (
	RuleMinTextLength = "intake.min_text_length"
	RuleMaxTextLength = "intake.max_text_length"
)

// LengthCheck bounds the rune length of every localized text in the known sections.
// A bound that is absent or not a positive number is not enforced.
type LengthCheck struct {
	sections []SectionRule
}

func NewLengthCheck() *LengthCheck {
	return &LengthCheck{sections: DefaultSections()}
}

func (c *LengthCheck) Name() string {
	return "length"
}

func (c *LengthCheck) Check(parsed models.ParsedResponse, ruleSet rules.RuleSet) *models.Failure {
	minLen := positiveInt(ruleSet.Get(RuleMinTextLength, nil))
	maxLen := positiveInt(ruleSet.Get(RuleMaxTextLength, nil))
	if minLen == 0 && maxLen == 0 {
		return nil
	}

	for _, section := range c.sections {
		value, ok := parsed[section.Key].(map[string]any)
		if !ok {
			continue
		}

		for _, field := range section.Fields {
			localized, _ := value[field].(map[string]any)

			codes := make([]string, 0, len(localized))
			for code := range localized {
				codes = append(codes, code)
			}
			sort.Strings(codes)

			for _, code := range codes {
				text, ok := localized[code].(string)
				if !ok {
					continue
				}

				n := utf8.RuneCountInString(text)
				switch {
				case minLen > 0 && n < minLen:
					return &models.Failure{
						Kind:   models.KindRuleViolation,
						Reason: fmt.Sprintf("Text too short for %s.%s[%s]: %d < %d", section.Key, field, code, n, minLen),
					}
				case maxLen > 0 && n > maxLen:
					return &models.Failure{
						Kind:   models.KindRuleViolation,
						Reason: fmt.Sprintf("Text too long for %s.%s[%s]: %d > %d", section.Key, field, code, n, maxLen),
					}
				}
			}
		}
	}

	return nil
}

// positiveInt reads YAML ints and JSON float64s alike.
func positiveInt(v any) int {
	switch n := v.(type) {
	case int:
		if n > 0 {
			return n
		}
	case int64:
		if n > 0 {
			return int(n)
		}
	case float64:
		if n > 0 {
			return int(n)
		}
	}
	return 0
}
