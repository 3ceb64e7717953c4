package intake

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/povarna/rpg-intake-agent/internal/models"
	"github.com/povarna/rpg-intake-agent/internal/rules"
)

const (
	ReasonInvalidJSON = "Invalid JSON"
	ReasonNotObject   = "Response is not a JSON object"
)

// Validator decides whether AI-generated content may enter the game.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	sections       []SectionRule
	semanticChecks []SemanticCheck
	stripCodeFence bool
}

type Option func(*Validator)

// WithSemanticChecks registers checks that run after every structural check passed.
func WithSemanticChecks(checks ...SemanticCheck) Option {
	return func(v *Validator) {
		v.semanticChecks = append(v.semanticChecks, checks...)
	}
}

// WithCodeFenceStripping removes a surrounding ``` fence before decoding.
func WithCodeFenceStripping() Option {
	return func(v *Validator) {
		v.stripCodeFence = true
	}
}

func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		sections: DefaultSections(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Validator) Validate(raw models.RawResponse, ruleSet rules.RuleSet) models.Outcome {
	text := string(raw)
	if v.stripCodeFence {
		text = stripMarkdownCodeBlock(text)
	}

	decoded, err := decodeJSON(text)
	if err != nil {
		return models.Reject(models.KindMalformedPayload, ReasonInvalidJSON)
	}

	object, ok := decoded.(map[string]any)
	if !ok {
		return models.Reject(models.KindWrongShape, ReasonNotObject)
	}
	parsed := models.ParsedResponse(object)

	for _, section := range v.sections {
		if outcome, failed := section.check(parsed); failed {
			return outcome
		}
	}

	for _, check := range v.semanticChecks {
		if failure := check.Check(parsed, ruleSet); failure != nil {
			return models.Reject(failure.Kind, failure.Reason)
		}
	}

	return models.Accept(parsed)
}

// decodeJSON decodes exactly one JSON value. Numbers stay json.Number so large
// integers survive re-encoding unchanged.
func decodeJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, err
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}
	return decoded, nil
}

// stripMarkdownCodeBlock removes markdown code block formatting if present
func stripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)

	if !strings.HasPrefix(content, "```") {
		return content
	}

	firstNewline := strings.Index(content, "\n")
	if firstNewline == -1 {
		return content
	}

	closingBackticks := strings.LastIndex(content, "```")
	if closingBackticks <= firstNewline {
		return content
	}

	return strings.TrimSpace(content[firstNewline+1 : closingBackticks])
}
