package generate

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/povarna/rpg-intake-agent/internal/models"
)

const systemPrompt = `You generate content for a text role-playing game.
Reply with a single JSON object and nothing else: no prose, no markdown fences.
Every user-facing name or description is a map from language code to text.`

var promptTemplates = map[models.ContentKind]*template.Template{
	models.ContentKindLocation: template.Must(template.New("location").Parse(
		`Create a new location for the game world.
{{if .Theme}}World theme: {{.Theme}}
{{end}}{{if .Hint}}The player is looking for: {{.Hint}}
{{end}}Languages: {{.LanguageList}}

Respond with exactly this shape:
{"new_location": {"name_i18n": {"<lang>": "<name>"}, "descriptions_i18n": {"<lang>": "<two or three sentences>"}}}`)),

	models.ContentKindNPC: template.Must(template.New("npc").Parse(
		`Create a new non-player character for the game world.
{{if .Theme}}World theme: {{.Theme}}
{{end}}{{if .Hint}}The character should fit: {{.Hint}}
{{end}}Languages: {{.LanguageList}}

Respond with exactly this shape:
{"new_npc": {"name_i18n": {"<lang>": "<name>"}, "description_i18n": {"<lang>": "<one or two sentences>"}}}`)),
}

type promptData struct {
	Theme        string
	Hint         string
	LanguageList string
}

func buildPrompt(req Request) (string, error) {
	tmpl, ok := promptTemplates[req.Kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}

	languages := req.Languages
	if len(languages) == 0 {
		languages = []string{"en"}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, promptData{
		Theme:        req.Theme,
		Hint:         req.Hint,
		LanguageList: strings.Join(languages, ", "),
	}); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}
	return buf.String(), nil
}

func repairPrompt(original string, previous string, reason string) string {
	return fmt.Sprintf(`%s

Your previous answer was rejected (%s):
%s

Answer again with a corrected JSON object only.`, original, reason, previous)
}
