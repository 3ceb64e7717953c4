package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/rpg-intake-agent/internal/generate"
	"github.com/povarna/rpg-intake-agent/internal/models"
)

// ValidateInput is the MCP tool input schema (matches HTTP API field names).
type ValidateInput struct {
	EventID     string `json:"event_id,omitempty" jsonschema:"unique event identifier"`
	CommunityID string `json:"community_id" jsonschema:"guild or community the content belongs to"`
	Raw         string `json:"raw" jsonschema:"raw text produced by the content service"`
}

// GenerateInput is the MCP tool input schema for generating content.
type GenerateInput struct {
	CommunityID string   `json:"community_id" jsonschema:"guild or community the content is for"`
	Kind        string   `json:"kind" jsonschema:"content kind: location or npc"`
	Theme       string   `json:"theme,omitempty" jsonschema:"optional world theme"`
	Hint        string   `json:"hint,omitempty" jsonschema:"optional free-text hint"`
	Languages   []string `json:"languages,omitempty" jsonschema:"language codes to generate, default en"`
}

type Intaker interface {
	Intake(ctx context.Context, req models.IntakeRequest) (models.IntakeResult, error)
}

type ContentGenerator interface {
	Generate(ctx context.Context, req generate.Request) (generate.Result, error)
}

// NewValidateHandler returns a tool handler that uses the given intake service.
// Pass the returned function to mcp.AddTool.
func NewValidateHandler(intaker Intaker) func(context.Context, *mcp.CallToolRequest, ValidateInput) (*mcp.CallToolResult, models.IntakeResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ValidateInput) (*mcp.CallToolResult, models.IntakeResult, error) {
		return ValidateResponse(ctx, intaker, req, input)
	}
}

// ValidateResponse runs intake and returns the result. A rejected response is not a tool error.
func ValidateResponse(
	ctx context.Context,
	intaker Intaker,
	req *mcp.CallToolRequest,
	input ValidateInput,
) (*mcp.CallToolResult, models.IntakeResult, error) {
	result, err := intaker.Intake(ctx, models.IntakeRequest{
		EventID:     input.EventID,
		CommunityID: input.CommunityID,
		Raw:         input.Raw,
	})
	return nil, result, err
}

// NewGenerateHandler returns a tool handler for content generation.
// Pass the returned function to mcp.AddTool.
func NewGenerateHandler(generator ContentGenerator) func(context.Context, *mcp.CallToolRequest, GenerateInput) (*mcp.CallToolResult, generate.Result, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GenerateInput) (*mcp.CallToolResult, generate.Result, error) {
		return GenerateContent(ctx, generator, req, input)
	}
}

// GenerateContent prompts for new content until intake accepts it or attempts run out.
func GenerateContent(
	ctx context.Context,
	generator ContentGenerator,
	req *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, generate.Result, error) {
	result, err := generator.Generate(ctx, generate.Request{
		CommunityID: input.CommunityID,
		Kind:        models.ContentKind(input.Kind),
		Theme:       input.Theme,
		Hint:        input.Hint,
		Languages:   input.Languages,
	})
	return nil, result, err
}
