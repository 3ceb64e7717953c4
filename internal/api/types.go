package api

type HealthResponse struct {
	Status  string `json:"status" description:"Service status"`
	Version string `json:"version" description:"API version"`
}

type RulesResponse struct {
	CommunityID string         `json:"community_id" description:"Community the rules belong to"`
	Rules       map[string]any `json:"rules" description:"Resolved community rules"`
}

// GenerateRequest is the body of POST /api/v1/generate/{kind}; the kind comes from the path.
type GenerateRequest struct {
	EventID     string   `json:"event_id,omitempty" description:"Optional event identifier"`
	CommunityID string   `json:"community_id" description:"Community the content is for"`
	Theme       string   `json:"theme,omitempty" description:"World theme"`
	Hint        string   `json:"hint,omitempty" description:"Free-text hint"`
	Languages   []string `json:"languages,omitempty" description:"Language codes to generate"`
}
