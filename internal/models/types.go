package models

import (
	"time"
)

// RawResponse is the text returned by the generative content service.
type RawResponse string

// ParsedResponse is a decoded top-level JSON object.
type ParsedResponse map[string]any

type FailureKind string

const (
	KindMalformedPayload FailureKind = "malformed_payload"
	KindWrongShape       FailureKind = "wrong_shape"
	KindMissingField     FailureKind = "missing_field"
	KindRuleViolation    FailureKind = "rule_violation"
)

type Failure struct {
	Kind   FailureKind `json:"kind"`
	Reason string      `json:"reason"`
}

// ReasonInvalidOutcome is reported for an Outcome built without Accept or Reject.
const ReasonInvalidOutcome = "Invalid validation outcome"

// Outcome is either an accepted ParsedResponse or a Failure, never both.
// The zero value is not a valid outcome and reads as rejected; build one with
// Accept or Reject.
type Outcome struct {
	content ParsedResponse
	failure *Failure
}

func Accept(content ParsedResponse) Outcome {
	if content == nil {
		content = ParsedResponse{}
	}
	return Outcome{content: content}
}

func Reject(kind FailureKind, reason string) Outcome {
	return Outcome{failure: &Failure{Kind: kind, Reason: reason}}
}

func (o Outcome) Accepted() bool {
	return o.failure == nil && o.content != nil
}

// Content returns the accepted structure. ok is false for a rejected outcome.
func (o Outcome) Content() (ParsedResponse, bool) {
	if !o.Accepted() {
		return nil, false
	}
	return o.content, true
}

// Failure returns the rejection. ok is false for an accepted outcome.
func (o Outcome) Failure() (Failure, bool) {
	if o.failure != nil {
		return *o.failure, true
	}
	if o.content == nil {
		return Failure{Kind: KindMalformedPayload, Reason: ReasonInvalidOutcome}, true
	}
	return Failure{}, false
}

// Reason returns the human-readable rejection reason, or "" when accepted.
func (o Outcome) Reason() string {
	f, _ := o.Failure()
	return f.Reason
}

// Match forces the caller to handle both branches.
func (o Outcome) Match(onAccept func(ParsedResponse), onReject func(Failure)) {
	if f, rejected := o.Failure(); rejected {
		onReject(f)
		return
	}
	onAccept(o.content)
}

type ContentKind string

const (
	ContentKindLocation ContentKind = "location"
	ContentKindNPC      ContentKind = "npc"
)

// Input message

type IntakeRequest struct {
	EventID     string      `json:"event_id" jsonschema:"unique event identifier"`
	CommunityID string      `json:"community_id" jsonschema:"guild or community the content belongs to"`
	Kind        ContentKind `json:"kind,omitempty" jsonschema:"optional content kind hint: location or npc"`
	Raw         string      `json:"raw" jsonschema:"raw text produced by the content service"`
}

// Output of one intake pass
type IntakeResult struct {
	EventID     string         `json:"event_id"`
	CommunityID string         `json:"community_id"`
	Accepted    bool           `json:"accepted"`
	Kind        FailureKind    `json:"failure_kind,omitempty"`
	Reason      string         `json:"reason,omitempty"`
	Content     ParsedResponse `json:"content"`
	Duration    time.Duration  `json:"duration_ns"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewIntakeResult flattens an outcome into the wire result.
func NewIntakeResult(req IntakeRequest, outcome Outcome, duration time.Duration) IntakeResult {
	result := IntakeResult{
		EventID:     req.EventID,
		CommunityID: req.CommunityID,
		Duration:    duration,
		CreatedAt:   time.Now(),
	}

	outcome.Match(
		func(content ParsedResponse) {
			result.Accepted = true
			result.Content = content
		},
		func(f Failure) {
			result.Kind = f.Kind
			result.Reason = f.Reason
		},
	)

	return result
}
