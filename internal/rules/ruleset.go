package rules

import (
	"context"
	"errors"
	"maps"
	"strings"
)

var ErrInvalidCommunity = errors.New("invalid community id")

// Provider resolves the rule configuration of a community. Implementations are read-only.
type Provider interface {
	RuleSet(ctx context.Context, communityID string) (RuleSet, error)
}

// RuleSet is an immutable snapshot of one community's rules.
type RuleSet struct {
	values map[string]any
}

func NewRuleSet(values map[string]any) RuleSet {
	return RuleSet{values: maps.Clone(values)}
}

func Empty() RuleSet {
	return RuleSet{}
}

// Get returns the value stored under key, or def when the key is absent.
func (r RuleSet) Get(key string, def any) any {
	value, ok := r.values[key]
	if !ok {
		return def
	}
	return value
}

// Strings reads a list of strings. Non-string elements are skipped.
func (r RuleSet) Strings(key string) []string {
	switch v := r.values[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	default:
		return nil
	}
}

func (r RuleSet) Len() int {
	return len(r.values)
}

// Values returns a copy of the underlying map.
func (r RuleSet) Values() map[string]any {
	if r.values == nil {
		return map[string]any{}
	}
	return maps.Clone(r.values)
}

// GetRule is the single-key lookup used by callers that only need one setting.
func GetRule(ctx context.Context, provider Provider, communityID string, key string, def any) (any, error) {
	ruleSet, err := provider.RuleSet(ctx, communityID)
	if err != nil {
		return nil, err
	}
	return ruleSet.Get(key, def), nil
}

func validateCommunityID(communityID string) error {
	if strings.TrimSpace(communityID) == "" {
		return ErrInvalidCommunity
	}
	return nil
}
