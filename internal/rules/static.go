package rules

import (
	"context"
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "configs/rules.yaml"

// FileConfig is the YAML layout of the rules file.
type FileConfig struct {
	Defaults    map[string]any            `yaml:"defaults"`
	Communities map[string]map[string]any `yaml:"communities"`
}

// StaticProvider serves rule sets loaded once from a YAML file.
type StaticProvider struct {
	defaults    map[string]any
	communities map[string]RuleSet
}

func NewStaticProvider(cfg *FileConfig) *StaticProvider {
	p := &StaticProvider{
		defaults:    map[string]any{},
		communities: map[string]RuleSet{},
	}
	if cfg == nil {
		return p
	}

	maps.Copy(p.defaults, cfg.Defaults)
	for id, values := range cfg.Communities {
		merged := maps.Clone(p.defaults)
		maps.Copy(merged, values)
		p.communities[id] = NewRuleSet(merged)
	}
	return p
}

// LoadFileConfig reads the rules file named by RULES_CONFIG_PATH, falling back to configs/rules.yaml.
func LoadFileConfig() (*FileConfig, error) {
	path := os.Getenv("RULES_CONFIG_PATH")
	if path == "" {
		path = DefaultConfigPath
	}
	return LoadFileConfigFrom(path)
}

func LoadFileConfigFrom(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *FileConfig) {
	if cfg.Defaults == nil {
		cfg.Defaults = map[string]any{}
	}
	if cfg.Communities == nil {
		cfg.Communities = map[string]map[string]any{}
	}
}

func (c *FileConfig) Validate() error {
	for id := range c.Communities {
		if err := validateCommunityID(id); err != nil {
			return fmt.Errorf("rules file: %w: %q", err, id)
		}
	}
	return nil
}

func (p *StaticProvider) RuleSet(ctx context.Context, communityID string) (RuleSet, error) {
	if err := validateCommunityID(communityID); err != nil {
		return RuleSet{}, err
	}

	if ruleSet, ok := p.communities[communityID]; ok {
		return ruleSet, nil
	}
	return NewRuleSet(p.defaults), nil
}
