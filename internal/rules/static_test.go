package rules

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFileConfig_Success(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "rules.yaml")

	configContent := `defaults:
  language: en
  max_npcs_per_location: 4

communities:
  "123456789":
    language: de
    intake.required_languages: [en, de]
  "987654321":
    theme: cyberpunk
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	t.Setenv("RULES_CONFIG_PATH", configPath)

	cfg, err := LoadFileConfig()
	if err != nil {
		t.Fatalf("LoadFileConfig() failed: %v", err)
	}

	if len(cfg.Communities) != 2 {
		t.Errorf("Expected 2 communities, got %d", len(cfg.Communities))
	}

	provider := NewStaticProvider(cfg)
	ctx := context.Background()

	german, err := provider.RuleSet(ctx, "123456789")
	if err != nil {
		t.Fatalf("RuleSet() failed: %v", err)
	}
	if got := german.Get("language", ""); got != "de" {
		t.Errorf("Expected community override language=de, got %v", got)
	}
	if got := german.Get("max_npcs_per_location", 0); got != 4 {
		t.Errorf("Expected inherited max_npcs_per_location=4, got %v", got)
	}
	if got := german.Strings("intake.required_languages"); len(got) != 2 {
		t.Errorf("Expected 2 required languages, got %v", got)
	}

	cyber, err := provider.RuleSet(ctx, "987654321")
	if err != nil {
		t.Fatalf("RuleSet() failed: %v", err)
	}
	if got := cyber.Get("language", ""); got != "en" {
		t.Errorf("Expected default language=en, got %v", got)
	}

	unknown, err := provider.RuleSet(ctx, "111")
	if err != nil {
		t.Fatalf("RuleSet() failed: %v", err)
	}
	if unknown.Len() != 2 {
		t.Errorf("Expected unknown community to get the 2 defaults, got %d", unknown.Len())
	}
}

func TestLoadFileConfig_FileNotFound(t *testing.T) {
	t.Setenv("RULES_CONFIG_PATH", "/nonexistent/path/rules.yaml")

	_, err := LoadFileConfig()
	if err == nil {
		t.Fatal("Expected error for nonexistent config file")
	}

	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Expected 'failed to read config file' error, got: %v", err)
	}
}

func TestLoadFileConfig_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidContent := `communities:
  guild:
    theme: "dark
   broken: [
`

	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err := LoadFileConfigFrom(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid YAML")
	}

	if !strings.Contains(err.Error(), "failed to parse YAML") {
		t.Errorf("Expected 'failed to parse YAML' error, got: %v", err)
	}
}

func TestLoadFileConfig_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "empty.yaml")

	if err := os.WriteFile(configPath, []byte(""), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadFileConfigFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfigFrom() failed: %v", err)
	}

	ruleSet, err := NewStaticProvider(cfg).RuleSet(context.Background(), "guild")
	if err != nil {
		t.Fatalf("RuleSet() failed: %v", err)
	}
	if ruleSet.Len() != 0 {
		t.Errorf("Expected empty rule set, got %d values", ruleSet.Len())
	}
}

func TestValidate_BlankCommunityID(t *testing.T) {
	cfg := &FileConfig{
		Communities: map[string]map[string]any{
			" ": {"theme": "x"},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error for blank community id")
	}
	if !strings.Contains(err.Error(), "invalid community id") {
		t.Errorf("Expected 'invalid community id' error, got: %v", err)
	}
}

func TestStaticProvider_NilConfig(t *testing.T) {
	provider := NewStaticProvider(nil)

	ruleSet, err := provider.RuleSet(context.Background(), "guild")
	if err != nil {
		t.Fatalf("RuleSet() failed: %v", err)
	}
	if ruleSet.Len() != 0 {
		t.Errorf("Expected empty rule set, got %d values", ruleSet.Len())
	}
}
