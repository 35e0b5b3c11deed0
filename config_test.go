package main

import (
	"os"
	"path/filepath"
	"testing"
)

// clearConfigEnv blanks every env var LoadConfig reads so host values
// do not leak into the test.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LISTEN_ADDR", "LLM_PROVIDER", "LLM_MODEL", "ANTHROPIC_API_KEY", "OPENAI_API_KEY",
		"EVALUATOR_TIMEOUT_SECONDS", "EVALUATOR_MAX_RETRIES", "DB_PATH", "EXPORT_DIR",
		"COMPANY_NAME", "SLACK_BOT_TOKEN", "SLACK_ALERT_CHANNEL", "DIGEST_SCHEDULE", "TIMEZONE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	cfg := LoadConfig()

	if cfg.ListenAddr != ":3000" {
		t.Errorf("ListenAddr = %q, want :3000", cfg.ListenAddr)
	}
	if cfg.LLMProvider != "anthropic" {
		t.Errorf("LLMProvider = %q, want anthropic", cfg.LLMProvider)
	}
	if cfg.EvaluatorTimeoutSec != 90 {
		t.Errorf("EvaluatorTimeoutSec = %d, want 90", cfg.EvaluatorTimeoutSec)
	}
	if cfg.EvaluatorMaxRetries != 2 {
		t.Errorf("EvaluatorMaxRetries = %d, want 2", cfg.EvaluatorMaxRetries)
	}
	if cfg.DBPath != "./qualitymind.db" {
		t.Errorf("DBPath = %q, want ./qualitymind.db", cfg.DBPath)
	}
	if cfg.ExportDir != "./exports" {
		t.Errorf("ExportDir = %q, want ./exports", cfg.ExportDir)
	}
	if cfg.CompanyName != "Neoenergia Brasília" {
		t.Errorf("CompanyName = %q", cfg.CompanyName)
	}
	if cfg.Timezone != "America/Sao_Paulo" || cfg.Location == nil {
		t.Errorf("Timezone = %q, Location = %v", cfg.Timezone, cfg.Location)
	}
}

func TestLoadConfigYAMLFile(t *testing.T) {
	clearConfigEnv(t)

	yamlContent := `
listen_addr: ":8080"
llm_provider: "openai"
llm_model: "gpt-4o-audio-preview"
openai_api_key: "yaml-key"
company_name: "Empresa YAML"
evaluator_timeout_seconds: 30
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("writing fixture failed: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg := LoadConfig()

	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.LLMProvider != "openai" || cfg.OpenAIAPIKey != "yaml-key" {
		t.Errorf("provider config not read from yaml: %q/%q", cfg.LLMProvider, cfg.OpenAIAPIKey)
	}
	if cfg.CompanyName != "Empresa YAML" {
		t.Errorf("CompanyName = %q, want Empresa YAML", cfg.CompanyName)
	}
	if cfg.EvaluatorTimeoutSec != 30 {
		t.Errorf("EvaluatorTimeoutSec = %d, want 30", cfg.EvaluatorTimeoutSec)
	}
}

func TestLoadConfigEnvOverridesYAML(t *testing.T) {
	clearConfigEnv(t)

	yamlContent := `
listen_addr: ":8080"
llm_provider: "anthropic"
anthropic_api_key: "yaml-key"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("writing fixture failed: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	t.Setenv("EVALUATOR_MAX_RETRIES", "5")

	cfg := LoadConfig()

	if cfg.ListenAddr != ":9090" {
		t.Errorf("env should override yaml, got ListenAddr %q", cfg.ListenAddr)
	}
	if cfg.AnthropicAPIKey != "env-key" {
		t.Errorf("env should override yaml, got key %q", cfg.AnthropicAPIKey)
	}
	if cfg.EvaluatorMaxRetries != 5 {
		t.Errorf("EvaluatorMaxRetries = %d, want 5", cfg.EvaluatorMaxRetries)
	}
}
