package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr string `yaml:"listen_addr"`

	LLMProvider     string `yaml:"llm_provider"`
	LLMModel        string `yaml:"llm_model"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	OpenAIAPIKey    string `yaml:"openai_api_key"`

	EvaluatorTimeoutSec int `yaml:"evaluator_timeout_seconds"`
	EvaluatorMaxRetries int `yaml:"evaluator_max_retries"`

	DBPath    string `yaml:"db_path"`
	ExportDir string `yaml:"export_dir"`

	CompanyName string `yaml:"company_name"`

	SlackBotToken     string `yaml:"slack_bot_token"`
	SlackAlertChannel string `yaml:"slack_alert_channel"`
	DigestSchedule    string `yaml:"digest_schedule"` // 5-field cron, empty disables

	Timezone string `yaml:"timezone"`
	Location *time.Location
}

func LoadConfig() Config {
	var cfg Config

	// Load from config.yaml if it exists
	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverride(&cfg.ListenAddr, "LISTEN_ADDR")
	envOverride(&cfg.LLMProvider, "LLM_PROVIDER")
	envOverride(&cfg.LLMModel, "LLM_MODEL")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	envOverrideInt(&cfg.EvaluatorTimeoutSec, "EVALUATOR_TIMEOUT_SECONDS")
	envOverrideInt(&cfg.EvaluatorMaxRetries, "EVALUATOR_MAX_RETRIES")
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.ExportDir, "EXPORT_DIR")
	envOverride(&cfg.CompanyName, "COMPANY_NAME")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.SlackAlertChannel, "SLACK_ALERT_CHANNEL")
	envOverride(&cfg.DigestSchedule, "DIGEST_SCHEDULE")
	envOverride(&cfg.Timezone, "TIMEZONE")

	// Defaults
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":3000"
	}
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "anthropic"
	}
	if cfg.EvaluatorTimeoutSec == 0 {
		cfg.EvaluatorTimeoutSec = 90
	}
	if cfg.EvaluatorMaxRetries == 0 {
		cfg.EvaluatorMaxRetries = 2
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./qualitymind.db"
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "./exports"
	}
	if cfg.CompanyName == "" {
		cfg.CompanyName = "Neoenergia Brasília"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "America/Sao_Paulo"
	}

	switch cfg.LLMProvider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Fatalf("anthropic_api_key is required when llm_provider=anthropic")
		}
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			log.Fatalf("openai_api_key is required when llm_provider=openai")
		}
	default:
		log.Fatalf("llm_provider must be 'anthropic' or 'openai', got '%s'", cfg.LLMProvider)
	}

	if cfg.EvaluatorTimeoutSec < 1 {
		log.Fatalf("invalid evaluator_timeout_seconds '%d': must be >= 1", cfg.EvaluatorTimeoutSec)
	}
	if cfg.EvaluatorMaxRetries < 0 {
		log.Fatalf("invalid evaluator_max_retries '%d': must be >= 0", cfg.EvaluatorMaxRetries)
	}
	if (cfg.DigestSchedule != "" || cfg.SlackAlertChannel != "") && cfg.SlackBotToken == "" {
		log.Fatalf("slack_bot_token is required when digest_schedule or slack_alert_channel is set")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid timezone '%s': %v", cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}
