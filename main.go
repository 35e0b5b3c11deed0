package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := LoadConfig()

	store, err := OpenSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	os.MkdirAll(cfg.ExportDir, 0755)

	notifier := NewSlackNotifier(cfg.SlackBotToken, cfg.SlackAlertChannel)
	hub := NewStatsHub()

	evaluate := func(ctx context.Context, req EvaluationRequest) (*AnalysisResult, error) {
		return AnalyzeInteraction(ctx, cfg, req)
	}

	app := NewApp(cfg, store, evaluate, notifier, hub)
	StartDigestScheduler(cfg, app, notifier)

	log.Printf("Starting QualityMind QA service on %s (provider: %s)", cfg.ListenAddr, cfg.LLMProvider)
	if err := NewServer(app, hub).Listen(cfg.ListenAddr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
