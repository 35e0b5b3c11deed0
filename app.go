package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ErrAnalysisInFlight is returned when a submission arrives while a
// previous evaluation is still running. At most one evaluation is in
// flight at a time.
var ErrAnalysisInFlight = errors.New("já existe uma análise em andamento")

const defaultAgentName = "Operador Não Identificado"

// SubmitRequest is one QA submission from the reviewer.
type SubmitRequest struct {
	Transcript  string
	AgentName   string
	MonitorName string
	Company     string
	Audio       *AudioAttachment
}

// App owns the in-memory interaction list, the single source of truth
// for history and dashboard aggregation. The store mirrors it.
type App struct {
	cfg      Config
	store    Store
	evaluate EvaluatorFunc
	notifier *SlackNotifier
	hub      *StatsHub

	mu           sync.Mutex
	interactions []Interaction
	busy         atomic.Bool
}

// NewApp loads the persisted history. A failed load degrades to an
// empty list with a warning; startup is never blocked by the store.
func NewApp(cfg Config, store Store, evaluate EvaluatorFunc, notifier *SlackNotifier, hub *StatsHub) *App {
	list, err := store.Load()
	if err != nil {
		log.Printf("store load failed, starting with empty history: %v", err)
		list = nil
	}
	log.Printf("loaded %d interactions from store", len(list))
	return &App{
		cfg:          cfg,
		store:        store,
		evaluate:     evaluate,
		notifier:     notifier,
		hub:          hub,
		interactions: list,
	}
}

// SubmitAnalysis runs one evaluation end to end: input validation,
// evaluator call, policy enforcement, prepend to the history, persist,
// then best-effort alerting and stats broadcast. On evaluator failure
// the interaction list is left unchanged.
func (a *App) SubmitAnalysis(ctx context.Context, req SubmitRequest) (*Interaction, error) {
	transcript := req.Transcript
	if transcript == "" && req.Audio == nil {
		return nil, ErrEmptySubmission
	}
	if !a.busy.CompareAndSwap(false, true) {
		return nil, ErrAnalysisInFlight
	}
	defer a.busy.Store(false)

	company := req.Company
	if company == "" {
		company = a.cfg.CompanyName
	}

	result, err := a.evaluate(ctx, EvaluationRequest{
		Transcript:  transcript,
		MonitorName: req.MonitorName,
		Company:     company,
		Audio:       req.Audio,
	})
	if err != nil {
		if errors.Is(err, ErrEmptySubmission) {
			return nil, err
		}
		return nil, fmt.Errorf("análise falhou: %w", err)
	}

	for _, correction := range DefaultScorecard.EnforcePolicy(result) {
		log.Printf("policy correction: %s", correction)
	}

	agentName := req.AgentName
	if agentName == "" {
		agentName = defaultAgentName
	}
	now := time.Now().In(a.cfg.Location)
	interaction := Interaction{
		ID:         uuid.NewString(),
		AgentName:  agentName,
		Date:       now.Format("02/01/2006"),
		Transcript: transcript,
		Result:     result,
		CreatedAt:  now,
	}

	a.mu.Lock()
	a.interactions = append([]Interaction{interaction}, a.interactions...)
	a.mu.Unlock()

	// The in-memory list stays authoritative for the session even if
	// the write fails.
	if err := a.store.Append(interaction); err != nil {
		log.Printf("store append failed for interaction %s: %v", interaction.ID, err)
	}

	if result.IsNcgDetected && a.notifier != nil {
		a.notifier.NotifyNCG(interaction)
	}
	if a.hub != nil {
		a.hub.Broadcast(a.DashboardStats())
	}
	return &interaction, nil
}

// Interactions returns a snapshot of the history, newest first.
func (a *App) Interactions() []Interaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Interaction, len(a.interactions))
	copy(out, a.interactions)
	return out
}

func (a *App) InteractionByID(id string) (Interaction, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, it := range a.interactions {
		if it.ID == id {
			return it, true
		}
	}
	return Interaction{}, false
}

func (a *App) DashboardStats() DashboardStats {
	return ComputeDashboardStats(a.Interactions())
}

// Rubric returns the catalog grouped by category for the scorecard view.
func (a *App) Rubric() []RubricGroup {
	return DefaultScorecard.Groups()
}
