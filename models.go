package main

import "time"

// Status is the outcome of a single criterion or of the whole evaluation.
type Status string

const (
	StatusConforme    Status = "CONFORME"
	StatusNaoConforme Status = "NÃO CONFORME"
	StatusNCG         Status = "FALHA GRAVE (NCG)"
)

func (s Status) Valid() bool {
	switch s {
	case StatusConforme, StatusNaoConforme, StatusNCG:
		return true
	}
	return false
}

type ScorecardCriterion struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Weight      int    `json:"weight"` // max points for this item
}

// CriterionScore is one evaluator judgment for one scorecard item.
// Scoring is binary: PointsEarned is either 0 or exactly MaxPoints.
type CriterionScore struct {
	CriterionID  string `json:"criterionId"`
	Status       Status `json:"status"`
	PointsEarned int    `json:"pointsEarned"`
	MaxPoints    int    `json:"maxPoints"`
	Observation  string `json:"observation"`
}

// AnalysisResult is the full verdict for one monitored call.
// If IsNcgDetected is true, TotalScore is zero regardless of the
// points earned on individual items.
type AnalysisResult struct {
	EvaluationStatus Status           `json:"evaluationStatus"`
	TotalScore       int              `json:"totalScore"`
	ReasonForCall    string           `json:"reasonForCall"`
	CriteriaScores   []CriterionScore `json:"criteriaScores"`
	Summary          string           `json:"summary"`
	SystemReadyText  string           `json:"systemReadyText"`
	OperatorFeedback string           `json:"operatorFeedback"`
	IsNcgDetected    bool             `json:"isNcgDetected"`
}

// Interaction is one persisted monitoring record. Result is nil for
// rows whose stored verdict could not be decoded.
type Interaction struct {
	ID         string          `json:"id"`
	AgentName  string          `json:"agentName"`
	Date       string          `json:"date"` // dd/mm/yyyy, the dashboard bucket key
	Transcript string          `json:"transcript"`
	Result     *AnalysisResult `json:"result,omitempty"`
	CreatedAt  time.Time       `json:"-"`
}

// AudioAttachment is an optional call recording sent to the evaluator.
type AudioAttachment struct {
	Data     []byte
	MimeType string
}
