package main

import "testing"

func TestEnforcePolicyZeroesScoreOnNCG(t *testing.T) {
	result := &AnalysisResult{
		EvaluationStatus: StatusNaoConforme,
		TotalScore:       57,
		IsNcgDetected:    true,
		CriteriaScores: []CriterionScore{
			{CriterionID: "1.1", Status: StatusConforme, PointsEarned: 3, MaxPoints: 3},
		},
	}

	// Catalog without auto-conforme items keeps the check focused on
	// the NCG rule.
	catalog := Scorecard{{ID: "1.1", Category: "A", Name: "1.1", Weight: 3}}
	corrections := catalog.EnforcePolicy(result)

	if result.TotalScore != 0 {
		t.Fatalf("expected totalScore zeroed on NCG, got %d", result.TotalScore)
	}
	if result.EvaluationStatus != StatusNCG {
		t.Fatalf("expected evaluation status forced to NCG, got %s", result.EvaluationStatus)
	}
	if len(corrections) == 0 {
		t.Fatal("expected corrections to be reported")
	}
}

func TestEnforcePolicyRecomputesTotalFromEarnedPoints(t *testing.T) {
	catalog := Scorecard{
		{ID: "a", Category: "X", Name: "a", Weight: 9},
		{ID: "b", Category: "X", Name: "b", Weight: 3},
		{ID: "c", Category: "Y", Name: "c", Weight: 5},
	}
	result := &AnalysisResult{
		EvaluationStatus: StatusConforme,
		TotalScore:       10, // evaluator got the arithmetic wrong
		CriteriaScores: []CriterionScore{
			{CriterionID: "a", Status: StatusConforme, PointsEarned: 9, MaxPoints: 9},
			{CriterionID: "b", Status: StatusConforme, PointsEarned: 3, MaxPoints: 3},
			{CriterionID: "c", Status: StatusConforme, PointsEarned: 5, MaxPoints: 5},
		},
	}

	catalog.EnforcePolicy(result)
	if result.TotalScore != 17 {
		t.Fatalf("expected recomputed total 17, got %d", result.TotalScore)
	}
}

func TestEnforcePolicyInjectsMissingAutoConformeItems(t *testing.T) {
	result := &AnalysisResult{
		EvaluationStatus: StatusNaoConforme,
		TotalScore:       0,
		CriteriaScores: []CriterionScore{
			{CriterionID: "1.1", Status: StatusNaoConforme, PointsEarned: 0, MaxPoints: 3},
		},
	}

	DefaultScorecard.EnforcePolicy(result)

	for _, fixed := range DefaultScorecard.AutoConformeCriteria() {
		found := false
		for _, score := range result.CriteriaScores {
			if score.CriterionID != fixed.ID {
				continue
			}
			found = true
			if score.Status != StatusConforme {
				t.Fatalf("auto-conforme item %s has status %s", fixed.ID, score.Status)
			}
			if score.PointsEarned != fixed.Weight {
				t.Fatalf("auto-conforme item %s earned %d, want %d", fixed.ID, score.PointsEarned, fixed.Weight)
			}
		}
		if !found {
			t.Fatalf("auto-conforme item %s was not injected", fixed.ID)
		}
	}

	// BONUS 9 + 2.3 3 + 2.4 5 + 4.4 3 + 4.7 3 = 23 guaranteed points.
	if result.TotalScore != 23 {
		t.Fatalf("expected guaranteed minimum total 23, got %d", result.TotalScore)
	}
}

func TestEnforcePolicyCorrectsDowngradedAutoConformeItem(t *testing.T) {
	result := &AnalysisResult{
		EvaluationStatus: StatusNaoConforme,
		TotalScore:       0,
		CriteriaScores: []CriterionScore{
			{CriterionID: "BONUS", Status: StatusNaoConforme, PointsEarned: 0, MaxPoints: 9, Observation: "não aplicado"},
		},
	}

	corrections := DefaultScorecard.EnforcePolicy(result)

	if result.CriteriaScores[0].Status != StatusConforme || result.CriteriaScores[0].PointsEarned != 9 {
		t.Fatalf("BONUS not corrected: %+v", result.CriteriaScores[0])
	}
	if len(corrections) == 0 {
		t.Fatal("expected corrections to be reported")
	}
}

func TestEnforcePolicyClipsTotalToBudget(t *testing.T) {
	catalog := Scorecard{
		{ID: "a", Category: "X", Name: "a", Weight: 60},
		{ID: "b", Category: "X", Name: "b", Weight: 60},
	}
	result := &AnalysisResult{
		EvaluationStatus: StatusConforme,
		TotalScore:       0,
		CriteriaScores: []CriterionScore{
			{CriterionID: "a", Status: StatusConforme, PointsEarned: 60, MaxPoints: 60},
			{CriterionID: "b", Status: StatusConforme, PointsEarned: 60, MaxPoints: 60},
		},
	}

	catalog.EnforcePolicy(result)
	if result.TotalScore != 100 {
		t.Fatalf("expected total clipped to 100, got %d", result.TotalScore)
	}
}
