package main

import "fmt"

// EnforcePolicy applies the local business guarantees to an evaluator
// verdict, in place. The evaluator is instructed to honor these rules,
// but they are safety-critical and never left to its discretion:
//
//   - auto-conforme items missing from the response are injected with
//     full credit, and ones returned as non-compliant are corrected;
//   - with no NCG, the total score is the sum of earned points clipped
//     to [0, 100];
//   - NCG supremacy: a detected falha grave zeroes the total score.
//
// It returns a description of each correction applied, for logging.
func (s Scorecard) EnforcePolicy(result *AnalysisResult) []string {
	var corrections []string

	for _, fixed := range s.AutoConformeCriteria() {
		idx := -1
		for i, score := range result.CriteriaScores {
			if score.CriterionID == fixed.ID {
				idx = i
				break
			}
		}
		if idx == -1 {
			result.CriteriaScores = append(result.CriteriaScores, CriterionScore{
				CriterionID:  fixed.ID,
				Status:       StatusConforme,
				PointsEarned: fixed.Weight,
				MaxPoints:    fixed.Weight,
				Observation:  "Pontuação integral garantida por política.",
			})
			corrections = append(corrections, fmt.Sprintf("injected auto-conforme item %s (%d pts)", fixed.ID, fixed.Weight))
			continue
		}
		score := &result.CriteriaScores[idx]
		if score.Status != StatusConforme || score.PointsEarned != fixed.Weight {
			score.Status = StatusConforme
			score.PointsEarned = fixed.Weight
			score.MaxPoints = fixed.Weight
			corrections = append(corrections, fmt.Sprintf("forced auto-conforme item %s to full credit", fixed.ID))
		}
	}

	if result.IsNcgDetected {
		if result.TotalScore != 0 {
			corrections = append(corrections, fmt.Sprintf("ncg detected, zeroed total score (was %d)", result.TotalScore))
		}
		result.TotalScore = 0
		if result.EvaluationStatus != StatusNCG {
			corrections = append(corrections, fmt.Sprintf("ncg detected, forced evaluation status (was %s)", result.EvaluationStatus))
			result.EvaluationStatus = StatusNCG
		}
		return corrections
	}

	sum := 0
	for _, score := range result.CriteriaScores {
		sum += score.PointsEarned
	}
	if sum < 0 {
		sum = 0
	}
	if sum > 100 {
		sum = 100
	}
	if result.TotalScore != sum {
		corrections = append(corrections, fmt.Sprintf("recomputed total score %d -> %d", result.TotalScore, sum))
		result.TotalScore = sum
	}
	return corrections
}
