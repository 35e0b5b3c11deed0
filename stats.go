package main

import "math"

// recentVolumeWindow bounds the volume chart to the most recent
// submissions in list order. This is a recency window over submissions,
// not a calendar window; see DESIGN.md.
const recentVolumeWindow = 7

// volumePlaceholderLabel is emitted when there is nothing to chart.
const volumePlaceholderLabel = "-"

type VolumePoint struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

type DistributionSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"` // percent, rounded independently
}

type DashboardStats struct {
	Total                  int                 `json:"total"`
	Conforme               int                 `json:"conforme"`
	NaoConforme            int                 `json:"naoConforme"`
	Ncg                    int                 `json:"ncg"`
	AvgScore               int                 `json:"avgScore"`
	ComplianceLevel        string              `json:"complianceLevel"`
	VolumeByDate           []VolumePoint       `json:"volumeByDate"`
	ComplianceDistribution []DistributionSlice `json:"complianceDistribution"`
}

// ComputeDashboardStats derives the dashboard summary from the
// interaction list (newest first). Pure function of its input;
// interactions without a result are counted in no status bucket and
// excluded from the score average.
func ComputeDashboardStats(interactions []Interaction) DashboardStats {
	var stats DashboardStats
	scoreSum := 0
	for _, it := range interactions {
		if it.Result == nil {
			continue
		}
		stats.Total++
		scoreSum += it.Result.TotalScore
		switch it.Result.EvaluationStatus {
		case StatusConforme:
			stats.Conforme++
		case StatusNaoConforme:
			stats.NaoConforme++
		case StatusNCG:
			stats.Ncg++
		}
	}

	if stats.Total > 0 {
		stats.AvgScore = int(math.Round(float64(scoreSum) / float64(stats.Total)))
	}

	switch {
	case stats.AvgScore >= 90:
		stats.ComplianceLevel = "ALTO"
	case stats.AvgScore >= 70:
		stats.ComplianceLevel = "MÉDIO"
	default:
		stats.ComplianceLevel = "BAIXO"
	}

	recent := interactions
	if len(recent) > recentVolumeWindow {
		recent = recent[:recentVolumeWindow]
	}
	for _, g := range groupBy(recent, func(it Interaction) string { return it.Date }) {
		stats.VolumeByDate = append(stats.VolumeByDate, VolumePoint{Name: g.Key, Total: len(g.Items)})
	}
	if len(stats.VolumeByDate) == 0 {
		stats.VolumeByDate = []VolumePoint{{Name: volumePlaceholderLabel, Total: 0}}
	}

	stats.ComplianceDistribution = []DistributionSlice{
		{Name: "Conforme", Value: percentOf(stats.Conforme, stats.Total)},
		{Name: "Não Conforme", Value: percentOf(stats.NaoConforme, stats.Total)},
		{Name: "Falha Grave (NCG)", Value: percentOf(stats.Ncg, stats.Total)},
	}
	return stats
}

func percentOf(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
