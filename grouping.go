package main

// fallbackCategory labels criteria whose id is not in the catalog.
// Schema validation rejects such results before storage, so this only
// shows up for rows persisted under an older rubric.
const fallbackCategory = "Outros"

type group[K comparable, V any] struct {
	Key   K
	Items []V
}

// groupBy buckets items by key, preserving first-seen key order and
// item order within each bucket.
func groupBy[K comparable, V any](items []V, key func(V) K) []group[K, V] {
	index := make(map[K]int)
	var out []group[K, V]
	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, group[K, V]{Key: k})
		}
		out[i].Items = append(out[i].Items, item)
	}
	return out
}

// ScoredCriterion is a criterion score joined with its catalog metadata
// for the detail view.
type ScoredCriterion struct {
	CriterionScore
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ScoreGroup is one category of the detail view.
type ScoreGroup struct {
	Category string            `json:"category"`
	Items    []ScoredCriterion `json:"items"`
}

// GroupScoresByCategory joins each score against the catalog and groups
// by category. Order follows the scores as returned by the evaluator,
// not catalog order.
func (s Scorecard) GroupScoresByCategory(scores []CriterionScore) []ScoreGroup {
	joined := make([]ScoredCriterion, 0, len(scores))
	for _, score := range scores {
		sc := ScoredCriterion{CriterionScore: score, Category: fallbackCategory}
		if meta, ok := s.ByID(score.CriterionID); ok {
			sc.Name = meta.Name
			sc.Category = meta.Category
		}
		joined = append(joined, sc)
	}

	grouped := groupBy(joined, func(c ScoredCriterion) string { return c.Category })
	out := make([]ScoreGroup, 0, len(grouped))
	for _, g := range grouped {
		out = append(out, ScoreGroup{Category: g.Key, Items: g.Items})
	}
	return out
}
