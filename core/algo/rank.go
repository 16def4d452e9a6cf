package algo

import (
	"math"
	"slices"
	"sort"

	"github.com/huangsam/attrition/schema"
)

// RankFactors sorts factors by descending absolute delta. The sort is stable, so ties keep
// their incoming order. The input slice is not modified.
func RankFactors(factors []schema.ImpactFactor) []schema.ImpactFactor {
	ranked := make([]schema.ImpactFactor, len(factors))
	copy(ranked, factors)
	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].Delta) > math.Abs(ranked[j].Delta)
	})
	return ranked
}

// RankOutcomes sorts segment outcomes by predicted risk in descending order and returns
// the top 'limit' outcomes. Ties are broken by employee ID. The input slice is not modified.
func RankOutcomes(outcomes []schema.EmployeeOutcome, limit int) []schema.EmployeeOutcome {
	ranked := slices.Clone(outcomes)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].PredictedRisk != ranked[j].PredictedRisk {
			return ranked[i].PredictedRisk > ranked[j].PredictedRisk
		}
		return ranked[i].EmployeeID < ranked[j].EmployeeID
	})
	if limit > 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}

// RankScenarios sorts simulations by predicted risk in ascending order so the most
// effective scenario comes first. Ties keep their incoming order. The input slice is not modified.
func RankScenarios(results []schema.SimulationResult) []schema.SimulationResult {
	ranked := slices.Clone(results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PredictedRisk < ranked[j].PredictedRisk
	})
	return ranked
}
