package algo

import (
	"math"

	"github.com/huangsam/attrition/schema"
	"github.com/shopspring/decimal"
)

var (
	minRisk = decimal.NewFromFloat(MinRisk)
	maxRisk = decimal.NewFromFloat(MaxRisk)
)

// PredictRisk computes the predicted risk with the default model.
func PredictRisk(baseline float64, in schema.ScenarioInputs) float64 {
	return defaultModel.PredictRisk(baseline, in)
}

// PredictRisk adds every rule's contribution to the baseline and clamps the total to [0, 100].
// It never fails: unknown categories and non-finite inputs contribute nothing.
func (m *Model) PredictRisk(baseline float64, in schema.ScenarioInputs) float64 {
	total := decimal.NewFromFloat(sanitizeBaseline(baseline))
	for _, r := range m.rules {
		total = total.Add(r.Contribution(in))
	}
	return clampRisk(total)
}

// sanitizeBaseline maps NaN to 0 and saturates infinities.
func sanitizeBaseline(v float64) float64 {
	switch {
	case math.IsNaN(v), math.IsInf(v, -1):
		return MinRisk
	case math.IsInf(v, 1):
		return MaxRisk
	default:
		return v
	}
}

func clampRisk(d decimal.Decimal) float64 {
	if d.LessThan(minRisk) {
		return MinRisk
	}
	if d.GreaterThan(maxRisk) {
		return MaxRisk
	}
	return d.InexactFloat64()
}
