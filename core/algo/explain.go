package algo

import "github.com/huangsam/attrition/schema"

// ExplainFactors explains the inputs with the default model.
func ExplainFactors(in schema.ScenarioInputs, symmetric bool) []schema.ImpactFactor {
	return defaultModel.ExplainFactors(in, symmetric)
}

// ExplainFactors returns one factor per surfaced input that moves the risk, ranked by
// descending absolute delta. Inputs at their neutral value never appear.
//
// With symmetric false, surfacing follows the legacy rules: only frequent travel is
// shown among travel categories and training hours are never shown. With symmetric
// true, every non-zero contribution is shown.
//
// Legacy job satisfaction reports (level - 3) * weight, so a satisfied employee shows a
// positive delta even though the prediction drops. Symmetric deltas always equal the
// contribution to the predicted risk.
func (m *Model) ExplainFactors(in schema.ScenarioInputs, symmetric bool) []schema.ImpactFactor {
	factors := make([]schema.ImpactFactor, 0, len(m.rules))
	for _, r := range m.rules {
		delta := r.Contribution(in).InexactFloat64()
		if delta == 0 || !r.surfaces(in, symmetric) {
			continue
		}
		if r.LegacyInverted && !symmetric {
			delta = -delta
		}
		factors = append(factors, schema.ImpactFactor{
			Field:     r.Field,
			Label:     r.LabelFor(in),
			Delta:     delta,
			Favorable: delta < 0,
		})
	}
	return RankFactors(factors)
}
