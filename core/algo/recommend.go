package algo

import "github.com/huangsam/attrition/schema"

// Recommend returns the guidance for a scenario that moved the risk from baseline to predicted.
func Recommend(baseline, predicted float64) schema.Recommendation {
	switch {
	case predicted > baseline:
		return schema.Recommendation{
			Outcome: schema.OutcomeIncreased,
			Title:   "Risk Increased",
			Actions: []string{
				"Consider reducing negative factors",
				"Implement retention strategies",
				"Monitor closely for early warning signs",
			},
		}
	case predicted < baseline:
		return schema.Recommendation{
			Outcome: schema.OutcomeReduced,
			Title:   "Risk Reduced",
			Actions: []string{
				"Positive interventions are effective",
				"Continue with planned changes",
				"Consider implementing similar strategies",
			},
		}
	default:
		return schema.Recommendation{
			Outcome: schema.OutcomeUnchanged,
			Title:   "Risk Unchanged",
			Actions: []string{
				"The scenario has no net effect on predicted risk",
				"Adjust interventions to explore alternatives",
			},
		}
	}
}
