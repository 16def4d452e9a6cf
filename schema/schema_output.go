package schema

// Default risk level thresholds.
const (
	DefaultHighThreshold   = 70.0
	DefaultMediumThreshold = 40.0
)

// RiskThresholds are the lower bounds of the high and medium risk levels.
type RiskThresholds struct {
	High   float64 `json:"high"`
	Medium float64 `json:"medium"`
}

// DefaultRiskThresholds returns high >= 70 and medium >= 40.
func DefaultRiskThresholds() RiskThresholds {
	return RiskThresholds{High: DefaultHighThreshold, Medium: DefaultMediumThreshold}
}

// Classify returns the risk level a score falls into.
func (t RiskThresholds) Classify(score float64) RiskLevel {
	switch {
	case score >= t.High:
		return HighRisk
	case score >= t.Medium:
		return MediumRisk
	default:
		return LowRisk
	}
}

// GetPlainLabel returns the display label of a risk level.
func GetPlainLabel(level RiskLevel) string {
	switch level {
	case HighRisk:
		return "High"
	case MediumRisk:
		return "Medium"
	default:
		return "Low"
	}
}

// RankSimulations adds a 1-based rank to each simulation in order.
func RankSimulations(results []SimulationResult) []RankedSimulation {
	output := make([]RankedSimulation, len(results))
	for i, r := range results {
		output[i] = RankedSimulation{
			Rank:             i + 1,
			SimulationResult: r,
		}
	}
	return output
}
