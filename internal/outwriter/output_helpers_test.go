package outwriter

import (
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/schema"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// testConfig returns a config for text output with a fixed width.
func testConfig(output schema.OutputMode) *contract.Config {
	return &contract.Config{
		Precision:  1,
		Output:     output,
		Width:      120,
		Thresholds: schema.DefaultRiskThresholds(),
	}
}

// sampleSimulation is baseline 72 with overtime, frequent travel and a 10% raise.
func sampleSimulation() schema.SimulationResult {
	return schema.SimulationResult{
		EmployeeID:    "EMP001",
		BaselineRisk:  72,
		PredictedRisk: 80,
		Change:        8,
		Level:         schema.HighRisk,
		Factors: []schema.ImpactFactor{
			{Field: schema.FieldOvertime, Label: "Overtime Required", Delta: 8},
			{Field: schema.FieldBusinessTravel, Label: "Frequent Travel", Delta: 5},
			{Field: schema.FieldSalaryIncrease, Label: "Salary Increase", Delta: -5, Favorable: true},
		},
		Recommendation: schema.Recommendation{
			Outcome: schema.OutcomeIncreased,
			Title:   "Risk Increased",
			Actions: []string{"Consider reducing negative factors"},
		},
		Metadata: schema.SimulationMetadata{SimulationID: "sim-1", DurationMs: 3},
	}
}
