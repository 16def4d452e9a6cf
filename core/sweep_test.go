package core

import (
	"context"
	"testing"

	"github.com/huangsam/attrition/core/algo"
	"github.com/huangsam/attrition/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepField(t *testing.T) {
	model := algo.DefaultModel()
	thresholds := schema.DefaultRiskThresholds()

	tests := []struct {
		name        string
		field       schema.FieldKey
		baseline    float64
		points      int
		first, last float64
		firstLabel  string
		lastLabel   string
		minRisk     float64
		maxRisk     float64
	}{
		{"salary", schema.FieldSalaryIncrease, 50, 21, 50, 40, "0%", "20%", 40, 50},
		{"training", schema.FieldTrainingHours, 50, 25, 54, 42, "0h", "120h", 42, 54},
		{"overtime", schema.FieldOvertime, 50, 2, 50, 58, "no", "yes", 50, 58},
		{"manager change", schema.FieldManagerChange, 50, 2, 50, 62, "no", "yes", 50, 62},
		{"travel", schema.FieldBusinessTravel, 50, 4, 48, 47, "never", "non-travel", 47, 55},
		{"work from home", schema.FieldWorkFromHome, 50, 6, 54, 44, "0d/wk", "5d/wk", 44, 54},
		{"job satisfaction", schema.FieldJobSatisfaction, 50, 5, 66, 34, "1/5", "5/5", 34, 66},
		{"clamped at zero", schema.FieldSalaryIncrease, 5, 21, 5, 0, "0%", "20%", 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SweepField(model, tt.baseline, schema.DefaultScenarioInputs(), tt.field, thresholds)
			require.NoError(t, err)
			require.Len(t, result.Points, tt.points)

			first, last := result.Points[0], result.Points[len(result.Points)-1]
			assert.Equal(t, tt.first, first.PredictedRisk)
			assert.Equal(t, tt.last, last.PredictedRisk)
			assert.Equal(t, tt.firstLabel, first.Label)
			assert.Equal(t, tt.lastLabel, last.Label)
			assert.Equal(t, tt.minRisk, result.MinRisk)
			assert.Equal(t, tt.maxRisk, result.MaxRisk)
			assert.Equal(t, tt.maxRisk-tt.minRisk, result.Sensitivity)
			assert.Equal(t, tt.field, result.Field)
		})
	}
}

func TestSweepFieldKeepsOtherInputs(t *testing.T) {
	in := schema.DefaultScenarioInputs()
	in.Overtime = true

	result, err := SweepField(algo.DefaultModel(), 50, in, schema.FieldSalaryIncrease, schema.DefaultRiskThresholds())
	require.NoError(t, err)

	assert.Equal(t, 58.0, result.Points[0].PredictedRisk)
	assert.Equal(t, 8.0, result.Points[0].Change)
	assert.Equal(t, schema.MediumRisk, result.Points[0].Level)
	assert.True(t, result.Inputs.Overtime)
}

func TestSweepFieldUnknown(t *testing.T) {
	_, err := SweepField(algo.DefaultModel(), 50, schema.DefaultScenarioInputs(), "bonus", schema.DefaultRiskThresholds())
	assert.Error(t, err)
}

func TestSweep(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a field", func(t *testing.T) {
		_, err := Sweep(ctx, testConfig(72), nil)
		assert.EqualError(t, err, "--field is required")
	})

	t.Run("uses the employee baseline", func(t *testing.T) {
		cfg := testConfig(72)
		cfg.EmployeeID = "EMP004"
		cfg.SweepField = schema.FieldOvertime

		result, err := Sweep(ctx, cfg, fixtureManager())
		require.NoError(t, err)
		assert.Equal(t, "EMP004", result.EmployeeID)
		assert.Equal(t, 45.0, result.BaselineRisk)
		assert.Equal(t, 53.0, result.MaxRisk)
	})
}
