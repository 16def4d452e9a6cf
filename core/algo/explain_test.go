package algo

import (
	"math"
	"testing"

	"github.com/huangsam/attrition/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplainFactorsNeutral(t *testing.T) {
	factors := ExplainFactors(schema.DefaultScenarioInputs(), false)
	require.NotNil(t, factors)
	assert.Empty(t, factors)

	factors = ExplainFactors(schema.DefaultScenarioInputs(), true)
	assert.Empty(t, factors)
}

func TestExplainFactorsExamples(t *testing.T) {
	t.Run("bonus with overtime and frequent travel", func(t *testing.T) {
		in := scenario(func(in *schema.ScenarioInputs) {
			in.SalaryIncrease = 10
			in.Overtime = true
			in.BusinessTravel = schema.TravelFrequently
		})

		factors := ExplainFactors(in, false)

		expected := []schema.ImpactFactor{
			{Field: schema.FieldOvertime, Label: "Overtime Required", Delta: 8, Favorable: false},
			{Field: schema.FieldBusinessTravel, Label: "Frequent Travel", Delta: 5, Favorable: false},
			{Field: schema.FieldSalaryIncrease, Label: "Salary Increase", Delta: -5, Favorable: true},
		}
		assert.Equal(t, expected, factors)
	})

	t.Run("manager change only", func(t *testing.T) {
		in := scenario(func(in *schema.ScenarioInputs) { in.ManagerChange = true })

		factors := ExplainFactors(in, false)

		assert.Equal(t, []schema.ImpactFactor{
			{Field: schema.FieldManagerChange, Label: "Manager Change", Delta: 12, Favorable: false},
		}, factors)
	})
}

func TestExplainFactorsLegacySurfacing(t *testing.T) {
	tests := []struct {
		name   string
		inputs schema.ScenarioInputs
		want   []schema.FieldKey
	}{
		{"travel never is hidden", scenario(func(in *schema.ScenarioInputs) { in.BusinessTravel = schema.TravelNever }), nil},
		{"travel non-travel is hidden", scenario(func(in *schema.ScenarioInputs) { in.BusinessTravel = schema.TravelNonTravel }), nil},
		{"training is hidden", scenario(func(in *schema.ScenarioInputs) { in.TrainingHours = 100 }), nil},
		{"wfh below neutral is hidden", scenario(func(in *schema.ScenarioInputs) { in.WorkFromHome = 0 }), nil},
		{"wfh above neutral is shown", scenario(func(in *schema.ScenarioInputs) { in.WorkFromHome = 4 }), []schema.FieldKey{schema.FieldWorkFromHome}},
		{"negative salary is hidden", scenario(func(in *schema.ScenarioInputs) { in.SalaryIncrease = -5 }), nil},
		{"low satisfaction is shown", scenario(func(in *schema.ScenarioInputs) { in.JobSatisfaction = 1 }), []schema.FieldKey{schema.FieldJobSatisfaction}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []schema.FieldKey
			for _, f := range ExplainFactors(tt.inputs, false) {
				got = append(got, f.Field)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExplainFactorsSymmetricSurfacing(t *testing.T) {
	tests := []struct {
		name   string
		inputs schema.ScenarioInputs
		want   schema.ImpactFactor
	}{
		{
			name:   "travel never",
			inputs: scenario(func(in *schema.ScenarioInputs) { in.BusinessTravel = schema.TravelNever }),
			want:   schema.ImpactFactor{Field: schema.FieldBusinessTravel, Label: "No Travel", Delta: -2, Favorable: true},
		},
		{
			name:   "travel non-travel",
			inputs: scenario(func(in *schema.ScenarioInputs) { in.BusinessTravel = schema.TravelNonTravel }),
			want:   schema.ImpactFactor{Field: schema.FieldBusinessTravel, Label: "Non-Travel Role", Delta: -3, Favorable: true},
		},
		{
			name:   "training above neutral",
			inputs: scenario(func(in *schema.ScenarioInputs) { in.TrainingHours = 60 }),
			want:   schema.ImpactFactor{Field: schema.FieldTrainingHours, Label: "Training Hours", Delta: -2, Favorable: true},
		},
		{
			name:   "wfh below neutral",
			inputs: scenario(func(in *schema.ScenarioInputs) { in.WorkFromHome = 0 }),
			want:   schema.ImpactFactor{Field: schema.FieldWorkFromHome, Label: "Work From Home", Delta: 4, Favorable: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []schema.ImpactFactor{tt.want}, ExplainFactors(tt.inputs, true))
		})
	}
}

func TestExplainFactorsJobSatisfaction(t *testing.T) {
	tests := []struct {
		name      string
		level     float64
		symmetric bool
		delta     float64
		favorable bool
	}{
		{"legacy level 1", 1, false, -16, true},
		{"legacy level 2", 2, false, -8, true},
		{"legacy level 4", 4, false, 8, false},
		{"legacy level 5", 5, false, 16, false},
		{"symmetric level 1", 1, true, 16, false},
		{"symmetric level 2", 2, true, 8, false},
		{"symmetric level 4", 4, true, -8, true},
		{"symmetric level 5", 5, true, -16, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := scenario(func(in *schema.ScenarioInputs) { in.JobSatisfaction = tt.level })
			factors := ExplainFactors(in, tt.symmetric)
			require.Len(t, factors, 1)
			assert.Equal(t, "Job Satisfaction Change", factors[0].Label)
			assert.Equal(t, tt.delta, factors[0].Delta)
			assert.Equal(t, tt.favorable, factors[0].Favorable)
		})
	}
}

func TestExplainFactorsDeltaMatchesPrediction(t *testing.T) {
	in := scenario(func(in *schema.ScenarioInputs) {
		in.SalaryIncrease = 6
		in.Overtime = true
		in.BusinessTravel = schema.TravelNever
		in.TrainingHours = 80
		in.WorkFromHome = 3
		in.JobSatisfaction = 2
	})

	sum := 50.0
	for _, f := range ExplainFactors(in, true) {
		sum += f.Delta
	}
	assert.InDelta(t, PredictRisk(50, in), sum, 1e-9)
}

func TestExplainFactorsTieOrder(t *testing.T) {
	// Salary -8 and overtime +8 tie on magnitude; canonical field order wins.
	in := scenario(func(in *schema.ScenarioInputs) {
		in.SalaryIncrease = 16
		in.Overtime = true
		in.JobSatisfaction = 2
	})

	factors := ExplainFactors(in, false)

	require.Len(t, factors, 3)
	assert.Equal(t, schema.FieldSalaryIncrease, factors[0].Field)
	assert.Equal(t, schema.FieldOvertime, factors[1].Field)
	assert.Equal(t, schema.FieldJobSatisfaction, factors[2].Field)
}

func TestExplainFactorsIdempotent(t *testing.T) {
	in := scenario(func(in *schema.ScenarioInputs) {
		in.SalaryIncrease = 4
		in.ManagerChange = true
		in.WorkFromHome = 5
		in.JobSatisfaction = 1
	})

	first := ExplainFactors(in, false)
	second := ExplainFactors(in, false)
	assert.Equal(t, first, second)
}

func TestExplainFactorsInfiniteInputs(t *testing.T) {
	in := scenario(func(in *schema.ScenarioInputs) {
		in.TrainingHours = math.Inf(1)
		in.WorkFromHome = math.Inf(-1)
		in.SalaryIncrease = math.NaN()
	})

	assert.Empty(t, ExplainFactors(in, false))
	assert.Empty(t, ExplainFactors(in, true))
}
