package core

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/internal/rosterdb"
	"github.com/huangsam/attrition/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		setup     func(cfg *contract.Config)
		predicted float64
		change    float64
		level     schema.RiskLevel
		outcome   schema.Outcome
		factors   []string
	}{
		{
			name: "dashboard example",
			setup: func(cfg *contract.Config) {
				cfg.Inputs.Overtime = true
				cfg.Inputs.BusinessTravel = schema.TravelFrequently
				cfg.Inputs.SalaryIncrease = 10
			},
			predicted: 80,
			change:    8,
			level:     schema.HighRisk,
			outcome:   schema.OutcomeIncreased,
			factors:   []string{"Overtime Required", "Frequent Travel", "Salary Increase"},
		},
		{
			name:      "neutral scenario keeps the baseline",
			setup:     func(*contract.Config) {},
			predicted: 72,
			change:    0,
			level:     schema.HighRisk,
			outcome:   schema.OutcomeUnchanged,
			factors:   []string{},
		},
		{
			name: "employee baseline with manager change",
			setup: func(cfg *contract.Config) {
				cfg.EmployeeID = "EMP002"
				cfg.Inputs.ManagerChange = true
			},
			predicted: 74,
			change:    12,
			level:     schema.HighRisk,
			outcome:   schema.OutcomeIncreased,
			factors:   []string{"Manager Change"},
		},
		{
			name: "raise lowers risk",
			setup: func(cfg *contract.Config) {
				cfg.EmployeeID = "EMP004"
				cfg.Inputs.SalaryIncrease = 20
			},
			predicted: 35,
			change:    -10,
			level:     schema.LowRisk,
			outcome:   schema.OutcomeReduced,
			factors:   []string{"Salary Increase"},
		},
		{
			name: "custom overtime coefficient",
			setup: func(cfg *contract.Config) {
				cfg.BaselineRisk = 50
				cfg.Inputs.Overtime = true
				cfg.CustomCoefficients = map[schema.CoefficientKey]float64{schema.CoefOvertime: 10}
			},
			predicted: 60,
			change:    10,
			level:     schema.MediumRisk,
			outcome:   schema.OutcomeIncreased,
			factors:   []string{"Overtime Required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(72)
			tt.setup(cfg)

			result, err := Simulate(ctx, cfg, fixtureManager())
			require.NoError(t, err)

			assert.Equal(t, tt.predicted, result.PredictedRisk)
			assert.Equal(t, tt.change, result.Change)
			assert.Equal(t, tt.level, result.Level)
			assert.Equal(t, tt.outcome, result.Recommendation.Outcome)
			assert.Equal(t, cfg.EmployeeID, result.EmployeeID)

			labels := make([]string, 0, len(result.Factors))
			for _, f := range result.Factors {
				labels = append(labels, f.Label)
			}
			assert.Equal(t, tt.factors, labels)

			_, err = uuid.Parse(result.Metadata.SimulationID)
			assert.NoError(t, err)
			assert.False(t, result.Metadata.CompletedAt.Before(result.Metadata.StartedAt))
		})
	}
}

func TestSimulateSymmetricFactors(t *testing.T) {
	cfg := testConfig(60)
	cfg.Symmetric = true
	cfg.Inputs.TrainingHours = 80
	cfg.Inputs.BusinessTravel = schema.TravelNonTravel

	result, err := Simulate(context.Background(), cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, 53.0, result.PredictedRisk)
	require.Len(t, result.Factors, 2)
	assert.Equal(t, "Training Hours", result.Factors[0].Label)
	assert.Equal(t, "Non-Travel Role", result.Factors[1].Label)
	assert.True(t, result.Metadata.Symmetric)
}

func TestSimulateErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown employee", func(t *testing.T) {
		cfg := testConfig(72)
		cfg.EmployeeID = "EMP999"
		_, err := Simulate(ctx, cfg, fixtureManager())
		assert.ErrorIs(t, err, contract.ErrEmployeeNotFound)
	})

	t.Run("employee without roster", func(t *testing.T) {
		cfg := testConfig(72)
		cfg.EmployeeID = "EMP001"
		_, err := Simulate(ctx, cfg, nil)
		assert.Error(t, err)
	})

	t.Run("store failure", func(t *testing.T) {
		store := &rosterdb.MockRosterStore{}
		store.On("GetEmployee", ctx, "EMP001").Return(schema.Employee{}, errors.New("connection refused"))
		mgr := &rosterdb.MockRosterManager{}
		mgr.On("GetRosterStore").Return(store)

		cfg := testConfig(72)
		cfg.EmployeeID = "EMP001"
		_, err := Simulate(ctx, cfg, mgr)
		assert.EqualError(t, err, "connection refused")
		store.AssertExpectations(t)
	})
}

func TestExplain(t *testing.T) {
	cfg := testConfig(72)
	cfg.Inputs.JobSatisfaction = 5
	cfg.Inputs.WorkFromHome = 4

	factors := Explain(cfg)
	require.Len(t, factors, 2)
	assert.Equal(t, schema.FieldJobSatisfaction, factors[0].Field)
	assert.Equal(t, 16.0, factors[0].Delta)
	assert.False(t, factors[0].Favorable)
	assert.Equal(t, schema.FieldWorkFromHome, factors[1].Field)
	assert.Equal(t, -4.0, factors[1].Delta)
}

func TestRiskChange(t *testing.T) {
	assert.Equal(t, 0.3, riskChange(0.1, 0.4))
	assert.Equal(t, -10.0, riskChange(45, 35))
}
