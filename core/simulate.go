package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/attrition/core/algo"
	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/schema"
	"github.com/shopspring/decimal"
)

// newModel returns the risk model for the config, sharing the default model when
// no coefficient is overridden.
func newModel(cfg *contract.Config) *algo.Model {
	if len(cfg.CustomCoefficients) == 0 {
		return algo.DefaultModel()
	}
	return algo.NewModel(cfg.CustomCoefficients)
}

// ResolveBaseline returns the baseline a simulation starts from. An employee ID
// takes precedence over the configured baseline.
func ResolveBaseline(ctx context.Context, cfg *contract.Config, mgr contract.RosterManager) (float64, error) {
	if cfg.EmployeeID == "" {
		return cfg.BaselineRisk, nil
	}
	if mgr == nil {
		return 0, fmt.Errorf("cannot look up employee %s without a roster", cfg.EmployeeID)
	}
	e, err := mgr.GetRosterStore().GetEmployee(ctx, cfg.EmployeeID)
	if err != nil {
		return 0, err
	}
	return e.BaselineRisk, nil
}

// Simulate resolves the baseline and runs one simulation of the configured scenario.
func Simulate(ctx context.Context, cfg *contract.Config, mgr contract.RosterManager) (schema.SimulationResult, error) {
	baseline, err := ResolveBaseline(ctx, cfg, mgr)
	if err != nil {
		return schema.SimulationResult{}, err
	}
	result := SimulateInputs(newModel(cfg), baseline, cfg.Inputs, cfg.Symmetric, cfg.ActiveThresholds())
	result.EmployeeID = cfg.EmployeeID

	loggerFrom(ctx).Debug("simulation finished",
		"simulation_id", result.Metadata.SimulationID,
		"employee", cfg.EmployeeID,
		"baseline", result.BaselineRisk,
		"predicted", result.PredictedRisk)
	return result, nil
}

// SimulateInputs applies a scenario to a baseline and stamps the result with an ID and timings.
func SimulateInputs(model *algo.Model, baseline float64, in schema.ScenarioInputs, symmetric bool, thresholds schema.RiskThresholds) schema.SimulationResult {
	started := time.Now()
	predicted := model.PredictRisk(baseline, in)
	factors := model.ExplainFactors(in, symmetric)
	completed := time.Now()

	return schema.SimulationResult{
		Inputs:         in,
		BaselineRisk:   baseline,
		PredictedRisk:  predicted,
		Change:         riskChange(baseline, predicted),
		Level:          thresholds.Classify(predicted),
		Factors:        factors,
		Recommendation: algo.Recommend(baseline, predicted),
		Metadata: schema.SimulationMetadata{
			SimulationID: uuid.NewString(),
			StartedAt:    started,
			CompletedAt:  completed,
			DurationMs:   completed.Sub(started).Milliseconds(),
			Symmetric:    symmetric,
		},
	}
}

// Explain returns the impact factors of the configured scenario.
func Explain(cfg *contract.Config) []schema.ImpactFactor {
	return newModel(cfg).ExplainFactors(cfg.Inputs, cfg.Symmetric)
}

// riskChange returns predicted - baseline without float drift.
func riskChange(baseline, predicted float64) float64 {
	return decimal.NewFromFloat(predicted).Sub(decimal.NewFromFloat(baseline)).InexactFloat64()
}
