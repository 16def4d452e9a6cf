package core

import (
	"context"
	"fmt"
	"math"

	"github.com/huangsam/attrition/core/algo"
	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/schema"
	"github.com/shopspring/decimal"
)

// fieldUnits is the unit suffix of each numeric field in sweep labels.
var fieldUnits = map[schema.FieldKey]string{
	schema.FieldSalaryIncrease:  "%",
	schema.FieldTrainingHours:   "h",
	schema.FieldWorkFromHome:    "d/wk",
	schema.FieldJobSatisfaction: "/5",
}

// Sweep varies one field across its whole domain with every other input held fixed.
func Sweep(ctx context.Context, cfg *contract.Config, mgr contract.RosterManager) (schema.SweepResult, error) {
	if cfg.SweepField == "" {
		return schema.SweepResult{}, fmt.Errorf("--field is required")
	}
	baseline, err := ResolveBaseline(ctx, cfg, mgr)
	if err != nil {
		return schema.SweepResult{}, err
	}
	result, err := SweepField(newModel(cfg), baseline, cfg.Inputs, cfg.SweepField, cfg.ActiveThresholds())
	if err != nil {
		return schema.SweepResult{}, err
	}
	result.EmployeeID = cfg.EmployeeID
	return result, nil
}

// SweepField computes the sensitivity curve of one field.
func SweepField(model *algo.Model, baseline float64, in schema.ScenarioInputs, field schema.FieldKey, thresholds schema.RiskThresholds) (schema.SweepResult, error) {
	variants, err := sweepVariants(in, field)
	if err != nil {
		return schema.SweepResult{}, err
	}

	result := schema.SweepResult{
		Field:        field,
		BaselineRisk: baseline,
		Inputs:       in,
		Points:       make([]schema.SweepPoint, 0, len(variants)),
		MinRisk:      math.Inf(1),
		MaxRisk:      math.Inf(-1),
	}
	for _, v := range variants {
		predicted := model.PredictRisk(baseline, v.inputs)
		result.Points = append(result.Points, schema.SweepPoint{
			Value:         v.value,
			Label:         v.label,
			PredictedRisk: predicted,
			Change:        riskChange(baseline, predicted),
			Level:         thresholds.Classify(predicted),
		})
		result.MinRisk = math.Min(result.MinRisk, predicted)
		result.MaxRisk = math.Max(result.MaxRisk, predicted)
	}
	result.Sensitivity = riskChange(result.MinRisk, result.MaxRisk)
	return result, nil
}

// sweepVariant is one point of a sweep before it is simulated.
type sweepVariant struct {
	value  float64
	label  string
	inputs schema.ScenarioInputs
}

// sweepVariants enumerates the inputs of a sweep in ascending order.
func sweepVariants(in schema.ScenarioInputs, field schema.FieldKey) ([]sweepVariant, error) {
	if field == schema.FieldBusinessTravel {
		variants := make([]sweepVariant, len(schema.AllTravelFrequencies))
		for i, travel := range schema.AllTravelFrequencies {
			v := in
			v.BusinessTravel = travel
			variants[i] = sweepVariant{value: float64(i), label: string(travel), inputs: v}
		}
		return variants, nil
	}

	domain, ok := schema.FieldDomains[field]
	if !ok {
		return nil, fmt.Errorf("field %s cannot be swept", field)
	}

	if field == schema.FieldOvertime || field == schema.FieldManagerChange {
		return []sweepVariant{
			{value: 0, label: "no", inputs: in.WithNumericValue(field, 0)},
			{value: 1, label: "yes", inputs: in.WithNumericValue(field, 1)},
		}, nil
	}

	// Step with an integer count so that min + i*step never drifts past max.
	minD, maxD, stepD := decimal.NewFromFloat(domain.Min), decimal.NewFromFloat(domain.Max), decimal.NewFromFloat(domain.Step)
	steps := maxD.Sub(minD).Div(stepD).IntPart()
	variants := make([]sweepVariant, 0, steps+1)
	for i := range steps + 1 {
		value := minD.Add(stepD.Mul(decimal.NewFromInt(i))).InexactFloat64()
		variants = append(variants, sweepVariant{
			value:  value,
			label:  fmt.Sprintf("%s%s", decimal.NewFromFloat(value).String(), fieldUnits[field]),
			inputs: in.WithNumericValue(field, value),
		})
	}
	return variants, nil
}
