package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/huangsam/attrition/core/algo"
	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/schema"
	"github.com/shopspring/decimal"
)

// Limits applied to every filter expression.
const (
	whereInterruptFrequency = 100
	whereCostLimit          = 10000
)

// employeePredicate reports whether an employee matches a filter expression.
type employeePredicate func(schema.Employee) (bool, error)

// compileWhere compiles a CEL boolean expression over `employee`.
// An empty expression matches everyone.
func compileWhere(expr string) (employeePredicate, error) {
	if expr == "" {
		return func(schema.Employee) (bool, error) { return true, nil }, nil
	}

	env, err := cel.NewEnv(cel.Variable("employee", cel.DynType))
	if err != nil {
		return nil, fmt.Errorf("failed to create filter environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid --where expression: %w", issues.Err())
	}
	prg, err := env.Program(ast,
		cel.InterruptCheckFrequency(whereInterruptFrequency),
		cel.CostLimit(whereCostLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid --where expression: %w", err)
	}

	return func(e schema.Employee) (bool, error) {
		out, _, err := prg.Eval(map[string]any{"employee": e.AsMap()})
		if err != nil {
			return false, fmt.Errorf("--where failed for %s: %w", e.ID, err)
		}
		matched, ok := out.Value().(bool)
		if !ok {
			return false, fmt.Errorf("--where must evaluate to a boolean, got %s", out.Type().TypeName())
		}
		return matched, nil
	}, nil
}

// FilterEmployees returns the employees that pass every filter, keeping their order.
func FilterEmployees(employees []schema.Employee, filter schema.SegmentFilter, thresholds schema.RiskThresholds) ([]schema.Employee, error) {
	where, err := compileWhere(filter.Where)
	if err != nil {
		return nil, err
	}

	matched := make([]schema.Employee, 0, len(employees))
	for _, e := range employees {
		if !schema.MatchesDepartment(e, filter.Department) {
			continue
		}
		if filter.RiskLevel != "" && thresholds.Classify(e.BaselineRisk) != filter.RiskLevel {
			continue
		}
		if !schema.MatchesSearch(e, filter.Search) {
			continue
		}
		ok, err := where(e)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// SimulateSegment applies the configured scenario to every matching employee of the roster.
func SimulateSegment(ctx context.Context, cfg *contract.Config, mgr contract.RosterManager) (schema.SegmentResult, error) {
	if mgr == nil {
		return schema.SegmentResult{}, fmt.Errorf("segment simulation requires a roster")
	}
	employees, err := mgr.GetRosterStore().ListEmployees(ctx)
	if err != nil {
		return schema.SegmentResult{}, err
	}

	thresholds := cfg.ActiveThresholds()
	matched, err := FilterEmployees(employees, cfg.Filter, thresholds)
	if err != nil {
		return schema.SegmentResult{}, err
	}

	outcomes := simulateEmployees(ctx, cfg, newModel(cfg), matched, thresholds)
	if err := ctx.Err(); err != nil {
		return schema.SegmentResult{}, err
	}

	loggerFrom(ctx).Debug("segment simulated", "roster", len(employees), "matched", len(matched))
	return schema.SegmentResult{
		Inputs:   cfg.Inputs,
		Filter:   cfg.Filter,
		Summary:  summarizeSegment(outcomes),
		Outcomes: algo.RankOutcomes(outcomes, cfg.ResultLimit),
	}, nil
}

// simulateEmployees runs the scenario for each employee in parallel using a worker pool.
// It spawns cfg.Workers goroutines and gathers their outcomes into one slice.
func simulateEmployees(ctx context.Context, cfg *contract.Config, model *algo.Model, employees []schema.Employee, thresholds schema.RiskThresholds) []schema.EmployeeOutcome {
	employeeCh := make(chan schema.Employee, len(employees))
	outcomeCh := make(chan schema.EmployeeOutcome, len(employees))
	var wg sync.WaitGroup

	workers := max(cfg.Workers, 1)
	for range workers {
		wg.Go(func() {
			for e := range employeeCh {
				if ctx.Err() != nil {
					continue // drain without work once cancelled
				}
				predicted := model.PredictRisk(e.BaselineRisk, cfg.Inputs)
				outcomeCh <- schema.EmployeeOutcome{
					EmployeeID:    e.ID,
					Name:          e.Name,
					Department:    e.Department,
					BaselineRisk:  e.BaselineRisk,
					PredictedRisk: predicted,
					Change:        riskChange(e.BaselineRisk, predicted),
					LevelBefore:   thresholds.Classify(e.BaselineRisk),
					LevelAfter:    thresholds.Classify(predicted),
				}
			}
		})
	}

	for _, e := range employees {
		employeeCh <- e
	}
	close(employeeCh)

	wg.Wait()
	close(outcomeCh)

	outcomes := make([]schema.EmployeeOutcome, 0, len(employees))
	for o := range outcomeCh {
		outcomes = append(outcomes, o)
	}
	return outcomes
}

// summarizeSegment aggregates every outcome, including the ones cut by the limit.
func summarizeSegment(outcomes []schema.EmployeeOutcome) schema.SegmentSummary {
	summary := schema.SegmentSummary{Employees: len(outcomes)}
	if len(outcomes) == 0 {
		return summary
	}
	var baseline, predicted decimal.Decimal
	for _, o := range outcomes {
		baseline = baseline.Add(decimal.NewFromFloat(o.BaselineRisk))
		predicted = predicted.Add(decimal.NewFromFloat(o.PredictedRisk))
		if o.LevelBefore == schema.HighRisk {
			summary.HighRiskBefore++
		}
		if o.LevelAfter == schema.HighRisk {
			summary.HighRiskAfter++
		}
	}
	n := decimal.NewFromInt(int64(len(outcomes)))
	summary.MeanBaseline = baseline.Div(n).Round(4).InexactFloat64()
	summary.MeanPredicted = predicted.Div(n).Round(4).InexactFloat64()
	summary.MeanChange = predicted.Sub(baseline).Div(n).Round(4).InexactFloat64()
	return summary
}

// ValidateWhere reports whether a filter expression compiles.
func ValidateWhere(expr string) error {
	_, err := compileWhere(expr)
	return err
}
