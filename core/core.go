// Package core has core logic for simulations, sweeps, segments and comparisons.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/schema"
)

// ExecutorFunc defines the function signature for executing the different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.RosterManager) error

// ExecuteSimulate runs a single simulation, after the optional delay, and prints it.
// It serves as the main entry point for the 'simulate' command.
func ExecuteSimulate(ctx context.Context, cfg *contract.Config, mgr contract.RosterManager) error {
	result, err := RunDeferred(ctx, cfg.Delay, func() (schema.SimulationResult, error) {
		return Simulate(ctx, cfg, mgr)
	})
	if err != nil {
		return err
	}
	return writer.WriteSimulation(result, cfg)
}

// ExecuteSweep runs a sensitivity sweep of --field and prints it.
func ExecuteSweep(ctx context.Context, cfg *contract.Config, mgr contract.RosterManager) error {
	result, err := RunDeferred(ctx, cfg.Delay, func() (schema.SweepResult, error) {
		return Sweep(ctx, cfg, mgr)
	})
	if err != nil {
		return err
	}
	return writer.WriteSweep(result, cfg)
}

// ExecuteSegment applies the scenario to the filtered roster and prints the ranked outcomes.
func ExecuteSegment(ctx context.Context, cfg *contract.Config, mgr contract.RosterManager) error {
	start := time.Now()
	result, err := RunDeferred(ctx, cfg.Delay, func() (schema.SegmentResult, error) {
		return SimulateSegment(ctx, cfg, mgr)
	})
	if err != nil {
		return err
	}
	loggerFrom(ctx).Debug("segment finished", "duration", time.Since(start))
	return writer.WriteSegment(result, cfg)
}

// ExecuteCompare simulates every scenario of --scenario-file and prints the ranking.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, mgr contract.RosterManager) error {
	scenarios, err := LoadScenarioFile(cfg.ScenarioFile)
	if err != nil {
		return err
	}
	result, err := RunDeferred(ctx, cfg.Delay, func() (schema.ComparisonResult, error) {
		return CompareScenarios(ctx, cfg, mgr, scenarios)
	})
	if err != nil {
		return err
	}
	return writer.WriteComparison(result, cfg)
}

// ExecuteModel prints the active risk model, including config overrides.
func ExecuteModel(_ context.Context, cfg *contract.Config, _ contract.RosterManager) error {
	return writer.WriteModel(BuildModel(cfg), cfg)
}

// ListEmployees returns the roster narrowed by the configured filter and cut to --limit.
func ListEmployees(ctx context.Context, cfg *contract.Config, mgr contract.RosterManager) ([]schema.Employee, error) {
	if mgr == nil {
		return nil, fmt.Errorf("listing employees requires a roster")
	}
	employees, err := mgr.GetRosterStore().ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	matched, err := FilterEmployees(employees, cfg.Filter, cfg.ActiveThresholds())
	if err != nil {
		return nil, err
	}
	if cfg.ResultLimit > 0 && len(matched) > cfg.ResultLimit {
		matched = matched[:cfg.ResultLimit]
	}
	return matched, nil
}

// ExecuteRosterList prints the filtered roster.
func ExecuteRosterList(ctx context.Context, cfg *contract.Config, mgr contract.RosterManager) error {
	employees, err := ListEmployees(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WriteEmployees(employees, cfg)
}

// ExecuteRosterShow prints one employee of the roster.
func ExecuteRosterShow(ctx context.Context, cfg *contract.Config, mgr contract.RosterManager, id string) error {
	if mgr == nil {
		return fmt.Errorf("showing an employee requires a roster")
	}
	e, err := mgr.GetRosterStore().GetEmployee(ctx, id)
	if err != nil {
		return err
	}
	return writer.WriteEmployee(e, cfg)
}
