// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSimulation prints a single simulation using the configured output format.
func (ow *OutWriter) WriteSimulation(result schema.SimulationResult, cfg *contract.Config) error {
	return WriteSimulationResult(result, cfg)
}

// WriteSweep prints a sensitivity sweep using the configured output format.
func (ow *OutWriter) WriteSweep(result schema.SweepResult, cfg *contract.Config) error {
	return WriteSweepResult(result, cfg)
}

// WriteSegment prints a segment simulation using the configured output format.
func (ow *OutWriter) WriteSegment(result schema.SegmentResult, cfg *contract.Config) error {
	return WriteSegmentResult(result, cfg)
}

// WriteComparison prints a scenario comparison using the configured output format.
func (ow *OutWriter) WriteComparison(result schema.ComparisonResult, cfg *contract.Config) error {
	return WriteComparisonResult(result, cfg)
}

// WriteModel prints the risk model using the configured output format.
func (ow *OutWriter) WriteModel(model schema.ModelRenderModel, cfg *contract.Config) error {
	return WriteModelDefinition(model, cfg)
}

// WriteEmployees prints roster records using the configured output format.
func (ow *OutWriter) WriteEmployees(employees []schema.Employee, cfg *contract.Config) error {
	return WriteEmployeeList(employees, cfg)
}

// WriteEmployee prints one roster record using the configured output format.
func (ow *OutWriter) WriteEmployee(employee schema.Employee, cfg *contract.Config) error {
	return WriteEmployeeDetail(employee, cfg)
}

// levelOf classifies a score with the active thresholds.
func levelOf(cfg *contract.Config, score float64) schema.RiskLevel {
	return cfg.ActiveThresholds().Classify(score)
}
