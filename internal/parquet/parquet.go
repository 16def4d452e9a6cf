// Package parquet provides data structures and functions for exporting attrition
// simulation results and the employee roster to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/huangsam/attrition/schema"
	"github.com/parquet-go/parquet-go"
)

// FactorRow represents one impact factor of a simulation.
type FactorRow struct {
	// SimulationID is the UUID of the simulation that produced the factor
	SimulationID string `parquet:"simulation_id,snappy"`

	// EmployeeID is the roster employee the simulation ran for (nullable)
	EmployeeID *string `parquet:"employee_id,optional,snappy"`

	// Rank is the 1-based position of the factor by absolute delta
	Rank int32 `parquet:"rank,snappy"`

	Field     string  `parquet:"field,snappy"`
	Label     string  `parquet:"label,snappy"`
	Delta     float64 `parquet:"delta,snappy"`
	Favorable bool    `parquet:"favorable,snappy"`

	BaselineRisk  float64 `parquet:"baseline_risk,snappy"`
	PredictedRisk float64 `parquet:"predicted_risk,snappy"`

	// SimulatedAt is when the simulation completed (stored as TIMESTAMP with nanosecond precision)
	SimulatedAt time.Time `parquet:"simulated_at,snappy"`
}

// OutcomeRow represents the result of a segment simulation for one employee.
type OutcomeRow struct {
	EmployeeID    string  `parquet:"employee_id,snappy"`
	Name          string  `parquet:"name,snappy"`
	Department    string  `parquet:"department,snappy"`
	BaselineRisk  float64 `parquet:"baseline_risk,snappy"`
	PredictedRisk float64 `parquet:"predicted_risk,snappy"`
	Change        float64 `parquet:"change,snappy"`
	LevelBefore   string  `parquet:"level_before,snappy"`
	LevelAfter    string  `parquet:"level_after,snappy"`
}

// SweepRow represents one point of a sensitivity sweep.
type SweepRow struct {
	Field         string  `parquet:"field,snappy"`
	Value         float64 `parquet:"value,snappy"`
	Label         string  `parquet:"label,snappy"`
	PredictedRisk float64 `parquet:"predicted_risk,snappy"`
	Change        float64 `parquet:"change,snappy"`
	Level         string  `parquet:"level,snappy"`
}

// ScenarioRow represents one ranked scenario of a comparison.
type ScenarioRow struct {
	Rank          int32   `parquet:"rank,snappy"`
	Scenario      string  `parquet:"scenario,snappy"`
	BaselineRisk  float64 `parquet:"baseline_risk,snappy"`
	PredictedRisk float64 `parquet:"predicted_risk,snappy"`
	Change        float64 `parquet:"change,snappy"`
	Level         string  `parquet:"level,snappy"`
	Outcome       string  `parquet:"outcome,snappy"`

	// TopFactor is the label of the largest factor (nullable)
	TopFactor *string `parquet:"top_factor,optional,snappy"`
}

// RuleRow represents one rule of the risk model.
type RuleRow struct {
	Field       string `parquet:"field,snappy"`
	Label       string `parquet:"label,snappy"`
	Kind        string `parquet:"kind,snappy"`
	Neutral     string `parquet:"neutral,snappy"`
	Coefficient string `parquet:"coefficient,snappy"`
	Surfacing   string `parquet:"surfacing,snappy"`
}

// EmployeeRow represents one roster record.
// This struct maps to the attrition_employees database table.
type EmployeeRow struct {
	ID           string  `parquet:"id,snappy"`
	Name         string  `parquet:"name,snappy"`
	Department   string  `parquet:"department,snappy"`
	Role         string  `parquet:"role,snappy"`
	BaselineRisk float64 `parquet:"baseline_risk,snappy"`

	// TopDrivers is the comma-separated list of risk drivers
	TopDrivers string `parquet:"top_drivers,snappy"`

	// LastAssessed is the assessment date in YYYY-MM-DD form (nullable)
	LastAssessed *string `parquet:"last_assessed,optional,snappy"`

	Age          int32   `parquet:"age,snappy"`
	TenureYears  float64 `parquet:"tenure_years,snappy"`
	Satisfaction float64 `parquet:"satisfaction,snappy"`
}

// writeParquet writes rows of any tagged struct to a Parquet file.
// The schema is derived from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) (err error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// readParquet reads every row of a Parquet file into a slice of T.
func readParquet[T any](inputPath string) ([]T, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read parquet file: %w", err)
	}
	return rows[:n], nil
}

// WriteFactorsParquet writes the impact factors of a simulation to a Parquet file.
func WriteFactorsParquet(data []FactorRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteOutcomesParquet writes segment outcomes to a Parquet file.
func WriteOutcomesParquet(data []OutcomeRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSweepParquet writes sweep points to a Parquet file.
func WriteSweepParquet(data []SweepRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteScenariosParquet writes ranked scenarios to a Parquet file.
func WriteScenariosParquet(data []ScenarioRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRulesParquet writes the rules of the risk model to a Parquet file.
func WriteRulesParquet(data []RuleRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteEmployeesParquet writes roster records to a Parquet file.
func WriteEmployeesParquet(data []EmployeeRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ReadEmployeesParquet reads roster records from a Parquet file.
func ReadEmployeesParquet(inputPath string) ([]EmployeeRow, error) {
	return readParquet[EmployeeRow](inputPath)
}

// ConvertSimulationResult converts the factors of a simulation for Parquet export.
func ConvertSimulationResult(result schema.SimulationResult) []FactorRow {
	var employeeID *string
	if result.EmployeeID != "" {
		id := result.EmployeeID
		employeeID = &id
	}
	rows := make([]FactorRow, len(result.Factors))
	for i, f := range result.Factors {
		rows[i] = FactorRow{
			SimulationID:  result.Metadata.SimulationID,
			EmployeeID:    employeeID,
			Rank:          int32(i + 1),
			Field:         string(f.Field),
			Label:         f.Label,
			Delta:         f.Delta,
			Favorable:     f.Favorable,
			BaselineRisk:  result.BaselineRisk,
			PredictedRisk: result.PredictedRisk,
			SimulatedAt:   result.Metadata.CompletedAt,
		}
	}
	return rows
}

// ConvertOutcomes converts segment outcomes for Parquet export.
func ConvertOutcomes(outcomes []schema.EmployeeOutcome) []OutcomeRow {
	rows := make([]OutcomeRow, len(outcomes))
	for i, o := range outcomes {
		rows[i] = OutcomeRow{
			EmployeeID:    o.EmployeeID,
			Name:          o.Name,
			Department:    o.Department,
			BaselineRisk:  o.BaselineRisk,
			PredictedRisk: o.PredictedRisk,
			Change:        o.Change,
			LevelBefore:   string(o.LevelBefore),
			LevelAfter:    string(o.LevelAfter),
		}
	}
	return rows
}

// ConvertSweep converts the points of a sweep for Parquet export.
func ConvertSweep(result schema.SweepResult) []SweepRow {
	rows := make([]SweepRow, len(result.Points))
	for i, p := range result.Points {
		rows[i] = SweepRow{
			Field:         string(result.Field),
			Value:         p.Value,
			Label:         p.Label,
			PredictedRisk: p.PredictedRisk,
			Change:        p.Change,
			Level:         string(p.Level),
		}
	}
	return rows
}

// ConvertComparison converts ranked scenarios for Parquet export.
func ConvertComparison(result schema.ComparisonResult) []ScenarioRow {
	rows := make([]ScenarioRow, len(result.Scenarios))
	for i, s := range result.Scenarios {
		var top *string
		if len(s.Factors) > 0 {
			label := s.Factors[0].Label
			top = &label
		}
		rows[i] = ScenarioRow{
			Rank:          int32(s.Rank),
			Scenario:      s.Scenario,
			BaselineRisk:  s.BaselineRisk,
			PredictedRisk: s.PredictedRisk,
			Change:        s.Change,
			Level:         string(s.Level),
			Outcome:       string(s.Recommendation.Outcome),
			TopFactor:     top,
		}
	}
	return rows
}

// ConvertRules converts the rules of the model render model for Parquet export.
func ConvertRules(rules []schema.ModelRule) []RuleRow {
	rows := make([]RuleRow, len(rules))
	for i, r := range rules {
		rows[i] = RuleRow{
			Field:       string(r.Field),
			Label:       r.Label,
			Kind:        r.Kind,
			Neutral:     r.Neutral,
			Coefficient: r.Coefficient,
			Surfacing:   r.Surfacing,
		}
	}
	return rows
}

// ConvertEmployees converts roster records for Parquet export.
func ConvertEmployees(employees []schema.Employee) []EmployeeRow {
	rows := make([]EmployeeRow, len(employees))
	for i, e := range employees {
		var assessed *string
		if e.LastAssessed != "" {
			d := e.LastAssessed
			assessed = &d
		}
		rows[i] = EmployeeRow{
			ID:           e.ID,
			Name:         e.Name,
			Department:   e.Department,
			Role:         e.Role,
			BaselineRisk: e.BaselineRisk,
			TopDrivers:   schema.FormatDrivers(e.TopDrivers),
			LastAssessed: assessed,
			Age:          int32(e.Age),
			TenureYears:  e.TenureYears,
			Satisfaction: e.Satisfaction,
		}
	}
	return rows
}

// ConvertEmployeeRows converts Parquet roster records back to employees.
func ConvertEmployeeRows(rows []EmployeeRow) []schema.Employee {
	employees := make([]schema.Employee, len(rows))
	for i, r := range rows {
		var drivers []string
		for d := range strings.SplitSeq(r.TopDrivers, ",") {
			if d = strings.TrimSpace(d); d != "" {
				drivers = append(drivers, d)
			}
		}
		assessed := ""
		if r.LastAssessed != nil {
			assessed = *r.LastAssessed
		}
		employees[i] = schema.Employee{
			ID:           r.ID,
			Name:         r.Name,
			Department:   r.Department,
			Role:         r.Role,
			BaselineRisk: r.BaselineRisk,
			TopDrivers:   drivers,
			LastAssessed: assessed,
			Age:          int(r.Age),
			TenureYears:  r.TenureYears,
			Satisfaction: r.Satisfaction,
		}
	}
	return employees
}
