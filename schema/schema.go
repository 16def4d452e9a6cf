// Package schema has the models, enums and domains shared by every part of attrition.
package schema

import "time"

// ScenarioInputs is the set of HR interventions driving one simulation.
type ScenarioInputs struct {
	SalaryIncrease  float64         `json:"salary_increase" yaml:"salary_increase"`   // Percent, 0-20
	Overtime        bool            `json:"overtime" yaml:"overtime"`                 // Overtime required
	BusinessTravel  TravelFrequency `json:"business_travel" yaml:"business_travel"`   // Travel category
	TrainingHours   float64         `json:"training_hours" yaml:"training_hours"`     // Hours per year, 0-120
	ManagerChange   bool            `json:"manager_change" yaml:"manager_change"`     // Manager changed recently
	WorkFromHome    float64         `json:"work_from_home" yaml:"work_from_home"`     // Days per week, 0-5
	JobSatisfaction float64         `json:"job_satisfaction" yaml:"job_satisfaction"` // Survey level, 1-5
}

// FieldDomain is the bounded range an input surface allows for a numeric field.
type FieldDomain struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// FieldDomains holds the domain of every numeric or boolean scenario field.
// Booleans are modeled as 0 or 1.
var FieldDomains = map[FieldKey]FieldDomain{
	FieldSalaryIncrease:  {Min: 0, Max: 20, Step: 1},
	FieldOvertime:        {Min: 0, Max: 1, Step: 1},
	FieldTrainingHours:   {Min: 0, Max: 120, Step: 5},
	FieldManagerChange:   {Min: 0, Max: 1, Step: 1},
	FieldWorkFromHome:    {Min: 0, Max: 5, Step: 1},
	FieldJobSatisfaction: {Min: 1, Max: 5, Step: 1},
}

// DefaultBaselineRisk is the baseline used when no employee or baseline is given.
const DefaultBaselineRisk = 72.0

// DefaultScenarioInputs returns the neutral scenario. Every field contributes zero.
func DefaultScenarioInputs() ScenarioInputs {
	return ScenarioInputs{
		SalaryIncrease:  0,
		Overtime:        false,
		BusinessTravel:  TravelRarely,
		TrainingHours:   40,
		ManagerChange:   false,
		WorkFromHome:    2,
		JobSatisfaction: 3,
	}
}

// NumericValue returns the value of a field as a number. Booleans map to 0 or 1
// and the travel field has no numeric value.
func (in ScenarioInputs) NumericValue(field FieldKey) float64 {
	switch field {
	case FieldSalaryIncrease:
		return in.SalaryIncrease
	case FieldOvertime:
		return boolToFloat(in.Overtime)
	case FieldTrainingHours:
		return in.TrainingHours
	case FieldManagerChange:
		return boolToFloat(in.ManagerChange)
	case FieldWorkFromHome:
		return in.WorkFromHome
	case FieldJobSatisfaction:
		return in.JobSatisfaction
	default:
		return 0
	}
}

// WithNumericValue returns a copy of the inputs with one numeric or boolean field replaced.
func (in ScenarioInputs) WithNumericValue(field FieldKey, v float64) ScenarioInputs {
	out := in
	switch field {
	case FieldSalaryIncrease:
		out.SalaryIncrease = v
	case FieldOvertime:
		out.Overtime = v != 0
	case FieldTrainingHours:
		out.TrainingHours = v
	case FieldManagerChange:
		out.ManagerChange = v != 0
	case FieldWorkFromHome:
		out.WorkFromHome = v
	case FieldJobSatisfaction:
		out.JobSatisfaction = v
	}
	return out
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// ImpactFactor is one input's signed contribution to the predicted risk.
type ImpactFactor struct {
	Field     FieldKey `json:"field"`
	Label     string   `json:"label"`
	Delta     float64  `json:"delta"`     // Positive raises risk
	Favorable bool     `json:"favorable"` // True when Delta lowers risk
}

// Recommendation is the guidance shown next to a simulation outcome.
type Recommendation struct {
	Outcome Outcome  `json:"outcome"`
	Title   string   `json:"title"`
	Actions []string `json:"actions"`
}

// SimulationMetadata describes one engine invocation.
type SimulationMetadata struct {
	SimulationID string    `json:"simulation_id"`
	StartedAt    time.Time `json:"started_at"`
	CompletedAt  time.Time `json:"completed_at"`
	DurationMs   int64     `json:"duration_ms"`
	Symmetric    bool      `json:"symmetric_factors"`
}

// SimulationResult holds everything produced by a single simulation.
type SimulationResult struct {
	Scenario       string             `json:"scenario,omitempty"`
	EmployeeID     string             `json:"employee_id,omitempty"`
	Inputs         ScenarioInputs     `json:"inputs"`
	BaselineRisk   float64            `json:"baseline_risk"`
	PredictedRisk  float64            `json:"predicted_risk"`
	Change         float64            `json:"change"`
	Level          RiskLevel          `json:"level"`
	Factors        []ImpactFactor     `json:"factors"`
	Recommendation Recommendation     `json:"recommendation"`
	Metadata       SimulationMetadata `json:"metadata"`
}
