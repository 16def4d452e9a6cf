package schema

// SegmentFilter narrows the roster before a segment simulation.
type SegmentFilter struct {
	Department string    `json:"department,omitempty"`
	RiskLevel  RiskLevel `json:"risk_level,omitempty"`
	Search     string    `json:"search,omitempty"`
	Where      string    `json:"where,omitempty"` // CEL expression over `employee`
}

// EmployeeOutcome is the result of applying a scenario to one employee.
type EmployeeOutcome struct {
	EmployeeID    string    `json:"employee_id"`
	Name          string    `json:"name"`
	Department    string    `json:"department"`
	BaselineRisk  float64   `json:"baseline_risk"`
	PredictedRisk float64   `json:"predicted_risk"`
	Change        float64   `json:"change"`
	LevelBefore   RiskLevel `json:"level_before"`
	LevelAfter    RiskLevel `json:"level_after"`
}

// SegmentSummary aggregates a segment simulation.
type SegmentSummary struct {
	Employees      int     `json:"employees"`
	MeanBaseline   float64 `json:"mean_baseline"`
	MeanPredicted  float64 `json:"mean_predicted"`
	MeanChange     float64 `json:"mean_change"`
	HighRiskBefore int     `json:"high_risk_before"`
	HighRiskAfter  int     `json:"high_risk_after"`
}

// SegmentResult holds the ranked outcomes of a segment simulation.
type SegmentResult struct {
	Inputs   ScenarioInputs    `json:"inputs"`
	Filter   SegmentFilter     `json:"filter"`
	Outcomes []EmployeeOutcome `json:"outcomes"`
	Summary  SegmentSummary    `json:"summary"`
}
