package schema

// SweepPoint is the predicted risk at one value of the swept field.
type SweepPoint struct {
	Value         float64   `json:"value"`
	Label         string    `json:"label"`
	PredictedRisk float64   `json:"predicted_risk"`
	Change        float64   `json:"change"`
	Level         RiskLevel `json:"level"`
}

// SweepResult is a sensitivity curve for one field with all other inputs held fixed.
type SweepResult struct {
	Field        FieldKey       `json:"field"`
	EmployeeID   string         `json:"employee_id,omitempty"`
	BaselineRisk float64        `json:"baseline_risk"`
	Inputs       ScenarioInputs `json:"inputs"`
	Points       []SweepPoint   `json:"points"`
	MinRisk      float64        `json:"min_risk"`
	MaxRisk      float64        `json:"max_risk"`
	Sensitivity  float64        `json:"sensitivity"` // MaxRisk - MinRisk
}
