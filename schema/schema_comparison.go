package schema

// NamedScenario is one entry of a scenario file.
type NamedScenario struct {
	Name   string         `json:"name" yaml:"name"`
	Inputs ScenarioInputs `json:"inputs" yaml:"inputs"`
}

// RankedSimulation is a simulation with its position in a comparison.
type RankedSimulation struct {
	Rank int `json:"rank"`
	SimulationResult
}

// ComparisonResult ranks several scenarios applied to the same baseline.
type ComparisonResult struct {
	BaselineRisk float64            `json:"baseline_risk"`
	EmployeeID   string             `json:"employee_id,omitempty"`
	Scenarios    []RankedSimulation `json:"scenarios"`
	Best         string             `json:"best"`
	Worst        string             `json:"worst"`
}
