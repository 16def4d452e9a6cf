package schema

// RosterStatus represents the status of the roster store.
type RosterStatus struct {
	Backend          string         `json:"backend"`
	Connected        bool           `json:"connected"`
	ReadOnly         bool           `json:"read_only"`
	TotalEmployees   int            `json:"total_employees"`
	Departments      map[string]int `json:"departments"`
	LastAssessed     string         `json:"last_assessed"`
	MeanBaselineRisk float64        `json:"mean_baseline_risk"`
	SchemaVersion    int            `json:"schema_version"` // 0 when unmigrated
}
