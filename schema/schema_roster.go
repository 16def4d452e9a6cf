package schema

// Employee is one roster record with the baseline risk a simulation starts from.
type Employee struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Department   string   `json:"department" yaml:"department"`
	Role         string   `json:"role" yaml:"role"`
	BaselineRisk float64  `json:"baseline_risk" yaml:"baseline_risk"`
	TopDrivers   []string `json:"top_drivers" yaml:"top_drivers"`
	LastAssessed string   `json:"last_assessed" yaml:"last_assessed"` // YYYY-MM-DD
	Age          int      `json:"age" yaml:"age"`
	TenureYears  float64  `json:"tenure_years" yaml:"tenure_years"`
	Satisfaction float64  `json:"satisfaction" yaml:"satisfaction"`
}

// AsMap exposes the employee to filter expressions.
func (e Employee) AsMap() map[string]any {
	drivers := make([]any, len(e.TopDrivers))
	for i, d := range e.TopDrivers {
		drivers[i] = d
	}
	return map[string]any{
		"id":            e.ID,
		"name":          e.Name,
		"department":    e.Department,
		"role":          e.Role,
		"baseline_risk": e.BaselineRisk,
		"top_drivers":   drivers,
		"last_assessed": e.LastAssessed,
		"age":           int64(e.Age),
		"tenure_years":  e.TenureYears,
		"satisfaction":  e.Satisfaction,
	}
}
