package schema

// ModelRule describes one row of the risk model for display.
type ModelRule struct {
	Field       FieldKey           `json:"field"`
	Label       string             `json:"label"`
	Kind        string             `json:"kind"`
	Neutral     string             `json:"neutral"`
	Domain      string             `json:"domain"`
	Coefficient string             `json:"coefficient"`
	Weights     map[string]float64 `json:"weights"`
	Surfacing   string             `json:"surfacing"`
}

// ModelRenderModel contains everything needed to display the risk model.
type ModelRenderModel struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Formula     string      `json:"formula"`
	Symmetric   bool        `json:"symmetric_factors"`
	Rules       []ModelRule `json:"rules"`
}
