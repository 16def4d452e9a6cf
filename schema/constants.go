package schema

// Custom string types for type safety.
type (
	// FieldKey identifies one scenario input.
	FieldKey string

	// CoefficientKey identifies one tunable weight in the risk model.
	CoefficientKey string

	// TravelFrequency is the business travel category of a scenario.
	TravelFrequency string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the roster.
	DatabaseBackend string

	// RiskLevel is the bucket a risk score falls into.
	RiskLevel string

	// Outcome is the direction a scenario moved the risk.
	Outcome string
)

// Scenario fields in their canonical order. Factor ties are broken by this order.
const (
	FieldSalaryIncrease  FieldKey = "salary_increase"
	FieldOvertime        FieldKey = "overtime"
	FieldBusinessTravel  FieldKey = "business_travel"
	FieldTrainingHours   FieldKey = "training_hours"
	FieldManagerChange   FieldKey = "manager_change"
	FieldWorkFromHome    FieldKey = "work_from_home"
	FieldJobSatisfaction FieldKey = "job_satisfaction"
)

// AllFields lists the scenario fields in canonical order.
var AllFields = []FieldKey{
	FieldSalaryIncrease,
	FieldOvertime,
	FieldBusinessTravel,
	FieldTrainingHours,
	FieldManagerChange,
	FieldWorkFromHome,
	FieldJobSatisfaction,
}

// Travel categories.
const (
	TravelNever      TravelFrequency = "never"
	TravelRarely     TravelFrequency = "rarely" // default
	TravelFrequently TravelFrequency = "frequently"
	TravelNonTravel  TravelFrequency = "non-travel"
)

// AllTravelFrequencies lists the travel categories in display order.
var AllTravelFrequencies = []TravelFrequency{TravelNever, TravelRarely, TravelFrequently, TravelNonTravel}

// Model coefficients. Linear weights are per unit away from the neutral value.
const (
	CoefSalaryIncrease   CoefficientKey = "salary_increase"
	CoefOvertime         CoefficientKey = "overtime"
	CoefTravelNever      CoefficientKey = "travel_never"
	CoefTravelRarely     CoefficientKey = "travel_rarely"
	CoefTravelFrequently CoefficientKey = "travel_frequently"
	CoefTravelNonTravel  CoefficientKey = "travel_non_travel"
	CoefTrainingHours    CoefficientKey = "training_hours"
	CoefManagerChange    CoefficientKey = "manager_change"
	CoefWorkFromHome     CoefficientKey = "work_from_home"
	CoefJobSatisfaction  CoefficientKey = "job_satisfaction"
)

// TravelCoefficients maps each travel category to its coefficient key.
var TravelCoefficients = map[TravelFrequency]CoefficientKey{
	TravelNever:      CoefTravelNever,
	TravelRarely:     CoefTravelRarely,
	TravelFrequently: CoefTravelFrequently,
	TravelNonTravel:  CoefTravelNonTravel,
}

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All roster backends supported.
const (
	NoneBackend       DatabaseBackend = "none" // default, fixture roster
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// Risk levels.
const (
	HighRisk   RiskLevel = "high"
	MediumRisk RiskLevel = "medium"
	LowRisk    RiskLevel = "low"
)

// Scenario outcomes.
const (
	OutcomeIncreased Outcome = "increased"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeReduced   Outcome = "reduced"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid roster backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	NoneBackend:       {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}

// ValidTravelFrequencies lists all valid travel categories.
var ValidTravelFrequencies = map[TravelFrequency]struct{}{
	TravelNever:      {},
	TravelRarely:     {},
	TravelFrequently: {},
	TravelNonTravel:  {},
}

// ValidRiskLevels lists all valid risk levels.
var ValidRiskLevels = map[RiskLevel]struct{}{
	HighRisk:   {},
	MediumRisk: {},
	LowRisk:    {},
}

// GetDefaultCoefficients returns the default coefficient table of the risk model.
func GetDefaultCoefficients() map[CoefficientKey]float64 {
	return map[CoefficientKey]float64{
		CoefSalaryIncrease:   -0.5,
		CoefOvertime:         8,
		CoefTravelNever:      -2,
		CoefTravelRarely:     0,
		CoefTravelFrequently: 5,
		CoefTravelNonTravel:  -3,
		CoefTrainingHours:    -0.1,
		CoefManagerChange:    12,
		CoefWorkFromHome:     -2,
		CoefJobSatisfaction:  -8,
	}
}
