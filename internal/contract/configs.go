package contract

import (
	"fmt"
	"maps"
	"math"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/attrition/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
	DefaultServeAddr   = ":8080"
	DefaultLogLevel    = "info"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateFormat is the representation of roster assessment dates.
const DateFormat = time.DateOnly

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ModelCoefficientsRaw holds the custom coefficients of the risk model from the YAML config file.
// Use float64 pointers so that omitted coefficients keep their defaults.
type ModelCoefficientsRaw struct {
	SalaryIncrease   *float64 `mapstructure:"salary_increase"`
	Overtime         *float64 `mapstructure:"overtime"`
	TravelNever      *float64 `mapstructure:"travel_never"`
	TravelRarely     *float64 `mapstructure:"travel_rarely"`
	TravelFrequently *float64 `mapstructure:"travel_frequently"`
	TravelNonTravel  *float64 `mapstructure:"travel_non_travel"`
	TrainingHours    *float64 `mapstructure:"training_hours"`
	ManagerChange    *float64 `mapstructure:"manager_change"`
	WorkFromHome     *float64 `mapstructure:"work_from_home"`
	JobSatisfaction  *float64 `mapstructure:"job_satisfaction"`
}

// ThresholdsRawInput holds risk level thresholds from the YAML config file.
type ThresholdsRawInput struct {
	High   *float64 `mapstructure:"high"`
	Medium *float64 `mapstructure:"medium"`
}

// Config holds the runtime configuration for a simulation.
// This struct remains the "final, validated" config.
type Config struct {
	BaselineRisk float64
	EmployeeID   string
	Inputs       schema.ScenarioInputs
	Symmetric    bool
	Delay        time.Duration

	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	SweepField   schema.FieldKey
	ScenarioFile string
	Filter       schema.SegmentFilter

	RosterBackend   schema.DatabaseBackend
	RosterDBConnect string // Please use env var as this is plaintext

	ServeAddr string
	LogLevel  string

	// CustomCoefficients holds the coefficient overrides from the config file
	CustomCoefficients map[schema.CoefficientKey]float64

	// Thresholds are the lower bounds of the high and medium risk levels
	Thresholds schema.RiskThresholds
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Scenario fields from rootCmd.PersistentFlags() ---
	Baseline         float64 `mapstructure:"baseline"`
	Employee         string  `mapstructure:"employee"`
	SalaryIncrease   float64 `mapstructure:"salary-increase"`
	Overtime         bool    `mapstructure:"overtime"`
	BusinessTravel   string  `mapstructure:"business-travel"`
	TrainingHours    float64 `mapstructure:"training-hours"`
	ManagerChange    bool    `mapstructure:"manager-change"`
	WorkFromHome     float64 `mapstructure:"work-from-home"`
	JobSatisfaction  float64 `mapstructure:"job-satisfaction"`
	SymmetricFactors bool    `mapstructure:"symmetric-factors"`
	Delay            string  `mapstructure:"delay"`

	// --- Output and batch fields from rootCmd.PersistentFlags() ---
	OutputFile      string `mapstructure:"output-file"`
	Limit           int    `mapstructure:"limit"`
	Workers         int    `mapstructure:"workers"`
	Precision       int    `mapstructure:"precision"`
	Output          string `mapstructure:"output"`
	Width           int    `mapstructure:"width"`
	Color           string `mapstructure:"color"`
	RosterBackend   string `mapstructure:"roster-backend"`
	RosterDBConnect string `mapstructure:"roster-db-connect"`
	LogLevel        string `mapstructure:"log-level"`

	// --- Fields from sweepCmd.Flags() ---
	Field string `mapstructure:"field"`

	// --- Fields from compareCmd.Flags() ---
	ScenarioFile string `mapstructure:"scenario-file"`

	// --- Fields from segmentCmd.Flags() ---
	Department string `mapstructure:"department"`
	RiskLevel  string `mapstructure:"risk-level"`
	Search     string `mapstructure:"search"`
	Where      string `mapstructure:"where"`

	// --- Fields from serveCmd.Flags() ---
	Addr string `mapstructure:"addr"`

	// --- Custom coefficients from config file ---
	Model ModelCoefficientsRaw `mapstructure:"model"`

	// --- Risk thresholds from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.CustomCoefficients != nil {
		clone.CustomCoefficients = make(map[schema.CoefficientKey]float64, len(c.CustomCoefficients))
		maps.Copy(clone.CustomCoefficients, c.CustomCoefficients)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processScenario(cfg, input); err != nil {
		return err
	}
	if err := processSweepField(cfg, input); err != nil {
		return err
	}
	if err := processSegmentFilter(cfg, input); err != nil {
		return err
	}
	if err := processCustomCoefficients(cfg, input); err != nil {
		return err
	}
	if err := processRiskThresholds(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("roster-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("roster-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfig validates the roster backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	backend := strings.ToLower(strings.TrimSpace(input.RosterBackend))
	if backend == "" {
		backend = string(schema.NoneBackend)
	}
	cfg.RosterBackend = schema.DatabaseBackend(backend)
	if _, ok := schema.ValidDatabaseBackends[cfg.RosterBackend]; !ok {
		return fmt.Errorf("invalid roster backend '%s'. must be none, sqlite, mysql, postgresql", input.RosterBackend)
	}
	cfg.RosterDBConnect = input.RosterDBConnect
	return ValidateDatabaseConnectionString(cfg.RosterBackend, cfg.RosterDBConnect)
}

// validateSimpleInputs processes and validates the output, batch and backend fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.ScenarioFile = strings.TrimSpace(input.ScenarioFile)
	cfg.ServeAddr = input.Addr
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = DefaultServeAddr
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 4. Log Level Validation ---
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	// --- 5. Backend Validation ---
	return validateBackendConfig(cfg, input)
}

// processScenario clamps the scenario inputs to their domains and resolves the delay.
func processScenario(cfg *Config, input *ConfigRawInput) error {
	cfg.EmployeeID = strings.TrimSpace(input.Employee)
	cfg.Symmetric = input.SymmetricFactors

	baseline, warn := ClampBaseline(input.Baseline)
	if warn != nil {
		LogWarn("scenario input", warn)
	}
	cfg.BaselineRisk = baseline

	raw := schema.ScenarioInputs{
		SalaryIncrease:  input.SalaryIncrease,
		Overtime:        input.Overtime,
		BusinessTravel:  schema.TravelFrequency(input.BusinessTravel),
		TrainingHours:   input.TrainingHours,
		ManagerChange:   input.ManagerChange,
		WorkFromHome:    input.WorkFromHome,
		JobSatisfaction: input.JobSatisfaction,
	}
	inputs, warnings, err := ClampScenario(raw)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		LogWarn("scenario input", w)
	}
	cfg.Inputs = inputs

	cfg.Delay = 0
	if d := strings.TrimSpace(input.Delay); d != "" {
		delay, err := time.ParseDuration(d)
		if err != nil {
			return fmt.Errorf("invalid --delay value '%s': %w", input.Delay, err)
		}
		if delay < 0 {
			return fmt.Errorf("delay cannot be negative (received %s)", delay)
		}
		cfg.Delay = delay
	}
	return nil
}

// processSweepField validates the field a sensitivity sweep varies.
func processSweepField(cfg *Config, input *ConfigRawInput) error {
	field := strings.ToLower(strings.TrimSpace(input.Field))
	cfg.SweepField = ""
	if field == "" {
		return nil
	}
	key, err := ParseFieldKey(field)
	if err != nil {
		return err
	}
	cfg.SweepField = key
	return nil
}

// ParseFieldKey accepts a scenario field in snake or kebab case.
func ParseFieldKey(s string) (schema.FieldKey, error) {
	key := schema.FieldKey(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for _, f := range schema.AllFields {
		if f == key {
			return key, nil
		}
	}
	names := make([]string, len(schema.AllFields))
	for i, f := range schema.AllFields {
		names[i] = string(f)
	}
	return "", fmt.Errorf("invalid field '%s'. must be one of %s", s, strings.Join(names, ", "))
}

// processSegmentFilter validates the roster filters of a segment run.
func processSegmentFilter(cfg *Config, input *ConfigRawInput) error {
	filter := schema.SegmentFilter{
		Department: strings.TrimSpace(input.Department),
		Search:     strings.TrimSpace(input.Search),
		Where:      strings.TrimSpace(input.Where),
	}
	level, err := ParseRiskLevel(input.RiskLevel)
	if err != nil {
		return err
	}
	filter.RiskLevel = level
	cfg.Filter = filter
	return nil
}

// ParseRiskLevel accepts high, medium or low in any case. The empty string and
// "all" mean no level filter.
func ParseRiskLevel(s string) (schema.RiskLevel, error) {
	level := strings.ToLower(strings.TrimSpace(s))
	if level == "" || level == "all" {
		return "", nil
	}
	if _, ok := schema.ValidRiskLevels[schema.RiskLevel(level)]; !ok {
		return "", fmt.Errorf("invalid risk level '%s'. must be high, medium, low, all", s)
	}
	return schema.RiskLevel(level), nil
}

// ProcessModelRawInput converts ModelCoefficientsRaw into a coefficient override map.
// Only the coefficients present in the raw input appear in the result.
func ProcessModelRawInput(raw ModelCoefficientsRaw) (map[schema.CoefficientKey]float64, error) {
	result := make(map[schema.CoefficientKey]float64)

	fields := []struct {
		key   schema.CoefficientKey
		value *float64
	}{
		{schema.CoefSalaryIncrease, raw.SalaryIncrease},
		{schema.CoefOvertime, raw.Overtime},
		{schema.CoefTravelNever, raw.TravelNever},
		{schema.CoefTravelRarely, raw.TravelRarely},
		{schema.CoefTravelFrequently, raw.TravelFrequently},
		{schema.CoefTravelNonTravel, raw.TravelNonTravel},
		{schema.CoefTrainingHours, raw.TrainingHours},
		{schema.CoefManagerChange, raw.ManagerChange},
		{schema.CoefWorkFromHome, raw.WorkFromHome},
		{schema.CoefJobSatisfaction, raw.JobSatisfaction},
	}

	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if math.IsNaN(*f.value) || math.IsInf(*f.value, 0) {
			return nil, fmt.Errorf("model coefficient %s must be a finite number", f.key)
		}
		result[f.key] = *f.value
	}

	return result, nil
}

// processCustomCoefficients converts the raw model section into cfg.CustomCoefficients.
func processCustomCoefficients(cfg *Config, input *ConfigRawInput) error {
	coefs, err := ProcessModelRawInput(input.Model)
	if err != nil {
		return err
	}
	cfg.CustomCoefficients = coefs
	return nil
}

// ComputedCoefficients returns the default coefficients overridden by the custom ones.
func (c *Config) ComputedCoefficients() map[schema.CoefficientKey]float64 {
	coefs := schema.GetDefaultCoefficients()
	maps.Copy(coefs, c.CustomCoefficients)
	return coefs
}

// ActiveThresholds returns the configured risk thresholds, or the defaults when none were set.
func (c *Config) ActiveThresholds() schema.RiskThresholds {
	if c.Thresholds == (schema.RiskThresholds{}) {
		return schema.DefaultRiskThresholds()
	}
	return c.Thresholds
}

// processRiskThresholds resolves the risk level thresholds from defaults and the config file.
func processRiskThresholds(cfg *Config, input *ConfigRawInput) error {
	thresholds := schema.DefaultRiskThresholds()

	if input.Thresholds.High != nil {
		thresholds.High = *input.Thresholds.High
	}
	if input.Thresholds.Medium != nil {
		thresholds.Medium = *input.Thresholds.Medium
	}

	if thresholds.Medium < 0 || thresholds.High > 100 || thresholds.Medium >= thresholds.High {
		return fmt.Errorf("risk thresholds must satisfy 0 <= medium < high <= 100 (received medium=%.2f high=%.2f)",
			thresholds.Medium, thresholds.High)
	}

	cfg.Thresholds = thresholds
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
