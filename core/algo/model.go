// Package algo holds the attrition risk model: a declarative table of additive rules
// evaluated over a baseline, plus the ranking of the factors it produces.
package algo

import (
	"maps"
	"math"

	"github.com/huangsam/attrition/schema"
	"github.com/shopspring/decimal"
)

// RuleKind determines how a rule turns an input into a contribution.
type RuleKind string

// All rule kinds supported.
const (
	LinearRule RuleKind = "linear" // (value - neutral) * weight
	FlagRule   RuleKind = "flag"   // weight when the flag is set
	LookupRule RuleKind = "lookup" // weight looked up by category
)

// SurfaceMode decides when a rule shows up as an impact factor in legacy surfacing.
type SurfaceMode string

// All surface modes supported.
const (
	SurfaceAboveNeutral SurfaceMode = "above-neutral"
	SurfaceWhenSet      SurfaceMode = "when-set"
	SurfaceNonNeutral   SurfaceMode = "non-neutral"
	SurfaceCategories   SurfaceMode = "categories"
	SurfaceNever        SurfaceMode = "never"
)

// Risk score bounds.
const (
	MinRisk = 0.0
	MaxRisk = 100.0
)

// Rule is one row of the risk model.
type Rule struct {
	Field   schema.FieldKey
	Label   string
	Kind    RuleKind
	Neutral float64
	Weight  decimal.Decimal

	// Lookup rules only.
	Lookup         map[schema.TravelFrequency]decimal.Decimal
	CategoryLabels map[schema.TravelFrequency]string
	Surfaced       map[schema.TravelFrequency]struct{}

	Surface SurfaceMode

	// LegacyInverted reports the delta with the opposite sign in legacy surfacing.
	LegacyInverted bool
}

// Model is an immutable set of rules. It is safe for concurrent use.
type Model struct {
	rules        []Rule
	coefficients map[schema.CoefficientKey]float64
}

var defaultModel = NewModel(nil)

// DefaultModel returns the model built from the default coefficients.
func DefaultModel() *Model {
	return defaultModel
}

// NewModel builds a model from the default coefficients overridden by the given ones.
// Non-finite overrides are ignored.
func NewModel(overrides map[schema.CoefficientKey]float64) *Model {
	coefs := schema.GetDefaultCoefficients()
	for k, v := range overrides {
		if _, ok := coefs[k]; ok && isFinite(v) {
			coefs[k] = v
		}
	}

	d := func(k schema.CoefficientKey) decimal.Decimal {
		return decimal.NewFromFloat(coefs[k])
	}

	lookup := make(map[schema.TravelFrequency]decimal.Decimal, len(schema.TravelCoefficients))
	for cat, key := range schema.TravelCoefficients {
		lookup[cat] = d(key)
	}

	rules := []Rule{
		{
			Field:   schema.FieldSalaryIncrease,
			Label:   "Salary Increase",
			Kind:    LinearRule,
			Neutral: 0,
			Weight:  d(schema.CoefSalaryIncrease),
			Surface: SurfaceAboveNeutral,
		},
		{
			Field:   schema.FieldOvertime,
			Label:   "Overtime Required",
			Kind:    FlagRule,
			Weight:  d(schema.CoefOvertime),
			Surface: SurfaceWhenSet,
		},
		{
			Field:  schema.FieldBusinessTravel,
			Label:  "Business Travel",
			Kind:   LookupRule,
			Lookup: lookup,
			CategoryLabels: map[schema.TravelFrequency]string{
				schema.TravelNever:      "No Travel",
				schema.TravelRarely:     "Rare Travel",
				schema.TravelFrequently: "Frequent Travel",
				schema.TravelNonTravel:  "Non-Travel Role",
			},
			Surfaced: map[schema.TravelFrequency]struct{}{schema.TravelFrequently: {}},
			Surface:  SurfaceCategories,
		},
		{
			Field:   schema.FieldTrainingHours,
			Label:   "Training Hours",
			Kind:    LinearRule,
			Neutral: 40,
			Weight:  d(schema.CoefTrainingHours),
			Surface: SurfaceNever,
		},
		{
			Field:   schema.FieldManagerChange,
			Label:   "Manager Change",
			Kind:    FlagRule,
			Weight:  d(schema.CoefManagerChange),
			Surface: SurfaceWhenSet,
		},
		{
			Field:   schema.FieldWorkFromHome,
			Label:   "Work From Home",
			Kind:    LinearRule,
			Neutral: 2,
			Weight:  d(schema.CoefWorkFromHome),
			Surface: SurfaceAboveNeutral,
		},
		{
			Field:   schema.FieldJobSatisfaction,
			Label:   "Job Satisfaction Change",
			Kind:    LinearRule,
			Neutral: 3,
			Weight:  d(schema.CoefJobSatisfaction),
			Surface: SurfaceNonNeutral,

			LegacyInverted: true,
		},
	}

	return &Model{rules: rules, coefficients: coefs}
}

// Rules returns the rules of the model in canonical field order.
func (m *Model) Rules() []Rule {
	out := make([]Rule, len(m.rules))
	copy(out, m.rules)
	return out
}

// Coefficients returns a copy of the coefficient table the model was built from.
func (m *Model) Coefficients() map[schema.CoefficientKey]float64 {
	out := make(map[schema.CoefficientKey]float64, len(m.coefficients))
	maps.Copy(out, m.coefficients)
	return out
}

// Contribution returns the signed amount this rule adds to the risk for the inputs.
// Non-finite numeric inputs contribute nothing.
func (r Rule) Contribution(in schema.ScenarioInputs) decimal.Decimal {
	switch r.Kind {
	case LinearRule:
		v := in.NumericValue(r.Field)
		if !isFinite(v) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(v).Sub(decimal.NewFromFloat(r.Neutral)).Mul(r.Weight)
	case FlagRule:
		if in.NumericValue(r.Field) != 0 {
			return r.Weight
		}
		return decimal.Zero
	case LookupRule:
		if w, ok := r.Lookup[in.BusinessTravel]; ok {
			return w
		}
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

// LabelFor returns the factor label for the inputs. Lookup rules label by category.
func (r Rule) LabelFor(in schema.ScenarioInputs) string {
	if r.Kind == LookupRule {
		if l, ok := r.CategoryLabels[in.BusinessTravel]; ok {
			return l
		}
	}
	return r.Label
}

// surfaces reports whether a non-zero contribution is shown as a factor.
func (r Rule) surfaces(in schema.ScenarioInputs, symmetric bool) bool {
	if symmetric {
		return true
	}
	v := in.NumericValue(r.Field)
	switch r.Surface {
	case SurfaceAboveNeutral:
		return v > r.Neutral
	case SurfaceWhenSet:
		return v != 0
	case SurfaceNonNeutral:
		return v != r.Neutral
	case SurfaceCategories:
		_, ok := r.Surfaced[in.BusinessTravel]
		return ok
	default:
		return false
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
