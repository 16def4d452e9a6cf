package core

import (
	"fmt"
	"strings"

	"github.com/huangsam/attrition/core/algo"
	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/schema"
	"github.com/shopspring/decimal"
)

// legacySurfacing describes when each surface mode shows a factor.
var legacySurfacing = map[algo.SurfaceMode]string{
	algo.SurfaceAboveNeutral: "when above neutral",
	algo.SurfaceWhenSet:      "when set",
	algo.SurfaceNonNeutral:   "when not neutral",
	algo.SurfaceCategories:   "for listed categories",
	algo.SurfaceNever:        "never",
}

// BuildModel describes the model configured by cfg.
func BuildModel(cfg *contract.Config) schema.ModelRenderModel {
	return BuildModelRenderModel(newModel(cfg), cfg.Symmetric)
}

// BuildModelRenderModel describes the rules of a model for display.
func BuildModelRenderModel(model *algo.Model, symmetric bool) schema.ModelRenderModel {
	rules := model.Rules()
	out := schema.ModelRenderModel{
		Title:       "Attrition Risk Model",
		Description: "Additive rules applied to a baseline risk, clamped to [0, 100].",
		Formula:     "risk = clamp(baseline + Σ contribution(field), 0, 100)",
		Symmetric:   symmetric,
		Rules:       make([]schema.ModelRule, 0, len(rules)),
	}
	for _, r := range rules {
		out.Rules = append(out.Rules, describeRule(r, symmetric))
	}
	return out
}

// describeRule renders one rule with its domain, weights and surfacing.
func describeRule(r algo.Rule, symmetric bool) schema.ModelRule {
	mr := schema.ModelRule{
		Field:   r.Field,
		Label:   r.Label,
		Kind:    string(r.Kind),
		Weights: make(map[string]float64),
	}

	switch r.Kind {
	case algo.LinearRule:
		d := schema.FieldDomains[r.Field]
		mr.Neutral = formatNumber(r.Neutral)
		mr.Domain = fmt.Sprintf("%s-%s", formatNumber(d.Min), formatNumber(d.Max))
		mr.Coefficient = fmt.Sprintf("%s per unit", signedString(r.Weight))
		mr.Weights["weight"] = r.Weight.InexactFloat64()
	case algo.FlagRule:
		mr.Neutral = "false"
		mr.Domain = "true/false"
		mr.Coefficient = signedString(r.Weight)
		mr.Weights["weight"] = r.Weight.InexactFloat64()
	case algo.LookupRule:
		mr.Neutral = string(schema.TravelRarely)
		names := make([]string, len(schema.AllTravelFrequencies))
		parts := make([]string, len(schema.AllTravelFrequencies))
		for i, cat := range schema.AllTravelFrequencies {
			w := r.Lookup[cat]
			names[i] = string(cat)
			parts[i] = fmt.Sprintf("%s %s", cat, signedString(w))
			mr.Weights[string(cat)] = w.InexactFloat64()
		}
		mr.Domain = strings.Join(names, "|")
		mr.Coefficient = strings.Join(parts, ", ")
	}

	switch {
	case symmetric:
		mr.Surfacing = "when non-zero"
	case r.Surface == algo.SurfaceCategories:
		cats := make([]string, 0, len(r.Surfaced))
		for _, cat := range schema.AllTravelFrequencies {
			if _, ok := r.Surfaced[cat]; ok {
				cats = append(cats, string(cat))
			}
		}
		mr.Surfacing = "when " + strings.Join(cats, " or ")
	default:
		mr.Surfacing = legacySurfacing[r.Surface]
	}
	return mr
}

// signedString formats a weight with an explicit sign, "0" staying unsigned.
func signedString(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.String()
	}
	return d.String()
}

// formatNumber formats a float without trailing zeros.
func formatNumber(v float64) string {
	return decimal.NewFromFloat(v).String()
}
