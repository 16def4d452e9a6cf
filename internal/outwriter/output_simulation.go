package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/internal/parquet"
	"github.com/huangsam/attrition/schema"
)

// WriteSimulationResult outputs a simulation, dispatching based on the output format configured.
func WriteSimulationResult(result schema.SimulationResult, cfg *contract.Config) error {
	fmtFloat, fmtSigned := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSimulationCSV(w, result, fmtFloat, fmtSigned)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteFactorsParquet(parquet.ConvertSimulationResult(result), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSimulationText(w, result, cfg, fmtFloat, fmtSigned)
		}, "Wrote table")
	}
}

// writeSimulationText renders the risk summary, the factor table and the recommendation.
func writeSimulationText(w io.Writer, r schema.SimulationResult, cfg *contract.Config, fmtFloat, fmtSigned func(float64) string) error {
	title := "🎯 Attrition Risk Simulation"
	if r.Scenario != "" {
		title += ": " + r.Scenario
	}
	if err := writeLines(w, title, ""); err != nil {
		return err
	}
	if r.EmployeeID != "" {
		if _, err := fmt.Fprintf(w, "Employee:       %s\n", r.EmployeeID); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Baseline Risk:  %s%%\n", fmtFloat(r.BaselineRisk)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Predicted Risk: %s%% (%s)\n", fmtFloat(r.PredictedRisk), contract.GetColorLabel(r.Level)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Change:         %s\n\n", contract.GetColorDelta(r.Change, fmtSigned(r.Change))); err != nil {
		return err
	}

	if len(r.Factors) == 0 {
		if err := writeLines(w, "No impact factors: every input is at its neutral value.", ""); err != nil {
			return err
		}
	} else {
		labelWidth := GetMaxTableTextWidth(cfg, 40)
		data := make([][]string, 0, len(r.Factors))
		for i, f := range r.Factors {
			effect := "raises risk"
			if f.Favorable {
				effect = "lowers risk"
			}
			data = append(data, []string{
				strconv.Itoa(i + 1),
				contract.TruncateText(f.Label, labelWidth),
				contract.GetColorDelta(f.Delta, fmtSigned(f.Delta)),
				effect,
			})
		}
		if err := renderTable(w, []string{"Rank", "Factor", "Impact", "Effect"}, data); err != nil {
			return err
		}
		if err := writeLines(w, ""); err != nil {
			return err
		}
	}

	if err := writeRecommendation(w, r.Recommendation); err != nil {
		return err
	}
	if r.Metadata.SimulationID != "" {
		_, err := fmt.Fprintf(w, "Simulation %s completed in %dms\n", r.Metadata.SimulationID, r.Metadata.DurationMs)
		return err
	}
	return nil
}

// writeRecommendation prints the outcome title and its actions as a bullet list.
func writeRecommendation(w io.Writer, rec schema.Recommendation) error {
	icon := "➖"
	switch rec.Outcome {
	case schema.OutcomeIncreased:
		icon = "⚠️ "
	case schema.OutcomeReduced:
		icon = "✅"
	}
	if _, err := fmt.Fprintf(w, "%s %s\n", icon, rec.Title); err != nil {
		return err
	}
	for _, action := range rec.Actions {
		if _, err := fmt.Fprintf(w, "   • %s\n", action); err != nil {
			return err
		}
	}
	return writeLines(w, "")
}

// writeSimulationCSV writes one row per factor. A simulation without factors
// still gets one row so the predicted risk is never lost.
func writeSimulationCSV(w io.Writer, r schema.SimulationResult, fmtFloat, fmtSigned func(float64) string) error {
	header := []string{
		"simulation_id",
		"employee_id",
		"baseline_risk",
		"predicted_risk",
		"change",
		"level",
		"outcome",
		"rank",
		"field",
		"label",
		"delta",
		"favorable",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		base := []string{
			r.Metadata.SimulationID,
			r.EmployeeID,
			fmtFloat(r.BaselineRisk),
			fmtFloat(r.PredictedRisk),
			fmtSigned(r.Change),
			string(r.Level),
			string(r.Recommendation.Outcome),
		}
		if len(r.Factors) == 0 {
			return cw.Write(append(base, "", "", "", "", ""))
		}
		for i, f := range r.Factors {
			rec := append(append([]string{}, base...),
				strconv.Itoa(i+1),
				string(f.Field),
				f.Label,
				fmtSigned(f.Delta),
				strconv.FormatBool(f.Favorable),
			)
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
