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

// WriteComparisonResult outputs a scenario comparison, dispatching based on the output format configured.
func WriteComparisonResult(result schema.ComparisonResult, cfg *contract.Config) error {
	fmtFloat, fmtSigned := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonCSV(w, result, fmtFloat, fmtSigned)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteScenariosParquet(parquet.ConvertComparison(result), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonText(w, result, cfg, fmtFloat, fmtSigned)
		}, "Wrote table")
	}
}

// topFactorLabel returns the label of the largest factor, or "-" when there is none.
func topFactorLabel(factors []schema.ImpactFactor) string {
	if len(factors) == 0 {
		return "-"
	}
	return factors[0].Label
}

// writeComparisonText renders the ranked scenarios, best first.
func writeComparisonText(w io.Writer, r schema.ComparisonResult, cfg *contract.Config, fmtFloat, fmtSigned func(float64) string) error {
	header := fmt.Sprintf("⚖️  Scenario Comparison (baseline %s%%)", fmtFloat(r.BaselineRisk))
	if r.EmployeeID != "" {
		header += " for " + r.EmployeeID
	}
	if err := writeLines(w, header, ""); err != nil {
		return err
	}

	const reserved = 50
	textWidth := GetMaxTableTextWidth(cfg, reserved)
	data := make([][]string, 0, len(r.Scenarios))
	for _, s := range r.Scenarios {
		data = append(data, []string{
			strconv.Itoa(s.Rank),
			contract.TruncateText(s.Scenario, textWidth),
			fmtFloat(s.PredictedRisk),
			contract.GetColorDelta(s.Change, fmtSigned(s.Change)),
			contract.GetColorLabel(s.Level),
			contract.TruncateText(topFactorLabel(s.Factors), textWidth),
		})
	}
	if err := renderTable(w, []string{"Rank", "Scenario", "Predicted", "Change", "Level", "Top Factor"}, data); err != nil {
		return err
	}

	if len(r.Scenarios) > 1 {
		_, err := fmt.Fprintf(w, "Best: %s | Worst: %s\n", r.Best, r.Worst)
		return err
	}
	return nil
}

// writeComparisonCSV writes one row per ranked scenario.
func writeComparisonCSV(w io.Writer, r schema.ComparisonResult, fmtFloat, fmtSigned func(float64) string) error {
	header := []string{"rank", "scenario", "baseline_risk", "predicted_risk", "change", "level", "outcome", "top_factor"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range r.Scenarios {
			top := ""
			if len(s.Factors) > 0 {
				top = s.Factors[0].Label
			}
			rec := []string{
				strconv.Itoa(s.Rank),
				s.Scenario,
				fmtFloat(s.BaselineRisk),
				fmtFloat(s.PredictedRisk),
				fmtSigned(s.Change),
				string(s.Level),
				string(s.Recommendation.Outcome),
				top,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
