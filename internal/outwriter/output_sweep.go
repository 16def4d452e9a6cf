package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/internal/parquet"
	"github.com/huangsam/attrition/schema"
)

// WriteSweepResult outputs a sensitivity sweep, dispatching based on the output format configured.
func WriteSweepResult(result schema.SweepResult, cfg *contract.Config) error {
	fmtFloat, fmtSigned := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSweepCSV(w, result, fmtFloat, fmtSigned)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteSweepParquet(parquet.ConvertSweep(result), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSweepText(w, result, cfg, fmtFloat, fmtSigned)
		}, "Wrote table")
	}
}

// writeSweepText renders one row per swept value with a bar proportional to the risk.
func writeSweepText(w io.Writer, r schema.SweepResult, cfg *contract.Config, fmtFloat, fmtSigned func(float64) string) error {
	if _, err := fmt.Fprintf(w, "📈 Sensitivity of %s (baseline %s%%)\n\n", r.Field, fmtFloat(r.BaselineRisk)); err != nil {
		return err
	}

	barWidth := GetMaxTableTextWidth(cfg, 45)
	data := make([][]string, 0, len(r.Points))
	for _, p := range r.Points {
		data = append(data, []string{
			p.Label,
			fmtFloat(p.PredictedRisk),
			contract.GetColorDelta(p.Change, fmtSigned(p.Change)),
			contract.GetColorLabel(p.Level),
			riskBar(p.PredictedRisk, barWidth),
		})
	}
	if err := renderTable(w, []string{"Value", "Risk", "Change", "Level", "Curve"}, data); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Range %s%% to %s%% (sensitivity %s points)\n",
		fmtFloat(r.MinRisk), fmtFloat(r.MaxRisk), fmtFloat(r.Sensitivity))
	return err
}

// riskBar draws a left-aligned bar of at most width cells for a 0-100 score.
func riskBar(score float64, width int) string {
	cells := min(max(int(score/100*float64(width)+0.5), 0), width)
	bar := make([]rune, width)
	for i := range bar {
		if i < cells {
			bar[i] = '█'
		} else {
			bar[i] = ' '
		}
	}
	return string(bar)
}

// writeSweepCSV writes one row per swept value.
func writeSweepCSV(w io.Writer, r schema.SweepResult, fmtFloat, fmtSigned func(float64) string) error {
	header := []string{"field", "value", "label", "predicted_risk", "change", "level"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, p := range r.Points {
			rec := []string{
				string(r.Field),
				fmtFloat(p.Value),
				p.Label,
				fmtFloat(p.PredictedRisk),
				fmtSigned(p.Change),
				string(p.Level),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
