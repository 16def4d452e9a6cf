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

// WriteSegmentResult outputs a segment simulation, dispatching based on the output format configured.
func WriteSegmentResult(result schema.SegmentResult, cfg *contract.Config) error {
	fmtFloat, fmtSigned := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSegmentCSV(w, result, fmtFloat, fmtSigned)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteOutcomesParquet(parquet.ConvertOutcomes(result.Outcomes), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSegmentText(w, result, cfg, fmtFloat, fmtSigned)
		}, "Wrote table")
	}
}

// writeSegmentText renders the ranked outcomes followed by the segment summary.
func writeSegmentText(w io.Writer, r schema.SegmentResult, cfg *contract.Config, fmtFloat, fmtSigned func(float64) string) error {
	const reserved = 60
	nameWidth := GetMaxTableTextWidth(cfg, reserved)
	narrow := isNarrow(cfg, reserved)

	data := make([][]string, 0, len(r.Outcomes))
	for i, o := range r.Outcomes {
		name := o.Name
		if narrow {
			name = schema.AbbreviateName(name)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			o.EmployeeID,
			contract.TruncateText(name, nameWidth),
			o.Department,
			fmtFloat(o.BaselineRisk),
			fmtFloat(o.PredictedRisk),
			contract.GetColorDelta(o.Change, fmtSigned(o.Change)),
			contract.GetColorLabel(o.LevelAfter),
		})
	}
	headers := []string{"Rank", "ID", "Name", "Department", "Baseline", "Predicted", "Change", "Level"}
	if err := renderTable(w, headers, data); err != nil {
		return err
	}

	s := r.Summary
	if _, err := fmt.Fprintf(w, "Showing %d of %d employees (mean risk %s%% -> %s%%, change %s)\n",
		len(r.Outcomes), s.Employees, fmtFloat(s.MeanBaseline), fmtFloat(s.MeanPredicted), fmtSigned(s.MeanChange)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "High risk employees: %d before, %d after\n", s.HighRiskBefore, s.HighRiskAfter)
	return err
}

// writeSegmentCSV writes one row per employee outcome.
func writeSegmentCSV(w io.Writer, r schema.SegmentResult, fmtFloat, fmtSigned func(float64) string) error {
	header := []string{
		"rank",
		"employee_id",
		"name",
		"department",
		"baseline_risk",
		"predicted_risk",
		"change",
		"level_before",
		"level_after",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, o := range r.Outcomes {
			rec := []string{
				strconv.Itoa(i + 1),
				o.EmployeeID,
				o.Name,
				o.Department,
				fmtFloat(o.BaselineRisk),
				fmtFloat(o.PredictedRisk),
				fmtSigned(o.Change),
				string(o.LevelBefore),
				string(o.LevelAfter),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
