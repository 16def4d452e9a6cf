package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/internal/parquet"
	"github.com/huangsam/attrition/schema"
)

// WriteEmployeeList outputs roster records, dispatching based on the output format configured.
func WriteEmployeeList(employees []schema.Employee, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, employees)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEmployeesCSV(w, employees, cfg, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteEmployeesParquet(parquet.ConvertEmployees(employees), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEmployeesText(w, employees, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// WriteEmployeeDetail outputs one roster record. Only text and JSON have a detail view;
// the other formats fall back to a one-row list.
func WriteEmployeeDetail(e schema.Employee, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, e)
		}, "Wrote JSON")
	case schema.TextOut, "":
		fmtFloat, _ := createFormatters(cfg.Precision)
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEmployeeText(w, e, cfg, fmtFloat)
		}, "Wrote text")
	default:
		return WriteEmployeeList([]schema.Employee{e}, cfg)
	}
}

// writeEmployeesText renders the roster as a table.
func writeEmployeesText(w io.Writer, employees []schema.Employee, cfg *contract.Config, fmtFloat func(float64) string) error {
	const reserved = 70
	driverWidth := GetMaxTableTextWidth(cfg, reserved)
	narrow := isNarrow(cfg, reserved)

	data := make([][]string, 0, len(employees))
	for _, e := range employees {
		name := e.Name
		if narrow {
			name = schema.AbbreviateName(name)
		}
		data = append(data, []string{
			e.ID,
			name,
			e.Department,
			fmtFloat(e.BaselineRisk),
			contract.GetColorLabel(levelOf(cfg, e.BaselineRisk)),
			contract.TruncateText(schema.FormatDrivers(e.TopDrivers), driverWidth),
			e.LastAssessed,
		})
	}
	headers := []string{"ID", "Name", "Department", "Risk", "Level", "Top Drivers", "Assessed"}
	if err := renderTable(w, headers, data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d employees\n", len(employees))
	return err
}

// writeEmployeeText renders one employee as a key-value listing.
func writeEmployeeText(w io.Writer, e schema.Employee, cfg *contract.Config, fmtFloat func(float64) string) error {
	lines := []string{
		fmt.Sprintf("👤 %s (%s)", e.Name, e.ID),
		"",
		"Department:    " + e.Department,
		"Role:          " + e.Role,
		fmt.Sprintf("Baseline Risk: %s%% (%s)", fmtFloat(e.BaselineRisk), contract.GetColorLabel(levelOf(cfg, e.BaselineRisk))),
		"Top Drivers:   " + schema.FormatDrivers(e.TopDrivers),
		"Last Assessed: " + e.LastAssessed,
		fmt.Sprintf("Age:           %d", e.Age),
		"Tenure:        " + fmtFloat(e.TenureYears) + " years",
		"Satisfaction:  " + fmtFloat(e.Satisfaction) + " / 5",
	}
	return writeLines(w, lines...)
}

// writeEmployeesCSV writes one row per employee. Drivers are joined with '|'.
func writeEmployeesCSV(w io.Writer, employees []schema.Employee, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{
		"id",
		"name",
		"department",
		"role",
		"baseline_risk",
		"level",
		"top_drivers",
		"last_assessed",
		"age",
		"tenure_years",
		"satisfaction",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, e := range employees {
			rec := []string{
				e.ID,
				e.Name,
				e.Department,
				e.Role,
				fmtFloat(e.BaselineRisk),
				string(levelOf(cfg, e.BaselineRisk)),
				strings.Join(e.TopDrivers, "|"),
				e.LastAssessed,
				strconv.Itoa(e.Age),
				fmtFloat(e.TenureYears),
				fmtFloat(e.Satisfaction),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
