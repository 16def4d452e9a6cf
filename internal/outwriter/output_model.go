package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/internal/parquet"
	"github.com/huangsam/attrition/schema"
)

// WriteModelDefinition displays the rules of the risk model.
// This is a static display that does not require a roster.
func WriteModelDefinition(model schema.ModelRenderModel, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeModelCSV(w, model)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteRulesParquet(parquet.ConvertRules(model.Rules), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeModelText(w, model)
		}, "Wrote text")
	}
}

// writeModelText displays the model in human-readable text format.
func writeModelText(w io.Writer, model schema.ModelRenderModel) error {
	if err := writeLines(w, "🧮 "+model.Title, "", model.Description, "", "Formula: "+model.Formula, ""); err != nil {
		return err
	}

	data := make([][]string, 0, len(model.Rules))
	for _, r := range model.Rules {
		data = append(data, []string{r.Label, r.Kind, r.Domain, r.Neutral, r.Coefficient, r.Surfacing})
	}
	if err := renderTable(w, []string{"Input", "Kind", "Domain", "Neutral", "Coefficient", "Shown When"}, data); err != nil {
		return err
	}

	mode := "legacy (only the listed conditions are shown)"
	if model.Symmetric {
		mode = "symmetric (every non-zero contribution is shown)"
	}
	_, err := fmt.Fprintf(w, "Factor surfacing: %s\n", mode)
	return err
}

// writeModelCSV writes one row per rule.
func writeModelCSV(w io.Writer, model schema.ModelRenderModel) error {
	header := []string{"field", "label", "kind", "domain", "neutral", "coefficient", "surfacing"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range model.Rules {
			rec := []string{string(r.Field), r.Label, r.Kind, r.Domain, r.Neutral, r.Coefficient, r.Surfacing}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
