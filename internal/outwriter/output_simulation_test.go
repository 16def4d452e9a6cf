package outwriter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/huangsam/attrition/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSimulationText(t *testing.T) {
	fmtFloat, fmtSigned := createFormatters(1)

	t.Run("with factors", func(t *testing.T) {
		var buf bytes.Buffer
		err := writeSimulationText(&buf, sampleSimulation(), testConfig(schema.TextOut), fmtFloat, fmtSigned)
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "Employee:       EMP001")
		assert.Contains(t, out, "Baseline Risk:  72.0%")
		assert.Contains(t, out, "Predicted Risk: 80.0% (High)")
		assert.Contains(t, out, "Change:         +8.0")
		assert.Contains(t, out, "Frequent Travel")
		assert.Contains(t, out, "-5.0")
		assert.Contains(t, out, "lowers risk")
		assert.Contains(t, out, "Risk Increased")
		assert.Contains(t, out, "• Consider reducing negative factors")
		assert.Contains(t, out, "Simulation sim-1 completed in 3ms")

		// Factors keep their ranked order
		assert.Less(t, strings.Index(out, "Overtime Required"), strings.Index(out, "Frequent Travel"))
		assert.Less(t, strings.Index(out, "Frequent Travel"), strings.Index(out, "Salary Increase"))
	})

	t.Run("neutral scenario", func(t *testing.T) {
		r := schema.SimulationResult{
			BaselineRisk:   72,
			PredictedRisk:  72,
			Level:          schema.HighRisk,
			Factors:        []schema.ImpactFactor{},
			Recommendation: schema.Recommendation{Outcome: schema.OutcomeUnchanged, Title: "Risk Unchanged"},
		}
		var buf bytes.Buffer
		require.NoError(t, writeSimulationText(&buf, r, testConfig(schema.TextOut), fmtFloat, fmtSigned))
		out := buf.String()
		assert.Contains(t, out, "No impact factors")
		assert.Contains(t, out, "Risk Unchanged")
		assert.NotContains(t, out, "Employee:")
		assert.NotContains(t, out, "completed in")
	})
}

func TestWriteSimulationCSV(t *testing.T) {
	fmtFloat, fmtSigned := createFormatters(1)

	t.Run("one row per factor", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeSimulationCSV(&buf, sampleSimulation(), fmtFloat, fmtSigned))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "simulation_id,employee_id,baseline_risk,predicted_risk,change,level,outcome,rank,field,label,delta,favorable", lines[0])
		assert.Equal(t, "sim-1,EMP001,72.0,80.0,+8.0,high,increased,1,overtime,Overtime Required,+8.0,false", lines[1])
		assert.Equal(t, "sim-1,EMP001,72.0,80.0,+8.0,high,increased,3,salary_increase,Salary Increase,-5.0,true", lines[3])
	})

	t.Run("no factors keeps the summary row", func(t *testing.T) {
		r := schema.SimulationResult{BaselineRisk: 40, PredictedRisk: 40, Level: schema.MediumRisk}
		var buf bytes.Buffer
		require.NoError(t, writeSimulationCSV(&buf, r, fmtFloat, fmtSigned))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, ",,40.0,40.0,+0.0,medium,,,,,,", lines[1])
	})
}

func TestWriteSimulationResult_Dispatch(t *testing.T) {
	dir := t.TempDir()

	t.Run("json", func(t *testing.T) {
		cfg := testConfig(schema.JSONOut)
		cfg.OutputFile = filepath.Join(dir, "sim.json")
		require.NoError(t, WriteSimulationResult(sampleSimulation(), cfg))

		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		var decoded schema.SimulationResult
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, 80.0, decoded.PredictedRisk)
		assert.Len(t, decoded.Factors, 3)
	})

	t.Run("parquet", func(t *testing.T) {
		cfg := testConfig(schema.ParquetOut)
		cfg.OutputFile = filepath.Join(dir, "sim.parquet")
		require.NoError(t, WriteSimulationResult(sampleSimulation(), cfg))

		info, err := os.Stat(cfg.OutputFile)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})

	t.Run("text to file", func(t *testing.T) {
		cfg := testConfig(schema.TextOut)
		cfg.OutputFile = filepath.Join(dir, "sim.txt")
		require.NoError(t, WriteSimulationResult(sampleSimulation(), cfg))

		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Predicted Risk: 80.0%")
	})
}
