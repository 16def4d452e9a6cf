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

func sampleSweep() schema.SweepResult {
	return schema.SweepResult{
		Field:        schema.FieldOvertime,
		BaselineRisk: 50,
		Points: []schema.SweepPoint{
			{Value: 0, Label: "no", PredictedRisk: 50, Change: 0, Level: schema.MediumRisk},
			{Value: 1, Label: "yes", PredictedRisk: 58, Change: 8, Level: schema.MediumRisk},
		},
		MinRisk:     50,
		MaxRisk:     58,
		Sensitivity: 8,
	}
}

func sampleSegment() schema.SegmentResult {
	return schema.SegmentResult{
		Outcomes: []schema.EmployeeOutcome{
			{EmployeeID: "EMP001", Name: "Sarah Chen", Department: "Engineering", BaselineRisk: 85, PredictedRisk: 80, Change: -5, LevelBefore: schema.HighRisk, LevelAfter: schema.HighRisk},
			{EmployeeID: "EMP004", Name: "Alex Kim", Department: "Finance", BaselineRisk: 45, PredictedRisk: 40, Change: -5, LevelBefore: schema.MediumRisk, LevelAfter: schema.MediumRisk},
		},
		Summary: schema.SegmentSummary{Employees: 2, MeanBaseline: 65, MeanPredicted: 60, MeanChange: -5, HighRiskBefore: 1, HighRiskAfter: 1},
	}
}

func sampleComparison() schema.ComparisonResult {
	raise := sampleSimulation()
	raise.Scenario = "raise"
	raise.PredictedRisk = 67
	raise.Change = -5
	raise.Level = schema.MediumRisk
	raise.Factors = raise.Factors[2:]
	raise.Recommendation.Outcome = schema.OutcomeReduced

	neutral := sampleSimulation()
	neutral.Scenario = "status quo"
	neutral.PredictedRisk = 72
	neutral.Change = 0
	neutral.Factors = nil

	return schema.ComparisonResult{
		BaselineRisk: 72,
		Scenarios:    schema.RankSimulations([]schema.SimulationResult{raise, neutral}),
		Best:         "raise",
		Worst:        "status quo",
	}
}

func TestWriteSweepOutput(t *testing.T) {
	fmtFloat, fmtSigned := createFormatters(1)

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeSweepText(&buf, sampleSweep(), testConfig(schema.TextOut), fmtFloat, fmtSigned))
		out := buf.String()
		assert.Contains(t, out, "Sensitivity of overtime (baseline 50.0%)")
		assert.Contains(t, out, "58.0")
		assert.Contains(t, out, "Range 50.0% to 58.0% (sensitivity 8.0 points)")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeSweepCSV(&buf, sampleSweep(), fmtFloat, fmtSigned))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "field,value,label,predicted_risk,change,level", lines[0])
		assert.Equal(t, "overtime,1.0,yes,58.0,+8.0,medium", lines[2])
	})
}

func TestWriteSegmentOutput(t *testing.T) {
	fmtFloat, fmtSigned := createFormatters(1)

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeSegmentText(&buf, sampleSegment(), testConfig(schema.TextOut), fmtFloat, fmtSigned))
		out := buf.String()
		assert.Contains(t, out, "Sarah Chen")
		assert.Contains(t, out, "Showing 2 of 2 employees (mean risk 65.0% -> 60.0%, change -5.0)")
		assert.Contains(t, out, "High risk employees: 1 before, 1 after")
	})

	t.Run("narrow text abbreviates names", func(t *testing.T) {
		cfg := testConfig(schema.TextOut)
		cfg.Width = 80
		var buf bytes.Buffer
		require.NoError(t, writeSegmentText(&buf, sampleSegment(), cfg, fmtFloat, fmtSigned))
		assert.Contains(t, buf.String(), "Sarah C")
		assert.NotContains(t, buf.String(), "Sarah Chen")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeSegmentCSV(&buf, sampleSegment(), fmtFloat, fmtSigned))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "1,EMP001,Sarah Chen,Engineering,85.0,80.0,-5.0,high,high", lines[1])
	})

	t.Run("json file", func(t *testing.T) {
		cfg := testConfig(schema.JSONOut)
		cfg.OutputFile = filepath.Join(t.TempDir(), "segment.json")
		require.NoError(t, WriteSegmentResult(sampleSegment(), cfg))

		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		var decoded schema.SegmentResult
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Len(t, decoded.Outcomes, 2)
		assert.Equal(t, 2, decoded.Summary.Employees)
	})
}

func TestWriteComparisonOutput(t *testing.T) {
	fmtFloat, fmtSigned := createFormatters(1)

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeComparisonText(&buf, sampleComparison(), testConfig(schema.TextOut), fmtFloat, fmtSigned))
		out := buf.String()
		assert.Contains(t, out, "Scenario Comparison (baseline 72.0%)")
		assert.Contains(t, out, "Best: raise | Worst: status quo")
		assert.Less(t, strings.Index(out, "raise"), strings.Index(out, "status quo"))
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeComparisonCSV(&buf, sampleComparison(), fmtFloat, fmtSigned))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "1,raise,72.0,67.0,-5.0,medium,reduced,Salary Increase", lines[1])
		assert.Equal(t, "2,status quo,72.0,72.0,+0.0,high,increased,", lines[2])
	})

	t.Run("parquet", func(t *testing.T) {
		cfg := testConfig(schema.ParquetOut)
		cfg.OutputFile = filepath.Join(t.TempDir(), "compare.parquet")
		require.NoError(t, WriteComparisonResult(sampleComparison(), cfg))
		_, err := os.Stat(cfg.OutputFile)
		assert.NoError(t, err)
	})
}

func TestTopFactorLabel(t *testing.T) {
	assert.Equal(t, "-", topFactorLabel(nil))
	assert.Equal(t, "Overtime Required", topFactorLabel(sampleSimulation().Factors))
}
