package mcp_test

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/huangsam/attrition/internal/contract"
	mcp_internal "github.com/huangsam/attrition/internal/mcp"
	"github.com/huangsam/attrition/internal/rosterdb"
	"github.com/huangsam/attrition/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *server.MCPServer {
	baseCfg := &contract.Config{
		BaselineRisk: schema.DefaultBaselineRisk,
		Inputs:       schema.DefaultScenarioInputs(),
		ResultLimit:  contract.DefaultResultLimit,
		Workers:      2,
		Thresholds:   schema.DefaultRiskThresholds(),
	}
	return mcp_internal.NewMCPServer(baseCfg, &rosterdb.RosterStoreManager{})
}

// callTool invokes a registered tool handler directly.
func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServerTools(t *testing.T) {
	s := newTestServer()
	for _, name := range []string{"simulate_scenario", "explain_factors", "sweep_parameter", "list_employees", "simulate_segment"} {
		assert.NotNil(t, s.GetTool(name), name)
	}
}

func TestMCPSimulateScenario(t *testing.T) {
	s := newTestServer()

	t.Run("dashboard example", func(t *testing.T) {
		res := callTool(t, s, "simulate_scenario", map[string]any{
			"overtime":        true,
			"business_travel": "frequently",
			"salary_increase": 10.0,
		})
		require.False(t, res.IsError, resultText(t, res))

		var result schema.SimulationResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
		assert.Equal(t, 72.0, result.BaselineRisk)
		assert.Equal(t, 80.0, result.PredictedRisk)
		assert.Len(t, result.Factors, 3)
	})

	t.Run("employee baseline", func(t *testing.T) {
		res := callTool(t, s, "simulate_scenario", map[string]any{
			"employee_id":    "EMP002",
			"manager_change": true,
		})
		require.False(t, res.IsError)

		var result schema.SimulationResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
		assert.Equal(t, 74.0, result.PredictedRisk)
	})

	t.Run("unknown travel", func(t *testing.T) {
		res := callTool(t, s, "simulate_scenario", map[string]any{"business_travel": "weekly"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "invalid business travel")
	})

	t.Run("unknown employee", func(t *testing.T) {
		res := callTool(t, s, "simulate_scenario", map[string]any{"employee_id": "EMP404"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "employee not found")
	})
}

func TestMCPExplainFactors(t *testing.T) {
	s := newTestServer()

	res := callTool(t, s, "explain_factors", map[string]any{
		"training_hours":    80.0,
		"symmetric_factors": true,
	})
	require.False(t, res.IsError)

	var factors []schema.ImpactFactor
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &factors))
	require.Len(t, factors, 1)
	assert.Equal(t, schema.FieldTrainingHours, factors[0].Field)
	assert.Equal(t, -4.0, factors[0].Delta)
}

func TestMCPSweepParameter(t *testing.T) {
	s := newTestServer()

	t.Run("salary", func(t *testing.T) {
		res := callTool(t, s, "sweep_parameter", map[string]any{"field": "salary_increase", "baseline": 50.0})
		require.False(t, res.IsError)

		var result schema.SweepResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
		assert.Len(t, result.Points, 21)
		assert.Equal(t, 10.0, result.Sensitivity)
	})

	t.Run("missing field", func(t *testing.T) {
		res := callTool(t, s, "sweep_parameter", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "invalid field")
	})
}

func TestMCPListEmployees(t *testing.T) {
	s := newTestServer()

	t.Run("filtered", func(t *testing.T) {
		res := callTool(t, s, "list_employees", map[string]any{"risk_level": "high"})
		require.False(t, res.IsError)

		var employees []schema.Employee
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &employees))
		require.Len(t, employees, 2)
		assert.Equal(t, "EMP001", employees[0].ID)
		assert.Equal(t, "EMP003", employees[1].ID)
	})

	t.Run("invalid risk level", func(t *testing.T) {
		res := callTool(t, s, "list_employees", map[string]any{"risk_level": "extreme"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "invalid risk level")
	})

	t.Run("invalid where", func(t *testing.T) {
		res := callTool(t, s, "list_employees", map[string]any{"where": "employee.age <"})
		assert.True(t, res.IsError)
	})
}

func TestMCPSimulateSegment(t *testing.T) {
	s := newTestServer()

	res := callTool(t, s, "simulate_segment", map[string]any{
		"overtime": true,
		"where":    "employee.age < 30",
		"limit":    1.0,
	})
	require.False(t, res.IsError, resultText(t, res))

	var result schema.SegmentResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, "EMP001", result.Outcomes[0].EmployeeID)
	assert.Equal(t, 2, result.Summary.Employees)
}
