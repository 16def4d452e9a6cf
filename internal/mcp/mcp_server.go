// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/attrition/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// scenarioOptions are the tool arguments shared by every scenario-driven tool.
func scenarioOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("salary_increase", mcp.Description("Salary increase in percent (0-20). Defaults to 0.")),
		mcp.WithBoolean("overtime", mcp.Description("Whether overtime is required. Defaults to false.")),
		mcp.WithString("business_travel", mcp.Description("Business travel category. Defaults to 'rarely'."), mcp.Enum("never", "rarely", "frequently", "non-travel")),
		mcp.WithNumber("training_hours", mcp.Description("Training hours per year (0-120). Defaults to 40.")),
		mcp.WithBoolean("manager_change", mcp.Description("Whether the employee recently changed manager. Defaults to false.")),
		mcp.WithNumber("work_from_home", mcp.Description("Work from home days per week (0-5). Defaults to 2.")),
		mcp.WithNumber("job_satisfaction", mcp.Description("Job satisfaction level (1-5). Defaults to 3.")),
	}
}

// filterOptions are the roster filter arguments.
func filterOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("department", mcp.Description("Only include this department ('all' for every department).")),
		mcp.WithString("risk_level", mcp.Description("Only include employees at this baseline risk level."), mcp.Enum("high", "medium", "low", "all")),
		mcp.WithString("search", mcp.Description("Only include employees whose name or ID contains this text.")),
		mcp.WithString("where", mcp.Description("CEL expression over `employee`, e.g. 'employee.age < 30'.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	}
}

// newTool builds a tool from its own options followed by shared option groups.
func newTool(name string, opts []mcp.ToolOption, groups ...[]mcp.ToolOption) mcp.Tool {
	for _, g := range groups {
		opts = append(opts, g...)
	}
	return mcp.NewTool(name, opts...)
}

// NewMCPServer initializes and configures the Attrition MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.RosterManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Attrition Scenario Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: simulate_scenario ---
	s.AddTool(newTool("simulate_scenario", []mcp.ToolOption{
		mcp.WithDescription("Predict the attrition risk after a scenario of HR interventions, with the impact factors and a recommendation."),
		mcp.WithNumber("baseline", mcp.Description("Baseline risk (0-100). Ignored when employee_id is given.")),
		mcp.WithString("employee_id", mcp.Description("Roster employee whose baseline risk is used.")),
		mcp.WithBoolean("symmetric_factors", mcp.Description("Report every non-zero contribution as a factor.")),
	}, scenarioOptions()), h.handleSimulateScenario)

	// --- 2. Tool: explain_factors ---
	s.AddTool(newTool("explain_factors", []mcp.ToolOption{
		mcp.WithDescription("List the signed contribution of each scenario input, ranked by magnitude."),
		mcp.WithBoolean("symmetric_factors", mcp.Description("Report every non-zero contribution as a factor.")),
	}, scenarioOptions()), h.handleExplainFactors)

	// --- 3. Tool: sweep_parameter ---
	s.AddTool(newTool("sweep_parameter", []mcp.ToolOption{
		mcp.WithDescription("Vary one scenario field across its domain and report the predicted risk at each value."),
		mcp.WithString("field", mcp.Description("The field to sweep."), mcp.Required(), mcp.Enum(
			"salary_increase", "overtime", "business_travel", "training_hours", "manager_change", "work_from_home", "job_satisfaction")),
		mcp.WithNumber("baseline", mcp.Description("Baseline risk (0-100). Ignored when employee_id is given.")),
		mcp.WithString("employee_id", mcp.Description("Roster employee whose baseline risk is used.")),
	}, scenarioOptions()), h.handleSweepParameter)

	// --- 4. Tool: list_employees ---
	s.AddTool(newTool("list_employees", []mcp.ToolOption{
		mcp.WithDescription("List roster employees with their baseline attrition risk and top drivers."),
	}, filterOptions()), h.handleListEmployees)

	// --- 5. Tool: simulate_segment ---
	s.AddTool(newTool("simulate_segment", []mcp.ToolOption{
		mcp.WithDescription("Apply one scenario to every matching roster employee and rank them by predicted risk."),
	}, scenarioOptions(), filterOptions()), h.handleSimulateSegment)

	return s
}

// StartMCPServer starts the Attrition MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.RosterManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
