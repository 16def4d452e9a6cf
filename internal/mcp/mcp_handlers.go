package mcp

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/huangsam/attrition/core"
	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.RosterManager
}

// scenarioFromRequest reads the scenario arguments, defaulting to the neutral inputs.
func scenarioFromRequest(request mcp.CallToolRequest) schema.ScenarioInputs {
	in := schema.DefaultScenarioInputs()
	in.SalaryIncrease = request.GetFloat("salary_increase", in.SalaryIncrease)
	in.Overtime = request.GetBool("overtime", in.Overtime)
	in.BusinessTravel = schema.TravelFrequency(request.GetString("business_travel", string(in.BusinessTravel)))
	in.TrainingHours = request.GetFloat("training_hours", in.TrainingHours)
	in.ManagerChange = request.GetBool("manager_change", in.ManagerChange)
	in.WorkFromHome = request.GetFloat("work_from_home", in.WorkFromHome)
	in.JobSatisfaction = request.GetFloat("job_satisfaction", in.JobSatisfaction)
	return in
}

// scenarioConfig clones the base config and applies the scenario arguments.
func (h *toolHandler) scenarioConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	_, err := contract.ApplyScenario(cfg,
		request.GetFloat("baseline", cfg.BaselineRisk),
		request.GetString("employee_id", ""),
		scenarioFromRequest(request),
		request.GetBool("symmetric_factors", cfg.Symmetric),
	)
	return cfg, err
}

// applyFilter reads the roster filter arguments into cfg.
func applyFilter(cfg *contract.Config, request mcp.CallToolRequest) error {
	level, err := contract.ParseRiskLevel(request.GetString("risk_level", ""))
	if err != nil {
		return err
	}
	cfg.Filter = schema.SegmentFilter{
		Department: request.GetString("department", ""),
		RiskLevel:  level,
		Search:     request.GetString("search", ""),
		Where:      request.GetString("where", ""),
	}
	if l := request.GetInt("limit", 0); l > 0 {
		if l > contract.MaxResultLimit {
			return fmt.Errorf("limit cannot exceed %d (received %d)", contract.MaxResultLimit, l)
		}
		cfg.ResultLimit = l
	}
	return nil
}

// jsonResult renders a value as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSimulateScenario(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.scenarioConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid scenario: %v", err)), nil
	}

	result, err := core.Simulate(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("simulation failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleExplainFactors(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.scenarioConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid scenario: %v", err)), nil
	}
	return jsonResult(core.Explain(cfg))
}

func (h *toolHandler) handleSweepParameter(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.scenarioConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid scenario: %v", err)), nil
	}
	field, err := contract.ParseFieldKey(request.GetString("field", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid sweep parameters: %v", err)), nil
	}
	cfg.SweepField = field

	result, err := core.Sweep(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("sweep failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleListEmployees(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyFilter(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid filter: %v", err)), nil
	}

	employees, err := core.ListEmployees(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing employees failed: %v", err)), nil
	}
	return jsonResult(employees)
}

func (h *toolHandler) handleSimulateSegment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.scenarioConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid scenario: %v", err)), nil
	}
	if err := applyFilter(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid filter: %v", err)), nil
	}

	result, err := core.SimulateSegment(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("segment simulation failed: %v", err)), nil
	}
	return jsonResult(result)
}
