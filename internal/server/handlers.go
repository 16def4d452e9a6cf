package server

import (
	"context"
	"strings"

	"github.com/huangsam/attrition/core"
	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/schema"
	"github.com/valyala/fasthttp"
)

// scenarioRequest is the body of the scenario routes. Omitted inputs stay neutral
// and an omitted baseline falls back to the configured one.
type scenarioRequest struct {
	Baseline   *float64              `json:"baseline"`
	EmployeeID string                `json:"employee_id"`
	Field      string                `json:"field"`
	Inputs     schema.ScenarioInputs `json:"inputs"`
	Symmetric  bool                  `json:"symmetric"`
}

// segmentRequest is the body of /v1/segment.
type segmentRequest struct {
	Inputs     schema.ScenarioInputs `json:"inputs"`
	Department string                `json:"department"`
	RiskLevel  string                `json:"risk_level"`
	Search     string                `json:"search"`
	Where      string                `json:"where"`
	Limit      int                   `json:"limit"`
}

// requestContext attaches the server logger to the request context.
func (s *Server) requestContext(ctx *fasthttp.RequestCtx) context.Context {
	return core.WithLogger(ctx, s.logger)
}

// scenarioConfig decodes a scenario body into a clone of the base config.
func (s *Server) scenarioConfig(ctx *fasthttp.RequestCtx) (*contract.Config, scenarioRequest, bool) {
	req := scenarioRequest{Inputs: schema.DefaultScenarioInputs()}
	if !decodeBody(ctx, &req) {
		return nil, req, false
	}

	cfg := s.baseCfg.Clone()
	baseline := cfg.BaselineRisk
	if req.Baseline != nil {
		baseline = *req.Baseline
	}
	warnings, err := contract.ApplyScenario(cfg, baseline, req.EmployeeID, req.Inputs, req.Symmetric)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return nil, req, false
	}
	for _, w := range warnings {
		s.logger.Warn("scenario input", "path", string(ctx.Path()), "warning", w.Error())
	}
	return cfg, req, true
}

// filterConfig applies roster filters to cfg.
func filterConfig(ctx *fasthttp.RequestCtx, cfg *contract.Config, department, risk, search, where string, limit int) bool {
	level, err := contract.ParseRiskLevel(risk)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return false
	}
	if err := core.ValidateWhere(where); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return false
	}
	if limit < 0 || limit > contract.MaxResultLimit {
		writeError(ctx, fasthttp.StatusBadRequest, "limit must be between 1 and 1000")
		return false
	}
	if limit > 0 {
		cfg.ResultLimit = limit
	}
	cfg.Filter = schema.SegmentFilter{
		Department: strings.TrimSpace(department),
		RiskLevel:  level,
		Search:     strings.TrimSpace(search),
		Where:      strings.TrimSpace(where),
	}
	return true
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSimulate(ctx *fasthttp.RequestCtx) {
	cfg, _, ok := s.scenarioConfig(ctx)
	if !ok {
		return
	}
	result, err := core.Simulate(s.requestContext(ctx), cfg, s.mgr)
	if err != nil {
		writeCoreError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleExplain(ctx *fasthttp.RequestCtx) {
	cfg, _, ok := s.scenarioConfig(ctx)
	if !ok {
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, core.Explain(cfg))
}

func (s *Server) handleSweep(ctx *fasthttp.RequestCtx) {
	cfg, req, ok := s.scenarioConfig(ctx)
	if !ok {
		return
	}
	field, err := contract.ParseFieldKey(req.Field)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	cfg.SweepField = field

	result, err := core.Sweep(s.requestContext(ctx), cfg, s.mgr)
	if err != nil {
		writeCoreError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleSegment(ctx *fasthttp.RequestCtx) {
	req := segmentRequest{Inputs: schema.DefaultScenarioInputs()}
	if !decodeBody(ctx, &req) {
		return
	}
	cfg := s.baseCfg.Clone()
	if _, err := contract.ApplyScenario(cfg, cfg.BaselineRisk, "", req.Inputs, false); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	if !filterConfig(ctx, cfg, req.Department, req.RiskLevel, req.Search, req.Where, req.Limit) {
		return
	}

	result, err := core.SimulateSegment(s.requestContext(ctx), cfg, s.mgr)
	if err != nil {
		writeCoreError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleModel(ctx *fasthttp.RequestCtx) {
	cfg := s.baseCfg.Clone()
	if ctx.QueryArgs().GetBool("symmetric") {
		cfg.Symmetric = true
	}
	writeJSON(ctx, fasthttp.StatusOK, core.BuildModel(cfg))
}

func (s *Server) handleListEmployees(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	cfg := s.baseCfg.Clone()
	limit := 0
	if args.Has("limit") {
		n, err := args.GetUint("limit")
		if err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if !filterConfig(ctx, cfg,
		string(args.Peek("department")),
		string(args.Peek("risk")),
		string(args.Peek("search")),
		string(args.Peek("where")),
		limit,
	) {
		return
	}

	employees, err := core.ListEmployees(s.requestContext(ctx), cfg, s.mgr)
	if err != nil {
		writeCoreError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, employees)
}

func (s *Server) handleGetEmployee(ctx *fasthttp.RequestCtx) {
	id := strings.TrimPrefix(string(ctx.Path()), employeesPrefix)
	if id == "" || strings.Contains(id, "/") {
		writeError(ctx, fasthttp.StatusNotFound, "employee id is required")
		return
	}
	e, err := s.mgr.GetRosterStore().GetEmployee(s.requestContext(ctx), id)
	if err != nil {
		writeCoreError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, e)
}
