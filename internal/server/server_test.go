package server

import (
	"io"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/huangsam/attrition/internal/contract"
	"github.com/huangsam/attrition/internal/rosterdb"
	"github.com/huangsam/attrition/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func newTestServer() *Server {
	cfg := &contract.Config{
		BaselineRisk: 72,
		Inputs:       schema.DefaultScenarioInputs(),
		ResultLimit:  contract.DefaultResultLimit,
		Workers:      2,
		Precision:    contract.DefaultPrecision,
		Output:       schema.JSONOut,
		Thresholds:   schema.DefaultRiskThresholds(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, &rosterdb.RosterStoreManager{}, logger)
}

// serve runs one request through the router and returns the response.
func serve(t *testing.T, s *Server, method, uri, body string) *fasthttp.RequestCtx {
	t.Helper()
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if body != "" {
		req.SetBodyString(body)
	}

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	s.Handler()(ctx)
	return ctx
}

func decode(t *testing.T, ctx *fasthttp.RequestCtx, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), out))
}

func TestRouting(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name   string
		method string
		uri    string
		status int
		allow  string
	}{
		{"health", fasthttp.MethodGet, "/healthz", fasthttp.StatusOK, ""},
		{"unknown route", fasthttp.MethodGet, "/v2/simulate", fasthttp.StatusNotFound, ""},
		{"wrong method", fasthttp.MethodGet, "/v1/simulate", fasthttp.StatusMethodNotAllowed, fasthttp.MethodPost},
		{"post to model", fasthttp.MethodPost, "/v1/model", fasthttp.StatusMethodNotAllowed, fasthttp.MethodGet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := serve(t, s, tt.method, tt.uri, "")
			assert.Equal(t, tt.status, ctx.Response.StatusCode())
			assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))
			if tt.allow != "" {
				assert.Equal(t, tt.allow, string(ctx.Response.Header.Peek("Allow")))
			}
			if tt.status != fasthttp.StatusOK {
				var e errorResponse
				decode(t, ctx, &e)
				assert.Equal(t, tt.status, e.Status)
				assert.NotEmpty(t, e.Message)
			}
		})
	}
}

func TestHandleSimulate(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name      string
		body      string
		status    int
		predicted float64
	}{
		{
			name:      "empty body uses the neutral scenario",
			body:      "",
			status:    fasthttp.StatusOK,
			predicted: 72,
		},
		{
			name:      "dashboard example",
			body:      `{"inputs":{"overtime":true,"business_travel":"frequently","salary_increase":10}}`,
			status:    fasthttp.StatusOK,
			predicted: 80,
		},
		{
			name:      "employee baseline",
			body:      `{"employee_id":"EMP002","inputs":{"manager_change":true}}`,
			status:    fasthttp.StatusOK,
			predicted: 74,
		},
		{
			name:   "unknown employee",
			body:   `{"employee_id":"EMP999"}`,
			status: fasthttp.StatusNotFound,
		},
		{
			name:   "invalid travel",
			body:   `{"inputs":{"business_travel":"weekly"}}`,
			status: fasthttp.StatusBadRequest,
		},
		{
			name:   "malformed body",
			body:   `{"inputs":`,
			status: fasthttp.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := serve(t, s, fasthttp.MethodPost, "/v1/simulate", tt.body)
			require.Equal(t, tt.status, ctx.Response.StatusCode(), string(ctx.Response.Body()))
			if tt.status != fasthttp.StatusOK {
				return
			}
			var result schema.SimulationResult
			decode(t, ctx, &result)
			assert.InDelta(t, tt.predicted, result.PredictedRisk, 1e-9)
			assert.NotEmpty(t, result.Metadata.SimulationID)
		})
	}
}

func TestHandleExplain(t *testing.T) {
	s := newTestServer()
	ctx := serve(t, s, fasthttp.MethodPost, "/v1/explain", `{"inputs":{"overtime":true}}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var factors []schema.ImpactFactor
	decode(t, ctx, &factors)
	require.Len(t, factors, 1)
	assert.Equal(t, "Overtime Required", factors[0].Label)
	assert.False(t, factors[0].Favorable)
}

func TestHandleSweep(t *testing.T) {
	s := newTestServer()

	ctx := serve(t, s, fasthttp.MethodPost, "/v1/sweep", `{"field":"overtime"}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var result schema.SweepResult
	decode(t, ctx, &result)
	assert.Equal(t, schema.FieldOvertime, result.Field)
	assert.Len(t, result.Points, 2)
	assert.Greater(t, result.Sensitivity, 0.0)

	ctx = serve(t, s, fasthttp.MethodPost, "/v1/sweep", `{"field":"bonus"}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestHandleSegment(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name      string
		body      string
		status    int
		employees int
	}{
		{"whole roster", `{"inputs":{"salary_increase":10}}`, fasthttp.StatusOK, 4},
		{"department", `{"department":"Engineering"}`, fasthttp.StatusOK, 1},
		{"where expression", `{"where":"employee.baseline_risk >= 60.0"}`, fasthttp.StatusOK, 3},
		{"limit caps outcomes", `{"limit":2}`, fasthttp.StatusOK, 2},
		{"invalid where", `{"where":"employee.baseline_risk +"}`, fasthttp.StatusBadRequest, 0},
		{"invalid risk level", `{"risk_level":"extreme"}`, fasthttp.StatusBadRequest, 0},
		{"limit too large", `{"limit":5000}`, fasthttp.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := serve(t, s, fasthttp.MethodPost, "/v1/segment", tt.body)
			require.Equal(t, tt.status, ctx.Response.StatusCode(), string(ctx.Response.Body()))
			if tt.status != fasthttp.StatusOK {
				return
			}
			var result schema.SegmentResult
			decode(t, ctx, &result)
			assert.Len(t, result.Outcomes, tt.employees)
		})
	}
}

func TestHandleModel(t *testing.T) {
	s := newTestServer()

	ctx := serve(t, s, fasthttp.MethodGet, "/v1/model?symmetric=true", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var model schema.ModelRenderModel
	decode(t, ctx, &model)
	assert.Equal(t, "Attrition Risk Model", model.Title)
	assert.True(t, model.Symmetric)
	assert.NotEmpty(t, model.Rules)
}

func TestHandleEmployees(t *testing.T) {
	s := newTestServer()

	t.Run("list with filter", func(t *testing.T) {
		ctx := serve(t, s, fasthttp.MethodGet, "/v1/employees?department=Sales", "")
		require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
		var employees []schema.Employee
		decode(t, ctx, &employees)
		require.Len(t, employees, 1)
		assert.Equal(t, "EMP002", employees[0].ID)
	})

	t.Run("bad limit", func(t *testing.T) {
		ctx := serve(t, s, fasthttp.MethodGet, "/v1/employees?limit=abc", "")
		assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	})

	t.Run("show one", func(t *testing.T) {
		ctx := serve(t, s, fasthttp.MethodGet, "/v1/employees/EMP003", "")
		require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
		var e schema.Employee
		decode(t, ctx, &e)
		assert.Equal(t, "Emily Davis", e.Name)
	})

	t.Run("missing", func(t *testing.T) {
		ctx := serve(t, s, fasthttp.MethodGet, "/v1/employees/EMP999", "")
		assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
	})
}
