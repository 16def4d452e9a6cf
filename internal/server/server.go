// Package server exposes the scenario simulator over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/huangsam/attrition/internal/contract"
	"github.com/valyala/fasthttp"
)

// Server timeouts.
const (
	readTimeout  = 10 * time.Second
	writeTimeout = 30 * time.Second
)

const employeesPrefix = "/v1/employees/"

// Server routes HTTP requests to the simulation core.
type Server struct {
	baseCfg *contract.Config
	mgr     contract.RosterManager
	logger  *slog.Logger
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// route binds a method to a handler.
type route struct {
	method  string
	handler fasthttp.RequestHandler
}

// New creates a server. Each request works on a clone of baseCfg.
func New(baseCfg *contract.Config, mgr contract.RosterManager, logger *slog.Logger) *Server {
	return &Server{baseCfg: baseCfg, mgr: mgr, logger: logger}
}

// Handler returns the logged request router.
func (s *Server) Handler() fasthttp.RequestHandler {
	routes := map[string]route{
		"/healthz":      {fasthttp.MethodGet, s.handleHealth},
		"/v1/simulate":  {fasthttp.MethodPost, s.handleSimulate},
		"/v1/explain":   {fasthttp.MethodPost, s.handleExplain},
		"/v1/sweep":     {fasthttp.MethodPost, s.handleSweep},
		"/v1/segment":   {fasthttp.MethodPost, s.handleSegment},
		"/v1/model":     {fasthttp.MethodGet, s.handleModel},
		"/v1/employees": {fasthttp.MethodGet, s.handleListEmployees},
	}

	return s.withLogging(func(ctx *fasthttp.RequestCtx) {
		path := string(ctx.Path())
		r, ok := routes[path]
		if !ok && strings.HasPrefix(path, employeesPrefix) {
			r, ok = route{fasthttp.MethodGet, s.handleGetEmployee}, true
		}
		if !ok {
			writeError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("no route for %s", path))
			return
		}
		if string(ctx.Method()) != r.method {
			ctx.Response.Header.Set("Allow", r.method)
			writeError(ctx, fasthttp.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", ctx.Method()))
			return
		}
		r.handler(ctx)
	})
}

// withLogging logs the method, path, status and duration of each request.
func (s *Server) withLogging(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		s.logger.Info("request",
			"method", string(ctx.Method()),
			"path", string(ctx.Path()),
			"status", ctx.Response.StatusCode(),
			"duration_ms", time.Since(start).Milliseconds())
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &fasthttp.Server{
		Handler:      s.Handler(),
		Name:         "attrition",
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(addr)
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
		return srv.Shutdown()
	case err := <-errCh:
		return err
	}
}

// StartServer runs the HTTP API until ctx is cancelled.
func StartServer(ctx context.Context, baseCfg *contract.Config, mgr contract.RosterManager) error {
	logger := contract.NewLogger(os.Stderr, baseCfg.LogLevel)
	return New(baseCfg, mgr, logger).ListenAndServe(ctx, baseCfg.ServeAddr)
}

// writeJSON encodes v as the response body.
func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to encode response")
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

// writeError writes the error shape shared by every route.
func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(errorResponse{Status: status, Message: message})
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

// writeCoreError maps errors from the simulation core to a status code.
func writeCoreError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, contract.ErrEmployeeNotFound):
		writeError(ctx, fasthttp.StatusNotFound, err.Error())
	case errors.Is(err, contract.ErrInvalidTravel):
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
	default:
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
	}
}

// decodeBody decodes a JSON body into v. An empty body keeps v unchanged.
func decodeBody(ctx *fasthttp.RequestCtx, v any) bool {
	body := ctx.PostBody()
	if len(body) == 0 {
		return true
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}
