package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/attrition/internal/server"
	"github.com/spf13/cobra"
)

// serveCmd exposes the simulator as an HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scenario simulator over HTTP",
	Long: `Start a JSON HTTP API backed by the same engine as the CLI.

Routes:
  GET  /healthz              liveness probe
  POST /v1/simulate          simulate one scenario
  POST /v1/explain           list the impact factors of a scenario
  POST /v1/sweep             sweep one field across its domain
  POST /v1/segment           apply a scenario to a roster segment
  GET  /v1/model             describe the risk model
  GET  /v1/employees         list the roster (department, risk, search, where, limit)
  GET  /v1/employees/{id}    show one employee

Request logs are written to stderr at --log-level. The server shuts down
gracefully on SIGINT or SIGTERM.

Examples:
  # Serve on the default address
  attrition serve

  # Serve a MySQL roster on port 9090
  attrition serve --addr :9090 --roster-backend mysql --roster-db-connect "user:pass@tcp(localhost:3306)/attrition"`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.StartServer(ctx, cfg, rosterManager)
	},
}
