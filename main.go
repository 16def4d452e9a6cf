// main is the entry point for the attrition scenario simulator.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/attrition/cmd"
	"github.com/huangsam/attrition/internal/rosterdb"
)

func main() {
	defer rosterdb.CloseRoster()
	cmd.SetRosterManager(rosterdb.Manager)

	if err := cmd.Execute(); err != nil {
		_ = cmd.StopProfiling()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cmd.StopProfiling(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to stop profiling:", err)
	}
}
