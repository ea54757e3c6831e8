package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "feasibility-dashboard",
		Short: "Compare market-feasible housing across zoning scenarios",
		Long: `feasibility-dashboard reads one aggregated CSV per zoning scenario and
charts the unzoned baseline against up to nine zoned scenarios: total and
affordable units, income brackets, bedroom counts and parking stalls.

Use "serve" for the web dashboard or "render" to print the tables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newRenderCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
