package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "headless",
		Short: "Headless UI state server",
		Long: `Headless runs the server side of the headless UI state
primitives: a bounded toast queue, a scroll-driven carousel state
machine, and a debounced viewport flag.

A thin browser client forwards scroll, resize, and media-query events
over a WebSocket; derived state is pushed back as JSON frames.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("headless %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
