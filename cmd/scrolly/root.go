package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scrolly",
	Short: "Scrolly drives sticky-panel scrollytelling pages",
	Long: `Scrolly runs the step-transition engine of a scrollytelling page: it swaps
the sticky image, map and video panels as readers scroll through the steps.

Replay scripted scroll sessions with 'simulate', check page markup with
'validate', or drive live pages over HTTP with 'serve'.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Engine configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); empty disables logs")
}
