package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/scrolly"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of scrolly",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "scrolly version %s\n", strings.TrimSpace(scrolly.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
