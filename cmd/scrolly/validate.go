package main

import (
	"github.com/aretw0/scrolly/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <page.xhtml>...",
	Short: "Check pages against the scrolly markup contract",
	Long:  `Reports every instance or step that the engine would silently skip.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunValidate(args, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
