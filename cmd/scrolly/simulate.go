package main

import (
	"os"

	"github.com/aretw0/scrolly/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.yaml>",
	Short: "Replay a scripted scroll session",
	Long: `Replays the events of a scenario file against a virtual clock and prints
what the sticky panel showed after each one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		logLevel, _ := cmd.Flags().GetString("log-level")
		format, _ := cmd.Flags().GetString("format")

		logger, err := cli.NewLogger(logLevel)
		if err != nil {
			return err
		}
		cfg, err := cli.LoadConfig(configPath)
		if err != nil {
			return err
		}

		fd := int(os.Stdout.Fd())
		opts := cli.SimulateOptions{
			Scenario: args[0],
			Config:   cfg,
			Format:   format,
			Out:      cmd.OutOrStdout(),
			Logger:   logger,
			Terminal: term.IsTerminal(fd),
		}
		if opts.Terminal {
			if width, _, err := term.GetSize(fd); err == nil {
				opts.Width = width
			}
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.RunSimulate(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringP("format", "f", cli.FormatAuto, "Report format: auto, markdown, json or plain")
}
