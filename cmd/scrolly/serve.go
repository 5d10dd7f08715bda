package main

import (
	"net"

	"github.com/aretw0/scrolly/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Hosts live page sessions over HTTP. Clients upload a page, report the
steps readers scroll into and follow panel changes over Server-Sent Events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		logLevel, _ := cmd.Flags().GetString("log-level")
		host, _ := cmd.Flags().GetString("host")
		port, _ := cmd.Flags().GetString("port")
		strict, _ := cmd.Flags().GetBool("strict")

		if logLevel == "" {
			logLevel = "info"
		}
		logger, err := cli.NewLogger(logLevel)
		if err != nil {
			return err
		}
		cfg, err := cli.LoadConfig(configPath)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.RunServe(ctx, cli.ServeOptions{
			Addr:   net.JoinHostPort(host, port),
			Config: cfg,
			Strict: strict,
			Logger: logger,
			Out:    cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "", "Interface to listen on")
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Bool("strict", false, "Reject pages that fail validation")
}
