package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dealdesk/memogen/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the memorandum generation server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p, llm := buildPipeline()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		srv, err := server.New(p, llm, cfg)
		if err != nil {
			return err
		}

		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
