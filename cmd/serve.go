package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ramanasai/fitlog/internal/web"
)

var serveAddr string

// serveCmd serves the ledger page, the JSON API and /metrics.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the activity page over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		s, err := openSession(ctx, logger)
		if err != nil {
			return err
		}
		defer s.Close()

		addr := cfg.Serve.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}

		startReminder(ctx, s.ledger)
		handler := web.NewHandler(s.ledger, logger, s.registry)
		return web.Serve(ctx, web.DefaultServerConfig(addr), handler.Routes(), logger, func(bound string) {
			printf(cmd, "fitlog listening on http://%s\n", bound)
		})
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from serve.addr)")
}
