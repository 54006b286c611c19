package cmd

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ramanasai/fitlog/internal/logging"
	"github.com/ramanasai/fitlog/internal/ui"
)

// tuiCmd launches the Bubble Tea TUI.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open TUI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func runTUI(cmd *cobra.Command) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// anything written to the terminal would tear the alt screen
	tuiLog := logging.Discard()
	if cfg.Log.File != "" {
		level, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		l, closer, err := logging.OpenFile(cfg.Log.File, level)
		if err != nil {
			return err
		}
		defer closer.Close()
		tuiLog = l
	}

	s, err := openSession(ctx, tuiLog)
	if err != nil {
		return err
	}
	defer s.Close()

	startReminder(ctx, s.ledger)
	tuiLog.Info("tui started", slog.Int("records", len(s.ledger.Summary().Measurements)))
	return ui.Run(ctx, s.ledger, ui.ThemeByName(cfg.Theme))
}

