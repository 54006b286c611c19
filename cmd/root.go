package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ramanasai/fitlog/internal/activity"
	"github.com/ramanasai/fitlog/internal/config"
	"github.com/ramanasai/fitlog/internal/logging"
	"github.com/ramanasai/fitlog/internal/notify"
	"github.com/ramanasai/fitlog/internal/schedule"
)

var (
	cfgFile       string
	seedFile      string
	gpxFiles      []string
	weightKg      float64
	noBareMinutes bool
	verbose       bool
)

// Loaded in PersistentPreRunE, shared by every subcommand.
var (
	cfg    = config.Default()
	logger = logging.Discard()
)

// isInteractive reports whether stdout is a terminal. Tests swap it out.
var isInteractive = func() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

var rootCmd = &cobra.Command{
	Use:   "fitlog",
	Short: "Log workouts and see minutes, calories and steps",
	Long: `fitlog keeps a session ledger of workouts ("Evening Running", "45 mins")
and totals the time, estimated calories burned and steps.

Without a subcommand it opens the TUI on a terminal and prints the summary otherwise.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isInteractive() {
			return runTUI(cmd)
		}
		return runSummary(cmd, summaryOptions{format: "default", breakdown: true})
	},
}

func Execute() error { return rootCmd.Execute() }

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ~/.config/fitlog/config.yaml)")
	pf.StringVar(&seedFile, "seed", "", "YAML file with activities to load at start")
	pf.StringSliceVar(&gpxFiles, "gpx", nil, "GPX track to load at start (repeatable)")
	pf.Float64Var(&weightKg, "weight", 0, "body weight in kg for calorie estimates")
	pf.BoolVar(&noBareMinutes, "no-bare-minutes", false, "do not read a bare number as minutes")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(tuiCmd, addCmd, summaryCmd, serveCmd, parseCmd, versionCmd)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		c.SeedFile = seedFile
	}
	if flags.Changed("weight") {
		c.WeightKg = weightKg
	}
	if flags.Changed("no-bare-minutes") {
		c.Parser.BareMinutes = !noBareMinutes
	}
	if verbose {
		c.Log.Level = "debug"
	}
	if err := c.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	cfg = c
	logger = logging.New(cmd.ErrOrStderr(), level)
	logger.Debug("config loaded", slog.String("file", cfgFile), slog.String("store", cfg.Store.Driver))
	return nil
}

// startReminder runs the desktop reminder until ctx is done. It is a no-op
// unless reminder.enabled is set.
func startReminder(ctx context.Context, ledger *activity.Ledger) {
	if !cfg.Reminder.Enabled || os.Getenv("FITLOG_NO_REMINDER") == "1" {
		return
	}
	go schedule.RunConfigured(ctx, cfg.Reminder, func() {
		title, msg := notify.FormatReminder(ledger.Totals())
		if err := notify.Info(title, msg); err != nil {
			logger.Warn("reminder notification failed", slog.Any("error", err))
		}
	})
}
