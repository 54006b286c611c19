package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/fitlog/internal/activity"
	"github.com/ramanasai/fitlog/internal/utils"
)

type summaryOptions struct {
	format    string
	ids       bool
	breakdown bool
}

var summaryOpts = summaryOptions{format: "default", breakdown: true}

// summaryCmd prints the seeded ledger and its totals.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print activities and totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummary(cmd, summaryOpts)
	},
}

func init() {
	summaryCmd.Flags().StringVarP(&summaryOpts.format, "format", "f", summaryOpts.format, "output format: default|table|json|quiet")
	summaryCmd.Flags().BoolVar(&summaryOpts.ids, "ids", false, "show record ids")
	summaryCmd.Flags().BoolVar(&summaryOpts.breakdown, "breakdown", true, "include the per-activity breakdown")
}

func runSummary(cmd *cobra.Command, opts summaryOptions) error {
	s, err := openSession(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer s.Close()
	return printLedger(cmd, s.ledger, opts)
}

func printLedger(cmd *cobra.Command, ledger *activity.Ledger, opts summaryOptions) error {
	format, err := utils.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	rc := utils.DefaultRenderConfig()
	rc.Format = format
	rc.Color = isInteractive()
	rc.ShowID = opts.ids
	rc.ShowBreakdown = opts.breakdown

	out, err := utils.NewRenderer(rc).Render(utils.NewReport(ledger.Calculator(), ledger.Summary()))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
