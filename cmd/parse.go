package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramanasai/fitlog/internal/activity"
)

var parseExplain bool

// parseCmd shows how duration text is read, one argument per line.
var parseCmd = &cobra.Command{
	Use:   "parse TEXT...",
	Short: "Print the minutes a duration text counts for",
	Example: `  fitlog parse "1 hr 15 mins" 45 "half an hour"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := activity.Parser{BareMinutes: cfg.Parser.BareMinutes}
		for _, text := range args {
			mins, ok := p.Explain(text)
			if !parseExplain {
				printf(cmd, "%d\n", mins)
				continue
			}
			note := activity.FormatMinutes(mins)
			if !ok {
				note = "not recognised"
			}
			printf(cmd, "%-20s %4d  %s\n", strings.TrimSpace(text), mins, note)
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().BoolVarP(&parseExplain, "explain", "e", false, "show the input and a readable form next to each result")
}
