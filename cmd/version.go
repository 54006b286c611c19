package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/fitlog/internal/version"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionShort {
			printf(cmd, "%s\n", version.GetShortVersion())
			return nil
		}
		printf(cmd, "%s\n", version.GetVersionInfo())
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "print only the version")
}

func printf(cmd *cobra.Command, format string, a ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, a...)
}
