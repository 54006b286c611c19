package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/ramanasai/fitlog/internal/activity"
)

var addOpts = summaryOptions{format: "default"}

// addCmd adds one activity on top of the seed and prints the result.
var addCmd = &cobra.Command{
	Use:   "add [NAME] [DURATION]",
	Short: "Add an activity and print the totals",
	Example: `  fitlog add "Evening Running" "1 hr 15 mins"
  fitlog add Yoga 45`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var name, duration string
		if len(args) > 0 {
			name = args[0]
		}
		if len(args) > 1 {
			duration = args[1]
		}
		if name == "" || duration == "" {
			if !isInteractive() {
				return errors.New("add needs NAME and DURATION when not on a terminal")
			}
			if err := promptActivity(&name, &duration); err != nil {
				return err
			}
		}

		s, err := openSession(cmd.Context(), logger)
		if err != nil {
			return err
		}
		defer s.Close()

		_, _, ok, err := s.ledger.Add(cmd.Context(), name, duration)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("name and duration must not be blank")
		}
		return printLedger(cmd, s.ledger, addOpts)
	},
}

func init() {
	addCmd.Flags().StringVarP(&addOpts.format, "format", "f", addOpts.format, "output format: default|table|json|quiet")
	addCmd.Flags().BoolVar(&addOpts.ids, "ids", false, "show record ids")
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// promptActivity asks for whichever of name and duration is still empty.
func promptActivity(name, duration *string) error {
	tables, err := cfg.Tables()
	if err != nil {
		return err
	}
	parser := activity.Parser{BareMinutes: cfg.Parser.BareMinutes}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Activity").
				Placeholder("Evening Running").
				Suggestions(tables.Keys()).
				Value(name).
				Validate(notBlank("activity")),
			huh.NewInput().
				Title("Duration").
				Placeholder("1 hr 15 mins").
				Value(duration).
				Validate(notBlank("duration")).
				DescriptionFunc(func() string {
					if strings.TrimSpace(*duration) == "" {
						return ""
					}
					mins, ok := parser.Explain(*duration)
					if !ok {
						return "not recognised, counts as 0 minutes"
					}
					return activity.FormatMinutes(mins)
				}, duration),
		),
	).WithShowHelp(false)
	return form.Run()
}
