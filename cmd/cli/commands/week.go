package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/clinic-roster/pkg/core/services"
)

// WeekCmd creates the week command
func WeekCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "week [week_start]",
		Short: "Show the schedulable week for a week start (defaults to next week)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var requested string
			if len(args) > 0 {
				requested = args[0]
			}

			result, err := services.ResolveWeek(requested, app.Now(), app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printWarnings(out, result.Warnings)

			fmt.Fprintf(out, "\nWeek starting %s\n\n", result.Week.Key())
			for _, day := range result.Week.WorkingDays() {
				fmt.Fprintf(out, "  %-10s %s\n", day.Name(), day.Key)
			}
			if result.Note != "" {
				fmt.Fprintf(out, "\nNote: %s\n", result.Note)
			}
			fmt.Fprintln(out)

			return nil
		},
	}
}
