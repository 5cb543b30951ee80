package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/clinic-roster/pkg/core/services"
)

// HistoryCmd creates the history command
func HistoryCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List submitted weeks, latest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			submissions, err := services.ListSubmissions(app.Ctx, app.Database, app.Logger, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(submissions) == 0 {
				fmt.Fprintln(out, "No weeks have been submitted yet.")
				return nil
			}

			fmt.Fprintf(out, "\n%-12s %-22s %-12s %s\n", "Week", "Submitted", "Assignments", "Note")
			for _, s := range submissions {
				fmt.Fprintf(out, "%-12s %-22s %-12d %s\n", s.WeekStart, s.SubmittedAt, s.Assignments, s.Note)
			}
			fmt.Fprintln(out)

			return nil
		},
	}

	cmd.Flags().Int("limit", 10, "Maximum number of submissions to show (0 for all)")

	return cmd
}
