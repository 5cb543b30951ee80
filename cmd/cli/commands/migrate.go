package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// MigrateCmd creates the migrate command
func MigrateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := app.Database.RunMigrations(app.Ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				fmt.Fprintln(out, "Database schema is up to date.")
				return nil
			}

			fmt.Fprintf(out, "\n✓ Applied %d migration(s):\n", len(applied))
			for _, name := range applied {
				fmt.Fprintf(out, "  - %s\n", name)
			}
			fmt.Fprintln(out)

			return nil
		},
	}
}
