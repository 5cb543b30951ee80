package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/clinic-roster/pkg/core/services"
)

// PublishCmd creates the publish command
func PublishCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <week_start>",
		Short: "Publish a confirmed week to the publish spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("publish command", zap.String("week_start", args[0]))

			directory, err := app.LoadDirectory()
			if err != nil {
				return err
			}

			sheets, err := app.SheetsClient()
			if err != nil {
				return err
			}

			result, err := services.PublishRoster(app.Ctx, app.Database, sheets, directory, app.Cfg, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Published %d assignments to tab %q\n\n", result.Assignments, result.TabTitle)
			return nil
		},
	}
}
