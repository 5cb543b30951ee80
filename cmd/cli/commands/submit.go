package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/clinic-roster/pkg/core/model"
	"github.com/jakechorley/clinic-roster/pkg/core/roster"
	"github.com/jakechorley/clinic-roster/pkg/core/services"
)

// SubmitCmd creates the submit command
func SubmitCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit <roster_file>",
		Short: "Validate a roster file and save it when it passes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notify, _ := cmd.Flags().GetBool("notify")
			publish, _ := cmd.Flags().GetBool("publish")
			app.Logger.Debug("submit command",
				zap.String("file", args[0]),
				zap.Bool("notify", notify),
				zap.Bool("publish", publish))

			opened, err := services.OpenRosterFile(args[0], app.Now(), app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			directory, err := app.LoadDirectory()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printWarnings(out, opened.Warnings)

			result, err := services.SubmitRoster(app.Ctx, opened, directory, app.Database, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			printSubmitResult(out, result)
			if !result.OK {
				return errRosterInvalid
			}

			return afterSubmit(cmd, app, directory, result, notify, publish)
		},
	}

	cmd.Flags().Bool("notify", false, "Email each assigned doctor their shifts")
	cmd.Flags().Bool("publish", false, "Publish the week to the publish spreadsheet")

	return cmd
}

// afterSubmit runs the optional publish and notify steps for a saved roster.
// The roster is already saved, so their failures are reported without undoing it.
func afterSubmit(cmd *cobra.Command, app *AppContext, directory *model.Directory, result *roster.SubmitResult, notify, publish bool) error {
	out := cmd.OutOrStdout()
	weekStart := result.Submission.WeekStart

	if publish {
		sheets, err := app.SheetsClient()
		if err != nil {
			return err
		}
		published, err := services.PublishRoster(app.Ctx, app.Database, sheets, directory, app.Cfg, app.Logger, weekStart)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Published to tab %q\n", published.TabTitle)
	}

	if notify {
		catalog, err := app.Cfg.ShiftCatalog()
		if err != nil {
			return err
		}
		gmail, err := app.GmailClient()
		if err != nil {
			return err
		}
		notified, err := services.NotifyRoster(app.Ctx, gmail, weekStart, result.Submission.Note, result.Records, directory, catalog, app.Logger)
		if err != nil {
			return err
		}
		printNotifyResult(out, notified)
	}

	return nil
}
