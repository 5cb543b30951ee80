package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/clinic-roster/pkg/core/model"
	"github.com/jakechorley/clinic-roster/pkg/core/roster"
	"github.com/jakechorley/clinic-roster/pkg/core/services"
)

// EditCmd creates the edit command
func EditCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [week_start]",
		Short: "Edit a week's roster interactively, then validate and submit it",
		Long: `Start an editing session for one week (defaults to next week).
Use --from to load an existing roster file into the session.

Type 'help' inside the session to see available commands.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString("from")
			out := cmd.OutOrStdout()

			var session *roster.Session
			if from != "" {
				if len(args) > 0 {
					return fmt.Errorf("week_start cannot be combined with --from")
				}
				opened, err := services.OpenRosterFile(from, app.Now(), app.Cfg, app.Logger)
				if err != nil {
					return err
				}
				printWarnings(out, opened.Warnings)
				if opened.Session == nil {
					printResponse(out, model.ValidateResponse{IsValid: false, Errors: roster.Messages(opened.Errors)})
					return errRosterInvalid
				}
				for _, fileErr := range opened.Errors {
					fmt.Fprintf(out, "⚠️  %s (cell skipped)\n", fileErr.Message)
				}
				session = opened.Session
			} else {
				var requested string
				if len(args) > 0 {
					requested = args[0]
				}
				week, err := services.ResolveWeek(requested, app.Now(), app.Cfg, app.Logger)
				if err != nil {
					return err
				}
				printWarnings(out, week.Warnings)

				catalog, err := app.Cfg.ShiftCatalog()
				if err != nil {
					return err
				}
				session = roster.NewSession(week.Week, catalog)
				session.SetNote(week.Note)
			}

			directory, err := app.LoadDirectory()
			if err != nil {
				return err
			}

			app.Logger.Debug("edit command", zap.String("week_start", session.Week().Key()))

			ed := &editor{
				ctx:       app.Ctx,
				session:   session,
				directory: directory,
				persister: app.Database,
				cfg:       app.Cfg,
				logger:    app.Logger,
				out:       out,
			}
			if err := ed.run(cmd.InOrStdin()); err != nil {
				return err
			}

			if ed.submitted != nil {
				notify, _ := cmd.Flags().GetBool("notify")
				publish, _ := cmd.Flags().GetBool("publish")
				return afterSubmit(cmd, app, directory, ed.submitted, notify, publish)
			}
			return nil
		},
	}

	cmd.Flags().String("from", "", "Roster file to load into the session")
	cmd.Flags().Bool("notify", false, "Email each assigned doctor their shifts after submitting")
	cmd.Flags().Bool("publish", false, "Publish the week to the publish spreadsheet after submitting")

	return cmd
}
