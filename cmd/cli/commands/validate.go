package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/clinic-roster/pkg/core/services"
)

// ValidateCmd creates the validate command
func ValidateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <roster_file>",
		Short: "Dry-run a roster file against the coverage rules without saving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			app.Logger.Debug("validate command", zap.String("file", args[0]), zap.Bool("json", asJSON))

			opened, err := services.OpenRosterFile(args[0], app.Now(), app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			directory, err := app.LoadDirectory()
			if err != nil {
				return err
			}

			response, err := services.ValidateRoster(opened, directory, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(response); err != nil {
					return fmt.Errorf("failed to encode response: %w", err)
				}
			} else {
				printWarnings(out, opened.Warnings)
				printResponse(out, response)
			}

			if !response.IsValid {
				return errRosterInvalid
			}
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print the response as JSON")

	return cmd
}
