package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/clinic-roster/pkg/core/services"
)

// NotifyCmd creates the notify command
func NotifyCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "notify <week_start>",
		Short: "Email each assigned doctor their shifts for a confirmed week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("notify command", zap.String("week_start", args[0]))

			directory, err := app.LoadDirectory()
			if err != nil {
				return err
			}

			gmail, err := app.GmailClient()
			if err != nil {
				return err
			}

			result, err := services.NotifyWeek(app.Ctx, app.Database, gmail, directory, app.Cfg, app.Logger, args[0])
			if err != nil {
				return err
			}

			printNotifyResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func printNotifyResult(out io.Writer, result *services.NotifyResult) {
	fmt.Fprintf(out, "\n✓ Emailed %d doctor(s)\n", len(result.Sent))
	for _, name := range result.Sent {
		fmt.Fprintf(out, "  ✓ %s\n", name)
	}
	if len(result.NoEmail) > 0 {
		fmt.Fprintf(out, "\nNo email address on file for:\n")
		for _, name := range result.NoEmail {
			fmt.Fprintf(out, "  - %s\n", name)
		}
	}
	if len(result.Failed) > 0 {
		fmt.Fprintf(out, "\n⚠️  Failed to send %d email(s):\n", len(result.Failed))
		for _, name := range result.Failed {
			fmt.Fprintf(out, "  ✗ %s\n", name)
		}
	}
	fmt.Fprintln(out)
}
