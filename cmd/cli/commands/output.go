package commands

import (
	"fmt"
	"io"

	"github.com/jakechorley/clinic-roster/pkg/core/model"
	"github.com/jakechorley/clinic-roster/pkg/core/roster"
)

func printWarnings(out io.Writer, warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintf(out, "⚠️  %s\n", warning)
	}
}

func printResponse(out io.Writer, response model.ValidateResponse) {
	if response.IsValid {
		fmt.Fprintf(out, "\n✓ Roster is valid\n\n")
		return
	}

	fmt.Fprintf(out, "\n✗ Roster has %d error(s):\n", len(response.Errors))
	for _, message := range response.Errors {
		fmt.Fprintf(out, "  - %s\n", message)
	}
	fmt.Fprintln(out)
}

func printSubmitResult(out io.Writer, result *roster.SubmitResult) {
	if !result.OK {
		printResponse(out, model.ValidateResponse{IsValid: false, Errors: roster.Messages(result.Errors)})
		fmt.Fprintf(out, "Nothing was saved.\n\n")
		return
	}

	fmt.Fprintf(out, "\n✓ Roster for the week of %s submitted\n\n", result.Submission.WeekStart)
	fmt.Fprintf(out, "Assignments: %d\n", len(result.Records))
	if result.Submission.Note != "" {
		fmt.Fprintf(out, "Note:        %s\n", result.Submission.Note)
	}
	fmt.Fprintln(out)
}
