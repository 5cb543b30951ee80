package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ListDoctorsCmd creates the listDoctors command
func ListDoctorsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listDoctors",
		Short: "List active doctors and clinics from the directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			directory, err := app.LoadDirectory()
			if err != nil {
				return err
			}

			app.Logger.Info("Directory fetched successfully", zap.Int("doctors", len(directory.Doctors)))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nFound %d active doctors:\n\n", len(directory.Doctors))
			for _, doctor := range directory.Doctors {
				department := "?"
				if d, ok := directory.DepartmentByID(doctor.DepartmentID); ok {
					department = d.Name
				}
				room := "no room"
				if doctor.DefaultRoomID != 0 {
					room = fmt.Sprintf("room %d", doctor.DefaultRoomID)
				}
				fmt.Fprintf(out, "- %s (%d) - %s - %s - %s\n", doctor.FullName, doctor.ID, department, room, doctor.Email)
			}

			fmt.Fprintf(out, "\nClinics:\n\n")
			for _, clinic := range directory.Clinics {
				status := "active"
				if !clinic.Active {
					status = "inactive"
				}
				fmt.Fprintf(out, "- %s (%d) - %s\n", clinic.Name, clinic.ID, status)
			}
			fmt.Fprintln(out)

			return nil
		},
	}
}
