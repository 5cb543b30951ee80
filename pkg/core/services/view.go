package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/jakechorley/clinic-roster/pkg/core/calendar"
	"github.com/jakechorley/clinic-roster/pkg/core/model"
)

// assignmentView is a stored assignment resolved against the directory for display
type assignmentView struct {
	Date       time.Time
	DoctorID   int64
	Doctor     string
	Email      string
	Department string
	ClinicID   int64
	Clinic     string
	Shift      string
	StartTime  string
	EndTime    string
	Room       string
}

func (v assignmentView) DateDisplay() string {
	return v.Date.Format("Mon 02 Jan 2006")
}

func (v assignmentView) TimeRange() string {
	return v.StartTime + "-" + v.EndTime
}

// viewAssignments resolves names for every record and orders them by date, start time,
// clinic, department and doctor. Names missing from the directory fall back to ids.
func viewAssignments(records []model.AssignmentRecord, directory *model.Directory, catalog model.ShiftCatalog) ([]assignmentView, error) {
	views := make([]assignmentView, 0, len(records))
	for _, record := range records {
		date, err := calendar.ParseDate(record.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date on assignment %s: %w", record.ID, err)
		}

		view := assignmentView{
			Date:      date,
			DoctorID:  record.DoctorID,
			Doctor:    fmt.Sprintf("Doctor %d", record.DoctorID),
			ClinicID:  record.ClinicID,
			Clinic:    fmt.Sprintf("Clinic %d", record.ClinicID),
			Shift:     record.ShiftID,
			StartTime: record.StartTime,
			EndTime:   record.EndTime,
		}

		if doctor, ok := directory.DoctorByID(record.DoctorID); ok {
			view.Doctor = doctor.FullName
			view.Email = doctor.Email
			if department, ok := directory.DepartmentByID(doctor.DepartmentID); ok {
				view.Department = department.Name
			}
		}
		for _, clinic := range directory.Clinics {
			if clinic.ID == record.ClinicID {
				view.Clinic = clinic.Name
				break
			}
		}
		if shift, ok := catalog.Lookup(record.ShiftID); ok {
			view.Shift = shift.Name
		}
		if record.RoomID != 0 {
			view.Room = fmt.Sprintf("%d", record.RoomID)
		}

		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		if a.ClinicID != b.ClinicID {
			return a.ClinicID < b.ClinicID
		}
		if a.Department != b.Department {
			return a.Department < b.Department
		}
		return a.Doctor < b.Doctor
	})

	return views, nil
}
