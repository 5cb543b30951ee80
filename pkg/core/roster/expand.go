package roster

import (
	"fmt"

	"github.com/jakechorley/clinic-roster/pkg/core/calendar"
	"github.com/jakechorley/clinic-roster/pkg/core/model"
)

// Expand turns the grid into concrete shift assignments grouped by dayKey.
//
// For each working day, each doctor with an entry that day (ascending id) and each catalog
// shift (catalog order) with a clinic selected, exactly one assignment is emitted using the
// shift's fixed times, the doctor's default room and the unassigned chair placeholder.
// Days without assignments have no key in the result.
//
// Expansion is total: a cell that cannot be expanded (doctor missing from the snapshot,
// day outside the week, shift outside the catalog) is a caller error, never silently dropped.
func Expand(grid *Grid, week calendar.WeekWindow, catalog model.ShiftCatalog, doctors []model.Doctor) (model.DailyAssignments, error) {
	doctorsByID := make(map[int64]model.Doctor, len(doctors))
	for _, doctor := range doctors {
		doctorsByID[doctor.ID] = doctor
	}

	// Check totality up front so nothing is emitted for a grid that cannot be fully expanded
	for _, cell := range grid.Cells() {
		if _, ok := doctorsByID[cell.DoctorID]; !ok {
			return nil, fmt.Errorf("%w: doctor %d", ErrUnknownDoctor, cell.DoctorID)
		}
		if _, ok := week.Day(cell.DayKey); !ok {
			return nil, fmt.Errorf("%w: %s (week of %s)", ErrDayOutsideWeek, cell.DayKey, week.Key())
		}
		if _, ok := catalog.Lookup(cell.ShiftID); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownShift, cell.ShiftID)
		}
	}

	result := make(model.DailyAssignments)
	for _, day := range week.WorkingDays() {
		for _, doctorID := range grid.DoctorsOn(day.Key) {
			doctor := doctorsByID[doctorID]
			selections := grid.ReadDay(doctorID, day.Key)

			for _, shift := range catalog {
				clinicID, ok := selections[shift.ID]
				if !ok {
					continue
				}

				result[day.Key] = append(result[day.Key], model.ShiftAssignment{
					DoctorID:  doctor.ID,
					ClinicID:  clinicID,
					RoomID:    doctor.DefaultRoomID,
					ChairID:   model.UnassignedChair,
					DayKey:    day.Key,
					ShiftID:   shift.ID,
					StartTime: shift.StartTime,
					EndTime:   shift.EndTime,
				})
			}
		}
	}

	return result, nil
}
