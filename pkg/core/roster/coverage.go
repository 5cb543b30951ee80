package roster

import (
	"fmt"
	"sort"

	"github.com/jakechorley/clinic-roster/pkg/core/calendar"
	"github.com/jakechorley/clinic-roster/pkg/core/model"
)

// CoverageRule decides which clinics a department must staff on a day.
//
// Validation flow:
//   - ValidateClinics checks the active clinic directory before any per-day analysis;
//     any error it returns is structural and stops validation
//   - RequiredClinics receives the clinics working on a day (ascending id) and returns the
//     clinics every department with an assigned doctor that day must be present at
type CoverageRule interface {
	// Name returns the configuration name of the rule
	Name() string

	// ValidateClinics checks the active clinic set (ascending id)
	ValidateClinics(active []model.Clinic) []ValidationError

	// RequiredClinics returns the clinics a staffed department must cover, ascending id
	RequiredClinics(working []model.Clinic) []model.Clinic
}

// Coverage policy names accepted in configuration
const (
	PolicyPairwise   = "pairwise"
	PolicyAllClinics = "allClinics"
)

// RuleForPolicy returns the CoverageRule for a configured policy name.
// An empty name selects the pairwise rule.
func RuleForPolicy(policy string) (CoverageRule, error) {
	switch policy {
	case "", PolicyPairwise:
		return PairwiseRule{}, nil
	case PolicyAllClinics:
		return AllClinicsRule{}, nil
	default:
		return nil, fmt.Errorf("unknown coverage policy %q", policy)
	}
}

// PairwiseRule expects exactly two active clinics. A department staffed on a day must have a
// doctor at each working clinic independently: both when both clinics work, the single one
// otherwise.
type PairwiseRule struct{}

func (PairwiseRule) Name() string {
	return PolicyPairwise
}

func (PairwiseRule) ValidateClinics(active []model.Clinic) []ValidationError {
	if len(active) != 2 {
		return []ValidationError{
			structuralError("Coverage check requires exactly 2 active clinics, found %d.", len(active)),
		}
	}
	return nil
}

func (PairwiseRule) RequiredClinics(working []model.Clinic) []model.Clinic {
	return working
}

// AllClinicsRule generalises the pairwise rule to any number of active clinics: a staffed
// department must be present at every clinic working that day.
type AllClinicsRule struct{}

func (AllClinicsRule) Name() string {
	return PolicyAllClinics
}

func (AllClinicsRule) ValidateClinics(active []model.Clinic) []ValidationError {
	if len(active) == 0 {
		return []ValidationError{structuralError("Coverage check requires at least 1 active clinic, found 0.")}
	}
	return nil
}

func (AllClinicsRule) RequiredClinics(working []model.Clinic) []model.Clinic {
	return working
}

// ValidateCoverage checks expanded assignments against the coverage invariant.
//
// Checks run in order and each stage stops the ones after it:
//  1. rule.ValidateClinics on the active clinic directory (structural)
//  2. every assignment references an active clinic (structural, one error per assignment)
//  3. the roster is not empty (a single empty-roster error)
//  4. per day, per staffed department, per required clinic (coverage)
//
// Stage 4 never short-circuits. Violations are ordered by day, department name, then clinic id,
// so the same input always yields the same list.
func ValidateCoverage(
	week calendar.WeekWindow,
	assignments model.DailyAssignments,
	catalog model.ShiftCatalog,
	directory *model.Directory,
	rule CoverageRule,
) ([]ValidationError, error) {
	activeClinics := directory.ActiveClinics()
	if errs := rule.ValidateClinics(activeClinics); len(errs) > 0 {
		return errs, nil
	}

	if errs := inactiveClinicErrors(week, assignments, catalog, directory); len(errs) > 0 {
		return errs, nil
	}

	if assignments.Count() == 0 {
		return []ValidationError{emptyRosterError()}, nil
	}

	var violations []ValidationError
	for _, day := range week.WorkingDays() {
		dayViolations, err := validateDay(day, assignments[day.Key], directory, rule)
		if err != nil {
			return nil, err
		}
		violations = append(violations, dayViolations...)
	}

	return violations, nil
}

// validateDay checks one working day
func validateDay(day calendar.WorkDay, assignments []model.ShiftAssignment, directory *model.Directory, rule CoverageRule) ([]ValidationError, error) {
	if len(assignments) == 0 {
		// Day off for the whole roster
		return nil, nil
	}

	// Working clinics and, per department, the clinics it is present at
	workingSet := make(map[int64]bool)
	presence := make(map[int64]map[int64]bool)
	departments := make(map[int64]model.Department)

	for _, assignment := range assignments {
		workingSet[assignment.ClinicID] = true

		doctor, ok := directory.DoctorByID(assignment.DoctorID)
		if !ok {
			return nil, fmt.Errorf("%w: doctor %d", ErrUnknownDoctor, assignment.DoctorID)
		}
		department, ok := directory.DepartmentByID(doctor.DepartmentID)
		if !ok {
			return nil, fmt.Errorf("%w: department %d of doctor %d", ErrUnknownDepartment, doctor.DepartmentID, doctor.ID)
		}

		departments[department.ID] = department
		if presence[department.ID] == nil {
			presence[department.ID] = make(map[int64]bool)
		}
		presence[department.ID][assignment.ClinicID] = true
	}

	working := make([]model.Clinic, 0, len(workingSet))
	for _, clinic := range directory.ActiveClinics() {
		if workingSet[clinic.ID] {
			working = append(working, clinic)
		}
	}
	required := rule.RequiredClinics(working)

	staffed := make([]model.Department, 0, len(departments))
	for _, department := range departments {
		staffed = append(staffed, department)
	}
	sort.Slice(staffed, func(i, j int) bool {
		if staffed[i].Name != staffed[j].Name {
			return staffed[i].Name < staffed[j].Name
		}
		return staffed[i].ID < staffed[j].ID
	})

	var violations []ValidationError
	for _, department := range staffed {
		for _, clinic := range required {
			if !presence[department.ID][clinic.ID] {
				violations = append(violations, coverageViolation(day.Key, day.Name(), department.Name, clinic.Name))
			}
		}
	}

	return violations, nil
}

// unknownDoctorErrors reports grid cells whose doctor is not in the active doctor snapshot,
// ordered by day, doctor, then shift
func unknownDoctorErrors(grid *Grid, week calendar.WeekWindow, catalog model.ShiftCatalog, directory *model.Directory) []ValidationError {
	var errs []ValidationError
	for _, cell := range grid.Cells() {
		if _, ok := directory.DoctorByID(cell.DoctorID); ok {
			continue
		}

		dayName := cell.DayKey
		if day, ok := week.Day(cell.DayKey); ok {
			dayName = day.Name()
		}
		shiftName := cell.ShiftID
		if shift, ok := catalog.Lookup(cell.ShiftID); ok {
			shiftName = shift.Name
		}

		err := structuralError("Doctor %d on %s (%s) is not an active doctor; clear the cell or restore the doctor.",
			cell.DoctorID, dayName, shiftName)
		err.Day = dayName
		err.DayKey = cell.DayKey
		errs = append(errs, err)
	}
	return errs
}

// inactiveClinicErrors reports assignments whose clinic is not an active clinic
func inactiveClinicErrors(week calendar.WeekWindow, assignments model.DailyAssignments, catalog model.ShiftCatalog, directory *model.Directory) []ValidationError {
	var errs []ValidationError
	for _, day := range week.WorkingDays() {
		for _, assignment := range assignments[day.Key] {
			if _, ok := directory.ActiveClinicByID(assignment.ClinicID); ok {
				continue
			}

			doctorName := fmt.Sprintf("#%d", assignment.DoctorID)
			if doctor, ok := directory.DoctorByID(assignment.DoctorID); ok {
				doctorName = doctor.FullName
			}
			shiftName := assignment.ShiftID
			if shift, ok := catalog.Lookup(assignment.ShiftID); ok {
				shiftName = shift.Name
			}

			err := structuralError("Doctor %s on %s (%s) is assigned to clinic %d, which is not an active clinic.",
				doctorName, day.Name(), shiftName, assignment.ClinicID)
			err.Day = day.Name()
			err.DayKey = day.Key
			errs = append(errs, err)
		}
	}
	return errs
}
