package roster

import (
	"errors"
	"fmt"
)

// Misuse errors. Domain problems with a roster are reported as ValidationErrors instead.
var (
	ErrUnknownDoctor     = errors.New("doctor not present in directory snapshot")
	ErrUnknownDepartment = errors.New("department not present in directory snapshot")
	ErrUnknownShift      = errors.New("shift not present in catalog")
	ErrDayOutsideWeek    = errors.New("day is not a working day of the week")
	ErrSessionClosed     = errors.New("editing session is closed")
)

// ErrorKind classifies a ValidationError
type ErrorKind string

const (
	// KindStructural covers directory shape problems and malformed input; no per-day analysis runs
	KindStructural ErrorKind = "structural"

	// KindEmptyRoster is reported once when expansion yields no assignments at all
	KindEmptyRoster ErrorKind = "empty_roster"

	// KindCoverage is one missing department/clinic/day combination
	KindCoverage ErrorKind = "coverage"
)

// ValidationError is a single problem found while validating a roster
type ValidationError struct {
	Kind           ErrorKind
	Day            string // weekday name, empty for roster-wide errors
	DayKey         string
	DepartmentName string
	ClinicName     string
	Message        string
}

func (e ValidationError) Error() string {
	return e.Message
}

func structuralError(format string, args ...any) ValidationError {
	return ValidationError{
		Kind:    KindStructural,
		Message: fmt.Sprintf(format, args...),
	}
}

func emptyRosterError() ValidationError {
	return ValidationError{
		Kind:    KindEmptyRoster,
		Message: "Roster is empty: no doctor is assigned to any shift this week.",
	}
}

func coverageViolation(dayKey, day, departmentName, clinicName string) ValidationError {
	return ValidationError{
		Kind:           KindCoverage,
		Day:            day,
		DayKey:         dayKey,
		DepartmentName: departmentName,
		ClinicName:     clinicName,
		Message:        fmt.Sprintf("Department %s on %s has no doctor at %s.", departmentName, day, clinicName),
	}
}

// Messages returns the message of each error, in order
func Messages(errs []ValidationError) []string {
	messages := make([]string, len(errs))
	for i, err := range errs {
		messages[i] = err.Message
	}
	return messages
}
