package roster

import (
	"context"
	"fmt"

	"github.com/jakechorley/clinic-roster/pkg/core/calendar"
	"github.com/jakechorley/clinic-roster/pkg/core/model"
)

// State is the lifecycle state of an editing session
type State string

const (
	StateEmpty               State = "empty"
	StatePopulated           State = "populated"
	StateValidatedOK         State = "validated_ok"
	StateValidatedWithErrors State = "validated_with_errors"
	StateSubmitted           State = "submitted"
	StateDiscarded           State = "discarded"
)

// Session is one editing session over exactly one week and one grid.
// Validation state is not sticky: any grid mutation after a validate call returns the
// session to Populated (or Empty) until it is validated again.
type Session struct {
	week    calendar.WeekWindow
	catalog model.ShiftCatalog
	grid    *Grid
	note    string

	closed           State // StateSubmitted or StateDiscarded once closed
	validated        State
	validatedVersion uint64
}

// NewSession starts an empty editing session for a week
func NewSession(week calendar.WeekWindow, catalog model.ShiftCatalog) *Session {
	return &Session{
		week:    week,
		catalog: catalog,
		grid:    NewGrid(),
	}
}

// Week returns the week being edited
func (s *Session) Week() calendar.WeekWindow {
	return s.week
}

// Catalog returns the shift catalog used by the session
func (s *Session) Catalog() model.ShiftCatalog {
	return s.catalog
}

// Note returns the submission note
func (s *Session) Note() string {
	return s.note
}

// SetNote sets the note sent with the submission
func (s *Session) SetNote(note string) {
	s.note = note
}

// State returns the current lifecycle state
func (s *Session) State() State {
	if s.closed != "" {
		return s.closed
	}
	if s.validated != "" && s.validatedVersion == s.grid.Version() {
		return s.validated
	}
	if s.grid.IsEmpty() {
		return StateEmpty
	}
	return StatePopulated
}

// UpdateCell sets (clinicID non-nil) or clears (nil) a doctor's clinic for a shift.
// day may be a dayKey of the session's week or a weekday name.
func (s *Session) UpdateCell(doctorID int64, day, shiftID string, clinicID *int64) error {
	if s.closed != "" {
		return fmt.Errorf("%w: session is %s", ErrSessionClosed, s.closed)
	}

	workDay, ok := s.week.ResolveDay(day)
	if !ok {
		return fmt.Errorf("%w: %q (week of %s)", ErrDayOutsideWeek, day, s.week.Key())
	}
	if _, ok := s.catalog.Lookup(shiftID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownShift, shiftID)
	}

	s.grid.UpdateCell(doctorID, workDay.Key, shiftID, clinicID)
	return nil
}

// ReadDay returns the shift -> clinic selections of a doctor on a day.
// An unknown day yields an empty map.
func (s *Session) ReadDay(doctorID int64, day string) map[string]int64 {
	workDay, ok := s.week.ResolveDay(day)
	if !ok {
		return map[string]int64{}
	}
	return s.grid.ReadDay(doctorID, workDay.Key)
}

// Cells returns every non-empty cell of the grid
func (s *Session) Cells() []Cell {
	return s.grid.Cells()
}

// Validate runs the submission gate's validate step and records the outcome
func (s *Session) Validate(directory *model.Directory, rule CoverageRule) (*Result, error) {
	result, err := Validate(s.input(directory, rule))
	if err != nil {
		return nil, err
	}

	s.validatedVersion = s.grid.Version()
	if result.IsValid {
		s.validated = StateValidatedOK
	} else {
		s.validated = StateValidatedWithErrors
	}
	return result, nil
}

// Submit always re-validates the current grid and persists only a clean roster.
// A successful submit closes the session.
func (s *Session) Submit(ctx context.Context, directory *model.Directory, rule CoverageRule, persister Persister) (*SubmitResult, error) {
	if s.closed != "" {
		return nil, fmt.Errorf("%w: session is %s", ErrSessionClosed, s.closed)
	}

	result, err := Submit(ctx, s.input(directory, rule), persister)
	if err != nil {
		return nil, err
	}

	s.validatedVersion = s.grid.Version()
	if result.OK {
		s.closed = StateSubmitted
	} else {
		s.validated = StateValidatedWithErrors
	}
	return result, nil
}

// Discard closes the session without persisting anything
func (s *Session) Discard() {
	if s.closed == "" {
		s.closed = StateDiscarded
	}
}

func (s *Session) input(directory *model.Directory, rule CoverageRule) Input {
	return Input{
		Grid:      s.grid,
		Week:      s.week,
		Catalog:   s.catalog,
		Directory: directory,
		Rule:      rule,
		Note:      s.note,
	}
}
