package roster

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/clinic-roster/pkg/core/calendar"
	"github.com/jakechorley/clinic-roster/pkg/core/model"
)

// FileCell is one roster file entry
type FileCell struct {
	DoctorID int64  `yaml:"doctorId" validate:"required,gt=0"`
	Day      string `yaml:"day" validate:"required"`   // dayKey or weekday name
	Shift    string `yaml:"shift" validate:"required"` // catalog shift id
	ClinicID int64  `yaml:"clinicId" validate:"required,gt=0"`
}

// File is a roster edited outside an interactive session
type File struct {
	WeekStart string     `yaml:"weekStart" validate:"required"`
	Note      string     `yaml:"note,omitempty"`
	Cells     []FileCell `yaml:"cells" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadFile reads and validates a roster file
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}
	return ParseFile(data)
}

// ParseFile parses and validates roster file contents
func ParseFile(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}

	if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("roster file validation failed: %w", err)
	}

	return &file, nil
}

// OpenedFile is a roster file loaded into a fresh session
type OpenedFile struct {
	// Session holds the grid built from the file; nil when the week could not be resolved
	Session *Session

	// Warnings about corrections applied to the week start
	Warnings []string

	// Errors are structural problems with the file contents
	Errors []ValidationError
}

// Open resolves the file's week relative to today and replays every cell into a new session.
// A malformed weekStart, a day outside the resolved week, an unknown shift, or two clinics for
// the same doctor/day/shift are returned as structural errors.
func (f *File) Open(today time.Time, catalog model.ShiftCatalog) *OpenedFile {
	requested, err := calendar.ParseDate(f.WeekStart)
	if err != nil {
		return &OpenedFile{
			Errors: []ValidationError{structuralError("Malformed weekStart %q: expected YYYY-MM-DD.", f.WeekStart)},
		}
	}

	week, warnings := calendar.ResolveWeekStart(requested, today)
	session := NewSession(week, catalog)
	session.SetNote(f.Note)

	opened := &OpenedFile{
		Session:  session,
		Warnings: warnings,
	}

	type slot struct {
		doctorID int64
		dayKey   string
		shiftID  string
	}
	seen := make(map[slot]int)

	for i, cell := range f.Cells {
		day, ok := week.ResolveDay(cell.Day)
		if !ok {
			opened.Errors = append(opened.Errors, structuralError(
				"Cell %d: day %q is not a working day of the week starting %s.", i+1, cell.Day, week.Key()))
			continue
		}

		key := slot{doctorID: cell.DoctorID, dayKey: day.Key, shiftID: cell.Shift}
		if first, dup := seen[key]; dup {
			opened.Errors = append(opened.Errors, structuralError(
				"Cell %d: doctor %d already has a clinic for %s %s (cell %d).", i+1, cell.DoctorID, day.Name(), cell.Shift, first))
			continue
		}
		seen[key] = i + 1

		clinicID := cell.ClinicID
		if err := session.UpdateCell(cell.DoctorID, day.Key, cell.Shift, &clinicID); err != nil {
			if errors.Is(err, ErrUnknownShift) {
				opened.Errors = append(opened.Errors, structuralError("Cell %d: unknown shift %q.", i+1, cell.Shift))
				continue
			}
			opened.Errors = append(opened.Errors, structuralError("Cell %d: %v.", i+1, err))
		}
	}

	return opened
}

// FileFromSession converts a session back to roster file form
func FileFromSession(session *Session) *File {
	file := &File{
		WeekStart: session.Week().Key(),
		Note:      session.Note(),
	}
	for _, cell := range session.Cells() {
		file.Cells = append(file.Cells, FileCell{
			DoctorID: cell.DoctorID,
			Day:      cell.DayKey,
			Shift:    cell.ShiftID,
			ClinicID: cell.ClinicID,
		})
	}
	return file
}

// Marshal encodes the file as YAML
func (f *File) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode roster file: %w", err)
	}
	return data, nil
}
