package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/clinic-roster/internal/config"
	"github.com/jakechorley/clinic-roster/pkg/core/model"
	"github.com/jakechorley/clinic-roster/pkg/core/roster"
	"github.com/jakechorley/clinic-roster/pkg/core/services"
)

// editor drives one editing session from line based input
type editor struct {
	ctx       context.Context
	session   *roster.Session
	directory *model.Directory
	persister roster.Persister
	cfg       *config.Config
	logger    *zap.Logger
	out       io.Writer

	submitted *roster.SubmitResult
}

const (
	usageSet   = "set <doctor_id> <day> <shift> <clinic_id>"
	usageClear = "clear <doctor_id> <day> <shift>"
	usageDay   = "day <doctor_id> <day>"
	usageSave  = "save <file>"
)

type editorCommand struct {
	usage string
	short string
	run   func(e *editor, args []string) (done bool, err error)
}

var editorCommands = map[string]editorCommand{
	"set":      {usageSet, "Assign a doctor to a clinic for a shift", (*editor).set},
	"clear":    {usageClear, "Remove a doctor's shift", (*editor).clear},
	"day":      {usageDay, "Show a doctor's shifts on a day", (*editor).day},
	"show":     {"show", "Show every assignment in the grid", (*editor).show},
	"note":     {"note [text]", "Show or set the submission note", (*editor).note},
	"state":    {"state", "Show the session state", (*editor).state},
	"doctors":  {"doctors", "List doctors and clinics", (*editor).doctors},
	"validate": {"validate", "Check the roster without saving", (*editor).validate},
	"submit":   {"submit", "Validate and save the roster, ending the session", (*editor).submit},
	"save":     {usageSave, "Write the grid to a roster file", (*editor).save},
	"discard":  {"discard", "End the session without saving", (*editor).discard},
}

// run reads commands until the session ends. Input ending before submit discards the session.
func (e *editor) run(in io.Reader) error {
	fmt.Fprintf(e.out, "\nEditing the week of %s. Type 'help' for commands.\n\n", e.session.Week().Key())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(e.out, "> ")
		if !scanner.Scan() {
			break
		}

		parts, err := parseCommandLine(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintf(e.out, "❌ Error parsing command: %v\n\n", err)
			continue
		}
		if len(parts) == 0 {
			continue
		}

		name, args := parts[0], parts[1:]
		switch name {
		case "help":
			e.printHelp()
			continue
		case "exit", "quit":
			name = "discard"
		}

		command, ok := editorCommands[name]
		if !ok {
			fmt.Fprintf(e.out, "❌ Unknown command: %s (type 'help' for available commands)\n\n", name)
			continue
		}

		done, err := command.run(e, args)
		if err != nil {
			fmt.Fprintf(e.out, "❌ Error: %v\n\n", err)
			continue
		}
		if done {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	if e.submitted == nil {
		e.session.Discard()
		fmt.Fprintln(e.out, "\nSession discarded.")
	}
	return nil
}

func (e *editor) printHelp() {
	fmt.Fprintln(e.out, "\nAvailable commands:")
	for _, name := range []string{"set", "clear", "day", "show", "note", "state", "doctors", "validate", "submit", "save", "discard"} {
		command := editorCommands[name]
		fmt.Fprintf(e.out, "  %-44s %s\n", command.usage, command.short)
	}
	fmt.Fprintln(e.out, "\n  help                                         Show this help message")
	fmt.Fprintln(e.out, "  exit, quit                                   Discard the session and leave")
	fmt.Fprintln(e.out)
}

func (e *editor) set(args []string) (bool, error) {
	if len(args) != 4 {
		return false, fmt.Errorf("usage: %s", usageSet)
	}
	doctorID, err := e.doctorID(args[0])
	if err != nil {
		return false, err
	}
	clinicID, err := strconv.ParseInt(args[3], 10, 64)
	if err != nil || clinicID <= 0 {
		return false, fmt.Errorf("clinic id must be a positive number, got %q", args[3])
	}

	return false, e.session.UpdateCell(doctorID, args[1], args[2], &clinicID)
}

func (e *editor) clear(args []string) (bool, error) {
	if len(args) != 3 {
		return false, fmt.Errorf("usage: %s", usageClear)
	}
	doctorID, err := e.editableDoctorID(args[0])
	if err != nil {
		return false, err
	}

	return false, e.session.UpdateCell(doctorID, args[1], args[2], nil)
}

func (e *editor) day(args []string) (bool, error) {
	if len(args) != 2 {
		return false, fmt.Errorf("usage: %s", usageDay)
	}
	doctorID, err := e.editableDoctorID(args[0])
	if err != nil {
		return false, err
	}

	selections := e.session.ReadDay(doctorID, args[1])
	if len(selections) == 0 {
		fmt.Fprintf(e.out, "No shifts.\n\n")
		return false, nil
	}
	for _, shift := range e.session.Catalog() {
		if clinicID, ok := selections[shift.ID]; ok {
			fmt.Fprintf(e.out, "  %-10s %s\n", shift.ID, e.clinicName(clinicID))
		}
	}
	fmt.Fprintln(e.out)
	return false, nil
}

func (e *editor) show(args []string) (bool, error) {
	cells := e.session.Cells()
	if len(cells) == 0 {
		fmt.Fprintf(e.out, "The grid is empty.\n\n")
		return false, nil
	}

	lastDay := ""
	for _, cell := range cells {
		if cell.DayKey != lastDay {
			day, _ := e.session.Week().Day(cell.DayKey)
			fmt.Fprintf(e.out, "%s %s\n", day.Name(), cell.DayKey)
			lastDay = cell.DayKey
		}
		name := "not an active doctor"
		if doctor, ok := e.directory.DoctorByID(cell.DoctorID); ok {
			name = doctor.FullName
		}
		fmt.Fprintf(e.out, "  %-24s %-10s %s\n", fmt.Sprintf("%s (%d)", name, cell.DoctorID), cell.ShiftID, e.clinicName(cell.ClinicID))
	}
	fmt.Fprintln(e.out)
	return false, nil
}

func (e *editor) note(args []string) (bool, error) {
	if len(args) > 0 {
		e.session.SetNote(strings.Join(args, " "))
	}
	fmt.Fprintf(e.out, "Note: %q\n\n", e.session.Note())
	return false, nil
}

func (e *editor) state(args []string) (bool, error) {
	fmt.Fprintf(e.out, "State: %s (%d cells)\n\n", e.session.State(), len(e.session.Cells()))
	return false, nil
}

func (e *editor) doctors(args []string) (bool, error) {
	for _, doctor := range e.directory.Doctors {
		department := "?"
		if d, ok := e.directory.DepartmentByID(doctor.DepartmentID); ok {
			department = d.Name
		}
		fmt.Fprintf(e.out, "  %4d  %-24s %s\n", doctor.ID, doctor.FullName, department)
	}
	fmt.Fprintln(e.out, "\nActive clinics:")
	for _, clinic := range e.directory.ActiveClinics() {
		fmt.Fprintf(e.out, "  %4d  %s\n", clinic.ID, clinic.Name)
	}
	fmt.Fprintln(e.out)
	return false, nil
}

func (e *editor) validate(args []string) (bool, error) {
	rule, err := roster.RuleForPolicy(e.cfg.CoveragePolicy)
	if err != nil {
		return false, err
	}
	result, err := e.session.Validate(e.directory, rule)
	if err != nil {
		return false, err
	}
	printResponse(e.out, result.Response())
	return false, nil
}

func (e *editor) submit(args []string) (bool, error) {
	result, err := services.SubmitSession(e.ctx, e.session, e.directory, e.persister, e.cfg, e.logger)
	if err != nil {
		return false, err
	}
	printSubmitResult(e.out, result)
	if !result.OK {
		return false, nil
	}
	e.submitted = result
	return true, nil
}

func (e *editor) save(args []string) (bool, error) {
	if len(args) != 1 {
		return false, fmt.Errorf("usage: %s", usageSave)
	}
	data, err := roster.FileFromSession(e.session).Marshal()
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(args[0], data, 0644); err != nil {
		return false, fmt.Errorf("failed to write roster file: %w", err)
	}
	fmt.Fprintf(e.out, "✓ Saved to %s\n\n", args[0])
	return false, nil
}

func (e *editor) discard(args []string) (bool, error) {
	e.session.Discard()
	fmt.Fprintln(e.out, "Session discarded.")
	return true, nil
}

// doctorID parses a doctor id and checks it against the directory
func (e *editor) doctorID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("doctor id must be a number, got %q", value)
	}
	if _, ok := e.directory.DoctorByID(id); !ok {
		return 0, fmt.Errorf("doctor %d is not an active doctor", id)
	}
	return id, nil
}

// editableDoctorID also accepts a doctor who is no longer in the directory but still has
// cells in the session, so those cells can be inspected and cleared
func (e *editor) editableDoctorID(value string) (int64, error) {
	id, err := e.doctorID(value)
	if err == nil {
		return id, nil
	}
	parsed, parseErr := strconv.ParseInt(value, 10, 64)
	if parseErr != nil {
		return 0, err
	}
	for _, cell := range e.session.Cells() {
		if cell.DoctorID == parsed {
			return parsed, nil
		}
	}
	return 0, err
}

func (e *editor) clinicName(id int64) string {
	for _, clinic := range e.directory.Clinics {
		if clinic.ID == id {
			return fmt.Sprintf("%s (%d)", clinic.Name, id)
		}
	}
	return fmt.Sprintf("clinic %d", id)
}
