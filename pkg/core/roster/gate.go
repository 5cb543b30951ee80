package roster

import (
	"context"
	"fmt"

	"github.com/jakechorley/clinic-roster/pkg/core/calendar"
	"github.com/jakechorley/clinic-roster/pkg/core/model"
)

// Persister is the external persistence collaborator that stores a confirmed week
type Persister interface {
	PersistWeek(ctx context.Context, submission model.WeekSubmission) ([]model.AssignmentRecord, error)
}

// Input is everything a validate or submit call needs. Directory data and the acting
// context are always passed in; nothing is read from globals.
type Input struct {
	Grid      *Grid
	Week      calendar.WeekWindow
	Catalog   model.ShiftCatalog
	Directory *model.Directory
	Rule      CoverageRule
	Note      string
}

// Result is the outcome of validating a roster
type Result struct {
	IsValid     bool
	Errors      []ValidationError
	Assignments model.DailyAssignments
}

// Response converts the result to the dry-run response shape
func (r *Result) Response() model.ValidateResponse {
	return model.ValidateResponse{
		IsValid: r.IsValid,
		Errors:  Messages(r.Errors),
	}
}

// SubmitResult is the outcome of a submit call.
// When OK is false Errors holds the full error list and nothing was written.
type SubmitResult struct {
	OK         bool
	Errors     []ValidationError
	Submission *model.WeekSubmission
	Records    []model.AssignmentRecord
}

// Validate expands the grid and checks coverage. It has no side effects and can be
// called any number of times; an unchanged input always yields the same ordered errors.
//
// A roster is valid only when there are no errors, which also requires at least one
// assignment (an empty roster yields a single empty-roster error). Cells naming a doctor
// missing from the snapshot are structural errors, one per cell, and stop the rest.
func Validate(in Input) (*Result, error) {
	if in.Grid == nil || in.Directory == nil || in.Rule == nil {
		return nil, fmt.Errorf("validate requires a grid, directory snapshot and coverage rule")
	}

	// A doctor removed from the directory since the cell was set is user-correctable
	if errs := unknownDoctorErrors(in.Grid, in.Week, in.Catalog, in.Directory); len(errs) > 0 {
		return &Result{IsValid: false, Errors: errs}, nil
	}

	assignments, err := Expand(in.Grid, in.Week, in.Catalog, in.Directory.Doctors)
	if err != nil {
		return nil, fmt.Errorf("failed to expand roster: %w", err)
	}

	errs, err := ValidateCoverage(in.Week, assignments, in.Catalog, in.Directory, in.Rule)
	if err != nil {
		return nil, fmt.Errorf("failed to validate coverage: %w", err)
	}

	return &Result{
		IsValid:     len(errs) == 0,
		Errors:      errs,
		Assignments: assignments,
	}, nil
}

// Submit re-runs Validate against the current input and, only when it is clean, hands the
// week to the persister. No earlier validation result is trusted.
func Submit(ctx context.Context, in Input, persister Persister) (*SubmitResult, error) {
	result, err := Validate(in)
	if err != nil {
		return nil, err
	}

	if !result.IsValid {
		return &SubmitResult{
			OK:     false,
			Errors: result.Errors,
		}, nil
	}

	submission := &model.WeekSubmission{
		WeekStart:        in.Week.Key(),
		DailyAssignments: result.Assignments,
		Note:             in.Note,
	}

	records, err := persister.PersistWeek(ctx, *submission)
	if err != nil {
		return nil, fmt.Errorf("failed to persist week %s: %w", submission.WeekStart, err)
	}

	return &SubmitResult{
		OK:         true,
		Submission: submission,
		Records:    records,
	}, nil
}
