package db

import (
	"context"

	"github.com/jakechorley/clinic-roster/pkg/core/model"
)

// DirectoryStore reads the doctor, department and clinic directory.
// Doctors are active doctors only; clinics include inactive ones so references to a
// deactivated clinic can be reported.
type DirectoryStore interface {
	ListActiveDoctors(ctx context.Context) ([]model.Doctor, error)
	ListDepartments(ctx context.Context) ([]model.Department, error)
	ListClinics(ctx context.Context) ([]model.Clinic, error)
}

// AssignmentStore persists confirmed weeks
type AssignmentStore interface {
	PersistWeek(ctx context.Context, submission model.WeekSubmission) ([]model.AssignmentRecord, error)
	GetWeekAssignments(ctx context.Context, weekStart string) ([]model.AssignmentRecord, error)
	GetSubmissions(ctx context.Context) ([]Submission, error)
}

// Migrator applies pending schema migrations, returning the names of those applied
type Migrator interface {
	RunMigrations(ctx context.Context) ([]string, error)
}

// Database defines the interface for all database operations.
// Both postgres.DB and mariadb.DB implement this interface.
type Database interface {
	DirectoryStore
	AssignmentStore
	Migrator
	Close()
}
