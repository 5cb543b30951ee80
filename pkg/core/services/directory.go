package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/clinic-roster/pkg/core/model"
	"github.com/jakechorley/clinic-roster/pkg/db"
)

// LoadDirectory reads a directory snapshot from the store
func LoadDirectory(ctx context.Context, store db.DirectoryStore, logger *zap.Logger) (*model.Directory, error) {
	logger.Debug("Loading directory")

	doctors, err := store.ListActiveDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctors: %w", err)
	}

	departments, err := store.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch departments: %w", err)
	}

	clinics, err := store.ListClinics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clinics: %w", err)
	}

	directory := &model.Directory{
		Doctors:     doctors,
		Departments: departments,
		Clinics:     clinics,
	}

	for _, doctor := range doctors {
		if _, ok := directory.DepartmentByID(doctor.DepartmentID); !ok {
			logger.Warn("Doctor references an unknown department",
				zap.Int64("doctor_id", doctor.ID),
				zap.Int64("department_id", doctor.DepartmentID))
		}
	}

	logger.Debug("Directory loaded",
		zap.Int("doctors", len(doctors)),
		zap.Int("departments", len(departments)),
		zap.Int("clinics", len(clinics)),
		zap.Int("active_clinics", len(directory.ActiveClinics())))

	return directory, nil
}
