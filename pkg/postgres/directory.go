package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/clinic-roster/pkg/core/model"
)

// ListActiveDoctors retrieves every active doctor ordered by id
func (d *DB) ListActiveDoctors(ctx context.Context) ([]model.Doctor, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, full_name, department_id, default_room_id, email
		FROM doctor
		WHERE active
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query doctors: %w", err)
	}
	defer rows.Close()

	var doctors []model.Doctor
	for rows.Next() {
		var doctor model.Doctor
		var roomID *int64
		var email *string
		if err := rows.Scan(&doctor.ID, &doctor.FullName, &doctor.DepartmentID, &roomID, &email); err != nil {
			return nil, fmt.Errorf("failed to scan doctor: %w", err)
		}
		if roomID != nil {
			doctor.DefaultRoomID = *roomID
		}
		if email != nil {
			doctor.Email = *email
		}
		doctors = append(doctors, doctor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating doctors: %w", err)
	}

	return doctors, nil
}

// ListDepartments retrieves all departments ordered by id
func (d *DB) ListDepartments(ctx context.Context) ([]model.Department, error) {
	rows, err := d.pool.Query(ctx, `SELECT id, name FROM department ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	var departments []model.Department
	for rows.Next() {
		var department model.Department
		if err := rows.Scan(&department.ID, &department.Name); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, department)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating departments: %w", err)
	}

	return departments, nil
}

// ListClinics retrieves all clinics, active or not, ordered by id
func (d *DB) ListClinics(ctx context.Context) ([]model.Clinic, error) {
	rows, err := d.pool.Query(ctx, `SELECT id, name, active FROM clinic ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query clinics: %w", err)
	}
	defer rows.Close()

	var clinics []model.Clinic
	for rows.Next() {
		var clinic model.Clinic
		if err := rows.Scan(&clinic.ID, &clinic.Name, &clinic.Active); err != nil {
			return nil, fmt.Errorf("failed to scan clinic: %w", err)
		}
		clinics = append(clinics, clinic)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clinics: %w", err)
	}

	return clinics, nil
}
