package model

import "sort"

// Directory is an already-resolved snapshot of the doctor, department and clinic directories.
// The engine only ever reads from it.
type Directory struct {
	Doctors     []Doctor
	Departments []Department
	Clinics     []Clinic
}

// DoctorByID returns the doctor with the given id
func (d *Directory) DoctorByID(id int64) (Doctor, bool) {
	for _, doctor := range d.Doctors {
		if doctor.ID == id {
			return doctor, true
		}
	}
	return Doctor{}, false
}

// DepartmentByID returns the department with the given id
func (d *Directory) DepartmentByID(id int64) (Department, bool) {
	for _, department := range d.Departments {
		if department.ID == id {
			return department, true
		}
	}
	return Department{}, false
}

// ActiveClinics returns the active clinics sorted by ascending id
func (d *Directory) ActiveClinics() []Clinic {
	active := make([]Clinic, 0, len(d.Clinics))
	for _, clinic := range d.Clinics {
		if clinic.Active {
			active = append(active, clinic)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].ID < active[j].ID
	})
	return active
}

// ActiveClinicByID returns the clinic with the given id if it is active
func (d *Directory) ActiveClinicByID(id int64) (Clinic, bool) {
	for _, clinic := range d.Clinics {
		if clinic.ID == id && clinic.Active {
			return clinic, true
		}
	}
	return Clinic{}, false
}
