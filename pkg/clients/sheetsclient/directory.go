package sheetsclient

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jakechorley/clinic-roster/pkg/core/model"
)

// ValuesReader reads a range of cells. Client satisfies it.
type ValuesReader interface {
	GetValues(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error)
}

// DirectoryTabs names the tabs holding each directory
type DirectoryTabs struct {
	Doctors     string
	Departments string
	Clinics     string
}

// Directory reads the doctor, department and clinic directories from one spreadsheet
type Directory struct {
	reader  ValuesReader
	sheetID string
	tabs    DirectoryTabs
}

// NewDirectory creates a directory source over spreadsheetID
func NewDirectory(reader ValuesReader, spreadsheetID string, tabs DirectoryTabs) *Directory {
	return &Directory{
		reader:  reader,
		sheetID: spreadsheetID,
		tabs:    tabs,
	}
}

// Expected column names per tab
var (
	doctorFields     = []string{"ID", "Full name", "Department ID", "Default room ID", "Email", "Active"}
	departmentFields = []string{"ID", "Name"}
	clinicFields     = []string{"ID", "Name", "Active"}
)

// ListActiveDoctors retrieves the active doctors from the doctors tab
func (d *Directory) ListActiveDoctors(ctx context.Context) ([]model.Doctor, error) {
	values, err := d.reader.GetValues(ctx, d.sheetID, d.tabs.Doctors)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor data: %w", err)
	}

	doctors, err := parseDoctors(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse doctors: %w", err)
	}
	return doctors, nil
}

// ListDepartments retrieves the departments tab
func (d *Directory) ListDepartments(ctx context.Context) ([]model.Department, error) {
	values, err := d.reader.GetValues(ctx, d.sheetID, d.tabs.Departments)
	if err != nil {
		return nil, fmt.Errorf("failed to get department data: %w", err)
	}

	departments, err := parseDepartments(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse departments: %w", err)
	}
	return departments, nil
}

// ListClinics retrieves every clinic, active or not, from the clinics tab
func (d *Directory) ListClinics(ctx context.Context) ([]model.Clinic, error) {
	values, err := d.reader.GetValues(ctx, d.sheetID, d.tabs.Clinics)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic data: %w", err)
	}

	clinics, err := parseClinics(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse clinics: %w", err)
	}
	return clinics, nil
}

// table gives named access to the data rows of a tab whose first row is the header
type table struct {
	index map[string]int
	rows  [][]interface{}
}

func newTable(raw [][]interface{}, fields []string) (*table, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	index := make(map[string]int, len(fields))
	for _, field := range fields {
		col := findColumnIndex(raw[0], field)
		if col == -1 {
			return nil, fmt.Errorf("missing required field in header: %s", field)
		}
		index[field] = col
	}

	return &table{index: index, rows: raw[1:]}, nil
}

// get returns the trimmed text of a field, "" when the row is short
func (t *table) get(row []interface{}, field string) string {
	col := t.index[field]
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(cellString(row[col]))
}

// id parses a required positive id. Sheet rows are 1-based and row 1 is the header.
func (t *table) id(row []interface{}, field string, i int) (int64, error) {
	value := t.get(row, field)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("row %d: invalid %s %q", i+2, field, value)
	}
	return id, nil
}

// optionalID parses an id that may be blank
func (t *table) optionalID(row []interface{}, field string, i int) (int64, error) {
	if t.get(row, field) == "" {
		return 0, nil
	}
	return t.id(row, field, i)
}

// active parses an Active column. Blank means active.
func (t *table) active(row []interface{}, i int) (bool, error) {
	value := strings.ToLower(t.get(row, "Active"))
	switch value {
	case "", "true", "yes", "y", "1":
		return true, nil
	case "false", "no", "n", "0":
		return false, nil
	default:
		return false, fmt.Errorf("row %d: invalid Active %q", i+2, value)
	}
}

// blank reports whether every cell of the row is empty
func blank(row []interface{}) bool {
	for _, cell := range row {
		if strings.TrimSpace(cellString(cell)) != "" {
			return false
		}
	}
	return true
}

func parseDoctors(raw [][]interface{}) ([]model.Doctor, error) {
	t, err := newTable(raw, doctorFields)
	if err != nil {
		return nil, err
	}

	doctors := make([]model.Doctor, 0, len(t.rows))
	seen := make(map[int64]bool)
	for i, row := range t.rows {
		if blank(row) {
			continue
		}

		active, err := t.active(row, i)
		if err != nil {
			return nil, err
		}
		if !active {
			continue
		}

		id, err := t.id(row, "ID", i)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			return nil, fmt.Errorf("row %d: duplicate doctor id %d", i+2, id)
		}
		seen[id] = true

		departmentID, err := t.id(row, "Department ID", i)
		if err != nil {
			return nil, err
		}
		roomID, err := t.optionalID(row, "Default room ID", i)
		if err != nil {
			return nil, err
		}

		fullName := t.get(row, "Full name")
		if fullName == "" {
			return nil, fmt.Errorf("row %d: doctor %d has no name", i+2, id)
		}

		doctors = append(doctors, model.Doctor{
			ID:            id,
			FullName:      fullName,
			DepartmentID:  departmentID,
			DefaultRoomID: roomID,
			Email:         t.get(row, "Email"),
		})
	}

	return doctors, nil
}

func parseDepartments(raw [][]interface{}) ([]model.Department, error) {
	t, err := newTable(raw, departmentFields)
	if err != nil {
		return nil, err
	}

	departments := make([]model.Department, 0, len(t.rows))
	for i, row := range t.rows {
		if blank(row) {
			continue
		}

		id, err := t.id(row, "ID", i)
		if err != nil {
			return nil, err
		}

		departments = append(departments, model.Department{
			ID:   id,
			Name: t.get(row, "Name"),
		})
	}

	return departments, nil
}

func parseClinics(raw [][]interface{}) ([]model.Clinic, error) {
	t, err := newTable(raw, clinicFields)
	if err != nil {
		return nil, err
	}

	clinics := make([]model.Clinic, 0, len(t.rows))
	for i, row := range t.rows {
		if blank(row) {
			continue
		}

		id, err := t.id(row, "ID", i)
		if err != nil {
			return nil, err
		}
		active, err := t.active(row, i)
		if err != nil {
			return nil, err
		}

		clinics = append(clinics, model.Clinic{
			ID:     id,
			Name:   t.get(row, "Name"),
			Active: active,
		})
	}

	return clinics, nil
}

// findColumnIndex finds the index of a column by its header name
func findColumnIndex(header []interface{}, columnName string) int {
	for i, cell := range header {
		if str, ok := cell.(string); ok && strings.TrimSpace(str) == columnName {
			return i
		}
	}
	return -1
}

// cellString renders a cell value. Unformatted reads return numbers as float64.
func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
