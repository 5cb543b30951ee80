package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/clinic-roster/pkg/core/calendar"
	"github.com/jakechorley/clinic-roster/pkg/core/model"
)

// DatabaseURLEnv overrides Config.DatabaseURL when set
const DatabaseURLEnv = "DATABASE_URL"

// Store and directory source names
const (
	SourcePostgres = "postgres"
	SourceMariaDB  = "mariadb"
	SourceSheets   = "sheets"
)

// ShiftConfig overrides one entry of the shift catalog
type ShiftConfig struct {
	ID    string `yaml:"id" validate:"required"`
	Name  string `yaml:"name" validate:"required"`
	Start string `yaml:"start" validate:"required,datetime=15:04"`
	End   string `yaml:"end" validate:"required,datetime=15:04"`
}

// WeekNote is a default submission note for weeks containing an occurrence of RRule
type WeekNote struct {
	RRule string `yaml:"rrule" validate:"required"`
	Note  string `yaml:"note" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	Timezone        string `yaml:"timezone,omitempty" validate:"omitempty,timezone"`
	CoveragePolicy  string `yaml:"coveragePolicy,omitempty" validate:"omitempty,oneof=pairwise allClinics"`
	Store           string `yaml:"store" validate:"required,oneof=postgres mariadb"`
	DirectorySource string `yaml:"directorySource,omitempty" validate:"omitempty,oneof=postgres mariadb sheets"`
	DatabaseURL     string `yaml:"databaseURL,omitempty" validate:"required"`

	DirectorySheetID string `yaml:"directorySheetID,omitempty" validate:"required_if=DirectorySource sheets"`
	DoctorsTab       string `yaml:"doctorsTab,omitempty" validate:"required_if=DirectorySource sheets"`
	DepartmentsTab   string `yaml:"departmentsTab,omitempty" validate:"required_if=DirectorySource sheets"`
	ClinicsTab       string `yaml:"clinicsTab,omitempty" validate:"required_if=DirectorySource sheets"`
	PublishSheetID   string `yaml:"publishSheetID,omitempty"`

	GmailUserID string `yaml:"gmailUserID,omitempty"`
	GmailSender string `yaml:"gmailSender,omitempty" validate:"omitempty,email"`

	Shifts    []ShiftConfig `yaml:"shifts,omitempty" validate:"dive"`
	WeekNotes []WeekNote    `yaml:"weekNotes,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads .env (if present) and then roster_config.<env>.yaml, falling back to
// roster_config.yaml. Files are looked up in the current directory, then the home directory.
func LoadWithEnv(env string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// DATABASE_URL from the environment wins over the file's databaseURL.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if url := os.Getenv(DatabaseURLEnv); url != "" {
		cfg.DatabaseURL = url
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the shift catalog and week note rrules
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := cfg.ShiftCatalog(); err != nil {
		return err
	}

	for i, weekNote := range cfg.WeekNotes {
		if _, err := rrule.StrToRRule(weekNote.RRule); err != nil {
			return fmt.Errorf("invalid rrule in weekNotes[%d]: %w", i, err)
		}
	}

	return nil
}

// Location returns the configured timezone, UTC when unset
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ResolvedDirectorySource returns where the directory is read from. Defaults to the store.
func (c *Config) ResolvedDirectorySource() string {
	if c.DirectorySource == "" {
		return c.Store
	}
	return c.DirectorySource
}

// ShiftCatalog returns the configured shift catalog, or the default Morning/Afternoon
// catalog when none is configured. Shift ids must be unique and every shift must end after
// it starts.
func (c *Config) ShiftCatalog() (model.ShiftCatalog, error) {
	if len(c.Shifts) == 0 {
		return model.DefaultShiftCatalog(), nil
	}

	catalog := make(model.ShiftCatalog, 0, len(c.Shifts))
	seen := make(map[string]bool)
	for i, shift := range c.Shifts {
		if seen[shift.ID] {
			return nil, fmt.Errorf("duplicate shift id %q in shifts[%d]", shift.ID, i)
		}
		seen[shift.ID] = true

		// HH:MM strings compare in time order
		if shift.End <= shift.Start {
			return nil, fmt.Errorf("shifts[%d] %q ends at %s, before it starts at %s", i, shift.ID, shift.End, shift.Start)
		}

		catalog = append(catalog, model.ShiftDefinition{
			ID:        shift.ID,
			Name:      shift.Name,
			StartTime: shift.Start,
			EndTime:   shift.End,
		})
	}
	return catalog, nil
}

// NoteForWeek joins the notes of every weekNotes rule with an occurrence on a working day of
// the week. Rules are anchored at the week's Monday.
func (c *Config) NoteForWeek(week calendar.WeekWindow) (string, error) {
	days := week.WorkingDays()
	start := days[0].Date
	end := days[len(days)-1].Date

	var notes []string
	for i, weekNote := range c.WeekNotes {
		rule, err := rrule.StrToRRule(weekNote.RRule)
		if err != nil {
			return "", fmt.Errorf("failed to parse rrule for weekNotes[%d]: %w", i, err)
		}

		rule.DTStart(start)
		if len(rule.Between(start, end, true)) > 0 {
			notes = append(notes, weekNote.Note)
		}
	}

	return strings.Join(notes, "; "), nil
}

// findConfigFile returns roster_config.<env>.yaml if it exists, else roster_config.yaml
func findConfigFile(env string) (string, error) {
	if env != "" {
		if path, err := findFile("roster_config." + env + ".yaml"); err == nil {
			return path, nil
		}
	}
	return findFile("roster_config.yaml")
}
