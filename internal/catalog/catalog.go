package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/spec-kit/patient-booking/internal/config"
)

// Catalog holds the department and doctor roster the intake form validates
// against. It is static configuration injected at startup; a real catalog
// service can replace the loader without touching validation.
type Catalog struct {
	departments []string
	doctors     map[string][]string
}

type catalogFile struct {
	Departments []departmentEntry `json:"departments"`
}

type departmentEntry struct {
	Name    string   `json:"name"`
	Doctors []string `json:"doctors"`
}

// Load builds the catalog from the configured file, falling back to the
// built-in roster when no file is set.
func Load(cfg config.CatalogConfig, logger *zap.Logger) (*Catalog, error) {
	if cfg.File == "" {
		return Default(), nil
	}
	c, err := LoadFile(cfg.File)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded", zap.String("file", cfg.File), zap.Int("departments", len(c.departments)))
	return c, nil
}

// LoadFile reads a roster definition from a JSON file.
func LoadFile(path string) (*Catalog, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var parsed catalogFile
	if err := json.Unmarshal(content, &parsed); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(parsed.Departments) == 0 {
		return nil, fmt.Errorf("catalog %s defines no departments", path)
	}

	c := &Catalog{doctors: make(map[string][]string, len(parsed.Departments))}
	for _, dept := range parsed.Departments {
		if dept.Name == "" {
			return nil, fmt.Errorf("catalog %s contains a department without a name", path)
		}
		c.departments = append(c.departments, dept.Name)
		c.doctors[dept.Name] = append([]string{}, dept.Doctors...)
	}
	return c, nil
}

// Default returns the built-in roster.
func Default() *Catalog {
	doctors := map[string][]string{
		"General Medicine": {"Dr. Sarah Johnson", "Dr. Michael Chen", "Dr. Emily Davis"},
		"Cardiology":       {"Dr. Robert Wilson", "Dr. Lisa Thompson", "Dr. David Martinez"},
		"Pediatrics":       {"Dr. Jennifer Lee", "Dr. Mark Anderson", "Dr. Rachel Green"},
		"Dermatology":      {"Dr. Kevin Brown", "Dr. Amanda White", "Dr. Steven Taylor"},
		"Orthopedics":      {"Dr. Thomas Miller", "Dr. Jessica Garcia", "Dr. Christopher Moore"},
		"Neurology":        {"Dr. Patricia Jackson", "Dr. James Rodriguez", "Dr. Michelle Lewis"},
		"Psychiatry":       {"Dr. Daniel Harris", "Dr. Laura Clark", "Dr. Anthony Walker"},
		"Gynecology":       {"Dr. Nancy Hall", "Dr. Karen Allen", "Dr. Elizabeth Young"},
	}
	departments := []string{
		"General Medicine",
		"Cardiology",
		"Pediatrics",
		"Dermatology",
		"Orthopedics",
		"Neurology",
		"Psychiatry",
		"Gynecology",
	}
	return &Catalog{departments: departments, doctors: doctors}
}

// Departments lists department names in display order.
func (c *Catalog) Departments() []string {
	return append([]string{}, c.departments...)
}

// Doctors returns the roster for a department and whether it exists.
func (c *Catalog) Doctors(department string) ([]string, bool) {
	roster, ok := c.doctors[department]
	if !ok {
		return nil, false
	}
	return append([]string{}, roster...), true
}

// HasDepartment reports whether the department exists.
func (c *Catalog) HasDepartment(department string) bool {
	_, ok := c.doctors[department]
	return ok
}

// HasDoctor reports whether the doctor belongs to the department's roster.
func (c *Catalog) HasDoctor(department, doctor string) bool {
	roster, ok := c.doctors[department]
	if !ok {
		return false
	}
	for _, name := range roster {
		if name == doctor {
			return true
		}
	}
	return false
}
