package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Supported synthesis methods.
const (
	MethodNormalizedPattern = "normalized_pattern"
	MethodDecomposition     = "decomposition"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Profile ProfileConfig `yaml:"profile"`

	// Optional: load monthly max constraints from a separate YAML.
	// Inline constraints override entries from the file for the same
	// (year, month) cell.
	ConstraintFile string             `yaml:"constraint_file"`
	Constraints    []MonthlyMaxConfig `yaml:"constraints"`
}

// ProfileConfig describes one generation run.
type ProfileConfig struct {
	Name      string `yaml:"name"`
	StartYear int    `yaml:"start_year"`
	EndYear   int    `yaml:"end_year"`

	// Method selects the synthesis strategy: normalized_pattern or
	// decomposition.
	Method string `yaml:"method"`

	// BaseYear 0 selects the most recent complete fiscal year.
	BaseYear int `yaml:"base_year"`

	// DataSource names a registered historical dataset or a CSV path.
	DataSource string `yaml:"data_source"`

	// ForecastURL points at an external forecast service; when set and no
	// targets file is given, annual targets are fetched from it.
	ForecastURL string `yaml:"forecast_url"`

	// MonthlyConstraintMode: "off" ignores all max constraints,
	// "apply" (default) uses them.
	MonthlyConstraintMode string `yaml:"monthly_constraint_mode"`

	// GrowthRateDefault replaces the 3% fallback annual growth rate.
	GrowthRateDefault float64 `yaml:"growth_rate_default"`

	// NoiseSeed fixes the decomposition residual noise stream.
	NoiseSeed int64 `yaml:"noise_seed"`

	// HolidayDates is an optional explicit holiday calendar
	// ("2006-01-02" strings). When empty, holidays are detected
	// statistically from history.
	HolidayDates []string `yaml:"holiday_dates"`
}

// MonthlyMaxConfig pins the max demand for one (year, fiscal month) cell.
// Month uses the fiscal-month abbreviation table Apr..Mar.
type MonthlyMaxConfig struct {
	Year  int     `yaml:"year"`
	Month string  `yaml:"month"`
	MaxMW float64 `yaml:"max_mw"`
}

// Load reads, merges, defaults and validates a config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.ConstraintFile != "" {
		constraintPath := c.ConstraintFile
		if !filepath.IsAbs(constraintPath) {
			// Prefer paths relative to the config file directory, falling
			// back to the path as given (relative to cwd).
			cand := filepath.Join(filepath.Dir(path), constraintPath)
			if _, err := os.Stat(cand); err == nil {
				constraintPath = cand
			}
		}
		loaded, err := loadConstraintFile(constraintPath)
		if err != nil {
			return nil, err
		}
		c.Constraints = MergeConstraints(loaded, c.Constraints)
	}
	return &c, nil
}

// ApplyDefaults fills optional fields.
func (c *Config) ApplyDefaults() {
	if c.Profile.Method == "" {
		c.Profile.Method = MethodNormalizedPattern
	}
	if c.Profile.MonthlyConstraintMode == "" {
		c.Profile.MonthlyConstraintMode = "apply"
	}
	if c.Profile.GrowthRateDefault == 0 {
		c.Profile.GrowthRateDefault = 0.03
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	p := c.Profile
	if p.StartYear <= 0 || p.EndYear <= 0 {
		return errors.New("profile.start_year and profile.end_year are required")
	}
	if p.StartYear > p.EndYear {
		return fmt.Errorf("profile.start_year %d is after profile.end_year %d", p.StartYear, p.EndYear)
	}
	if p.Method != MethodNormalizedPattern && p.Method != MethodDecomposition {
		return fmt.Errorf("unsupported method: %q", p.Method)
	}
	switch p.MonthlyConstraintMode {
	case "apply", "off":
	default:
		return fmt.Errorf("unsupported monthly_constraint_mode: %q", p.MonthlyConstraintMode)
	}
	if p.GrowthRateDefault < -1 || p.GrowthRateDefault > 1 {
		return fmt.Errorf("growth_rate_default %.3f outside [-1, 1]", p.GrowthRateDefault)
	}
	return nil
}

type constraintFileWrapper struct {
	Constraints []MonthlyMaxConfig `yaml:"constraints"`
}

func loadConstraintFile(path string) ([]MonthlyMaxConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w constraintFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return w.Constraints, nil
}

// MergeConstraints overlays override cells onto base, keyed by
// (year, month). Base entries without an override survive unchanged.
func MergeConstraints(base, override []MonthlyMaxConfig) []MonthlyMaxConfig {
	type cell struct {
		year  int
		month string
	}
	out := make([]MonthlyMaxConfig, 0, len(base)+len(override))
	overridden := map[cell]bool{}
	for _, ov := range override {
		overridden[cell{ov.Year, ov.Month}] = true
		out = append(out, ov)
	}
	for _, b := range base {
		if !overridden[cell{b.Year, b.Month}] {
			out = append(out, b)
		}
	}
	return out
}
