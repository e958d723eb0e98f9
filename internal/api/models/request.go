package models

// GenerateRequest represents the request body for a profile generation run
type GenerateRequest struct {
	Profile     ProfileSpec      `json:"profile" binding:"required"`
	DataSource  DataSourceConfig `json:"data_source" binding:"required"`
	Targets     []AnnualTarget   `json:"targets,omitempty"`
	Constraints []ConstraintSpec `json:"constraints,omitempty"`
	Options     GenerateOptions  `json:"options,omitempty"`
}

// ProfileSpec mirrors the YAML profile section for API callers
type ProfileSpec struct {
	Name              string   `json:"name,omitempty"`
	StartYear         int      `json:"start_year" binding:"required"`
	EndYear           int      `json:"end_year" binding:"required"`
	Method            string   `json:"method,omitempty"`    // "normalized_pattern" or "decomposition"
	BaseYear          int      `json:"base_year,omitempty"` // 0 = latest complete fiscal year
	GrowthRateDefault float64  `json:"growth_rate_default,omitempty"`
	NoiseSeed         int64    `json:"noise_seed,omitempty"`
	HolidayDates      []string `json:"holiday_dates,omitempty"` // YYYY-MM-DD
}

// DataSourceConfig defines where historical demand comes from
type DataSourceConfig struct {
	Type string `json:"type" binding:"required"` // "csv" or "registry"
	ID   string `json:"id,omitempty"`            // registry dataset ID
	Path string `json:"path,omitempty"`          // CSV path when type is "csv"
}

// AnnualTarget is one fiscal year's energy target
type AnnualTarget struct {
	Year      int     `json:"year" binding:"required"`
	EnergyMWh float64 `json:"energy_mwh" binding:"required"`
}

// ConstraintSpec pins the monthly max for one (year, fiscal month) cell
type ConstraintSpec struct {
	Year  int     `json:"year" binding:"required"`
	Month string  `json:"month" binding:"required"` // "Apr".."Mar"
	MaxMW float64 `json:"max_mw" binding:"required"`
}

// GenerateOptions contains optional generation parameters
type GenerateOptions struct {
	IncludeRows bool `json:"include_rows,omitempty"` // default: false
	RowLimit    int  `json:"row_limit,omitempty"`    // 0 = all
}
