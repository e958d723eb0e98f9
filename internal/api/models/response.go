package models

import "time"

// GenerateResponse represents the response from a generation run
type GenerateResponse struct {
	ID      string          `json:"id,omitempty"`
	Status  string          `json:"status"`
	Summary GenerateSummary `json:"summary"`
	Rows    []ProfileRow    `json:"rows,omitempty"`
}

// GenerateSummary contains aggregated results for a run
type GenerateSummary struct {
	Profile             string           `json:"profile"`
	Method              string           `json:"method"` // strategy actually used
	BaseYear            int              `json:"base_year"`
	BaseYearSubstituted bool             `json:"base_year_substituted"`
	TotalHours          int              `json:"total_hours"`
	Window              TimeWindow       `json:"window"`
	Years               []YearSummary    `json:"years"`
	Months              []PeriodSummary  `json:"months,omitempty"`
	Seasons             []PeriodSummary  `json:"seasons,omitempty"`
	PeakDays            []PeakDay        `json:"peak_days,omitempty"`
	Validation          ValidationReport `json:"validation"`
}

// PeriodSummary is one fiscal-month or season rollup row
type PeriodSummary struct {
	Label      string  `json:"label"`
	Hours      int     `json:"hours"`
	PeakMW     float64 `json:"peak_mw"`
	MinMW      float64 `json:"min_mw"`
	AverageMW  float64 `json:"average_mw"`
	TotalMWh   float64 `json:"total_mwh"`
	LoadFactor float64 `json:"load_factor"`
}

// PeakDay is one ranked peak-demand day
type PeakDay struct {
	Date      string  `json:"date"`
	DayType   string  `json:"day_type"`
	PeakMW    float64 `json:"peak_mw"`
	AverageMW float64 `json:"average_mw"`
}

// TimeWindow represents a time range
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// YearSummary is one fiscal year's demand rollup
type YearSummary struct {
	FiscalYear int     `json:"fiscal_year"`
	Hours      int     `json:"hours"`
	PeakMW     float64 `json:"peak_mw"`
	MinMW      float64 `json:"min_mw"`
	AverageMW  float64 `json:"average_mw"`
	TotalMWh   float64 `json:"total_mwh"`
	LoadFactor float64 `json:"load_factor"`
}

// ValidationReport compares generated energy against annual targets
type ValidationReport struct {
	AllPass           bool        `json:"all_pass"`
	OverallLoadFactor float64     `json:"overall_load_factor"`
	Years             []YearCheck `json:"years"`
}

// YearCheck is one fiscal year's target comparison
type YearCheck struct {
	Year         int     `json:"year"`
	GeneratedMWh float64 `json:"generated_mwh"`
	TargetMWh    float64 `json:"target_mwh"`
	ErrorPct     float64 `json:"error_pct"`
	Pass         bool    `json:"pass"`
}

// ProfileRow is one generated hour
type ProfileRow struct {
	DateTime    time.Time `json:"datetime"`
	FiscalYear  int       `json:"fiscal_year"`
	FiscalMonth int       `json:"fiscal_month"`
	Season      string    `json:"season"`
	DayType     string    `json:"day_type"`
	DemandMW    float64   `json:"demand_mw"`
}

// ProgressEvent is one step of a streamed generation run
type ProgressEvent struct {
	Step       int     `json:"step"`
	TotalSteps int     `json:"total_steps"`
	Message    string  `json:"message"`
	Percentage float64 `json:"percentage"`
}

// MethodInfo describes a synthesis method
type MethodInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a method parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// DatasetInfo represents one registered historical dataset
type DatasetInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	Resolution  string `json:"resolution,omitempty"`
	Description string `json:"description,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
