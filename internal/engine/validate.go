package engine

import (
	"math"
	"sort"

	"demand-profile/internal/model"
	"demand-profile/internal/targets"
)

// validation tolerance: a year passes when its generated energy is within
// 1% of the target.
const tolerancePct = 1.0

// YearCheck compares one fiscal year's generated energy to its target.
type YearCheck struct {
	Year         int     `json:"year"`
	GeneratedMWh float64 `json:"generated_mwh"`
	TargetMWh    float64 `json:"target_mwh"`
	ErrorPct     float64 `json:"error_pct"`
	Pass         bool    `json:"pass"`
}

// DemandStats summarizes the generated demand distribution.
type DemandStats struct {
	MinMW  float64 `json:"min_mw"`
	MaxMW  float64 `json:"max_mw"`
	MeanMW float64 `json:"mean_mw"`
	P05MW  float64 `json:"p05_mw"`
	P95MW  float64 `json:"p95_mw"`
}

// Report is the validation result. It never mutates the profile; a failing
// report is a quality signal, not a halting condition.
type Report struct {
	Years             []YearCheck `json:"years"`
	OverallLoadFactor float64     `json:"overall_load_factor"`
	Stats             DemandStats `json:"stats"`
	AllPass           bool        `json:"all_pass"`
}

// Validate compares generated annual energy to targets. A year without an
// explicit target trivially passes: its target defaults to the generated
// total.
func Validate(rows []model.ProfileRow, annual targets.Annual) Report {
	generated := map[int]float64{}
	var years []int
	for _, row := range rows {
		if _, seen := generated[row.FiscalYear]; !seen {
			years = append(years, row.FiscalYear)
		}
		generated[row.FiscalYear] += row.DemandMW
	}
	sort.Ints(years)

	report := Report{AllPass: true}
	for _, year := range years {
		gen := generated[year]
		target, ok := annual[year]
		if !ok || target <= 0 {
			target = gen
		}
		check := YearCheck{Year: year, GeneratedMWh: gen, TargetMWh: target}
		if target > 0 {
			check.ErrorPct = math.Abs(gen-target) / target * 100
		}
		check.Pass = check.ErrorPct <= tolerancePct
		if !check.Pass {
			report.AllPass = false
		}
		report.Years = append(report.Years, check)
	}

	vals := make([]float64, len(rows))
	for i, row := range rows {
		vals[i] = row.DemandMW
	}
	if len(vals) > 0 {
		minv, maxv := model.MinMax(vals)
		mean := model.Mean(vals)
		report.Stats = DemandStats{
			MinMW:  minv,
			MaxMW:  maxv,
			MeanMW: mean,
			P05MW:  model.Percentile(vals, 0.05),
			P95MW:  model.Percentile(vals, 0.95),
		}
		if maxv > 0 {
			report.OverallLoadFactor = mean / maxv
		}
	}
	return report
}
