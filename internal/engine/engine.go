// Package engine orchestrates the load profile synthesis pipeline:
// pattern extraction, base-year curve, monthly targets, synthesis, target
// scaling and validation. Each stage runs to completion before the next;
// all intermediate artifacts are immutable once produced.
package engine

import (
	"log"

	"demand-profile/internal/baseyear"
	"demand-profile/internal/calendar"
	"demand-profile/internal/config"
	"demand-profile/internal/model"
	"demand-profile/internal/pattern"
	"demand-profile/internal/synth"
	"demand-profile/internal/targets"
)

const totalSteps = 6

// Result is the output of one generation run.
type Result struct {
	ProfileName string
	// Method is the strategy actually used; it differs from the
	// configured one when decomposition falls back to normalized_pattern.
	Method string

	BaseYear            int
	BaseYearSubstituted bool

	Rows       []model.ProfileRow
	Validation Report
}

type Engine struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Engine { return &Engine{cfg: cfg} }

// Run executes the full pipeline. events may be nil; emission never
// blocks. Any failure surfaces as a *RunError.
//
// Both strategies finish with a uniform per-year rescale toward the annual
// targets: envelope mapping alone bounds levels, not energy, so the trim is
// what keeps every targeted year's total within the validation tolerance.
func (e *Engine) Run(records []model.HourlyRecord, annual targets.Annual, events chan<- Event) (*Result, error) {
	if e.cfg == nil {
		return nil, configErr("config is nil")
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, wrapErr(CodeInvalidConfig, err)
	}
	p := e.cfg.Profile
	if len(records) == 0 {
		return nil, &RunError{Code: CodeNoHistory, Message: "no historical data"}
	}

	rep := newReporter(events, totalSteps)
	annual = annual.FilterYears(p.StartYear, p.EndYear)
	if len(annual) == 0 {
		log.Printf("engine: no demand targets in %d..%d, proceeding with growth-rate scaling only", p.StartYear, p.EndYear)
	}

	holidays := e.holidayCalendar(records)
	records = calendar.ApplyHolidays(records, holidays)

	rep.emit("extracting demand patterns")
	bundle, err := pattern.Extract(records, pattern.Options{
		WithDecomposition: p.Method == config.MethodDecomposition,
	})
	if err != nil {
		return nil, wrapErr(CodeNoHistory, err)
	}

	rep.emit("building base-year curve")
	curve, err := baseyear.Build(records, p.BaseYear)
	if err != nil {
		return nil, wrapErr(CodeInvalidConfig, err)
	}

	rep.emit("computing monthly targets")
	calc := targets.Calculator{
		BaseYear:     curve.FiscalYear,
		BaseTotalMWh: curve.TotalMWh(),
		Rate:         targets.HistoricalGrowthRate(records, p.GrowthRateDefault),
		Targets:      annual,
	}
	envs, err := targets.MonthlyEnvelopes(curve, calc, p.StartYear, p.EndYear, e.maxOverrides())
	if err != nil {
		return nil, wrapErr(CodeInvalidConfig, err)
	}

	rep.emit("synthesizing hourly profile")
	rows, err := synth.BuildRows(p.StartYear, p.EndYear, holidays)
	if err != nil {
		return nil, wrapErr(CodeInvalidConfig, err)
	}
	strat := e.pickStrategy(bundle)
	values, err := strat.Synthesize(synth.Context{
		Rows:         rows,
		Curve:        curve,
		Bundle:       bundle,
		GrowthFactor: calc.Factor,
	})
	if err != nil {
		return nil, wrapErr(CodeSynthesisError, err)
	}

	rep.emit("scaling to demand targets")
	if strat.Name() == config.MethodNormalizedPattern {
		values, err = synth.ScaleToEnvelopes(rows, values, envs)
		if err != nil {
			return nil, wrapErr(CodeSynthesisError, err)
		}
	}
	// Uniform per-year trim so every explicitly targeted year conserves
	// its annual energy, regardless of strategy.
	values, err = synth.ScaleToAnnual(rows, values, annual)
	if err != nil {
		return nil, wrapErr(CodeSynthesisError, err)
	}
	for i := range rows {
		rows[i].DemandMW = values[i]
	}

	rep.emit("validating generated profile")
	report := Validate(rows, annual)

	return &Result{
		ProfileName:         p.Name,
		Method:              strat.Name(),
		BaseYear:            curve.FiscalYear,
		BaseYearSubstituted: curve.Substituted(),
		Rows:                rows,
		Validation:          report,
	}, nil
}

// pickStrategy honors the configured method, silently falling back to the
// normalized-pattern strategy when no decomposition could be computed.
func (e *Engine) pickStrategy(bundle *pattern.Bundle) synth.Strategy {
	if e.cfg.Profile.Method == config.MethodDecomposition {
		if bundle.Decomposition != nil {
			return &synth.DecompositionStrategy{Seed: e.cfg.Profile.NoiseSeed}
		}
		log.Printf("engine: decomposition unavailable, falling back to %s", config.MethodNormalizedPattern)
	}
	return &synth.NormalizedPattern{}
}

// holidayCalendar prefers the explicit configured calendar; otherwise
// holidays are detected statistically from history.
func (e *Engine) holidayCalendar(records []model.HourlyRecord) map[string]bool {
	if dates := e.cfg.Profile.HolidayDates; len(dates) > 0 {
		out := make(map[string]bool, len(dates))
		for _, d := range dates {
			out[d] = true
		}
		return out
	}
	return calendar.DetectHolidays(records)
}

// maxOverrides converts configured constraints into envelope overrides,
// dropping cells with unmapped month names.
func (e *Engine) maxOverrides() map[targets.Key]float64 {
	if e.cfg.Profile.MonthlyConstraintMode == "off" {
		return nil
	}
	out := map[targets.Key]float64{}
	for _, mc := range e.cfg.Constraints {
		fm, err := calendar.FiscalMonthByName(mc.Month)
		if err != nil {
			log.Printf("engine: skipping constraint with %v", err)
			continue
		}
		out[targets.Key{Year: mc.Year, FiscalMonth: fm}] = mc.MaxMW
	}
	return out
}
