// Package targets computes per-year growth factors and per-month demand
// envelopes from a base-year curve and externally supplied annual energy
// targets.
package targets

import (
	"fmt"
	"math"
	"sort"

	"demand-profile/internal/baseyear"
	"demand-profile/internal/calendar"
	"demand-profile/internal/model"
)

// Annual maps fiscal year to target annual energy in MWh. Supplied by an
// external forecasting process; treated as opaque here.
type Annual map[int]float64

// FilterYears drops targets outside [startYear, endYear].
func (a Annual) FilterYears(startYear, endYear int) Annual {
	out := Annual{}
	for y, v := range a {
		if y >= startYear && y <= endYear {
			out[y] = v
		}
	}
	return out
}

// Key addresses one (fiscal year, fiscal month) cell.
type Key struct {
	Year        int
	FiscalMonth int
}

// Envelope is the Max/Min demand bound for one month cell.
// Invariant: MaxMW >= MinMW >= 0.
type Envelope struct {
	MaxMW float64
	MinMW float64
}

const (
	// DefaultGrowthRate is the fallback annual growth rate when history
	// provides no usable signal. Configurable upstream.
	DefaultGrowthRate = 0.03

	// Historical growth rates outside this band are treated as noise.
	growthRateFloor = -0.2
	growthRateCeil  = 0.2

	// Target/base ratios outside this band keep the rate-based factor.
	ratioFloor = 0.5
	ratioCeil  = 3.0
)

// HistoricalGrowthRate derives the mean year-over-year growth of annual
// energy totals from a tagged historical series. Falls back to def when
// fewer than two years exist or the observed rate is non-finite or outside
// [-0.2, 0.2].
func HistoricalGrowthRate(records []model.HourlyRecord, def float64) float64 {
	totals := map[int]float64{}
	for _, r := range records {
		totals[r.FiscalYear] += r.DemandMW
	}
	if len(totals) < 2 {
		return def
	}
	years := make([]int, 0, len(totals))
	for y := range totals {
		years = append(years, y)
	}
	sort.Ints(years)

	var rates []float64
	for i := 1; i < len(years); i++ {
		prev := totals[years[i-1]]
		if prev <= 0 {
			continue
		}
		rates = append(rates, totals[years[i]]/prev-1)
	}
	if len(rates) == 0 {
		return def
	}
	r := model.Mean(rates)
	if math.IsNaN(r) || math.IsInf(r, 0) || r < growthRateFloor || r > growthRateCeil {
		return def
	}
	return r
}

// Calculator produces growth factors for target years. Factors are
// rate-based by default; a year with an explicit target overrides the rate
// when the implied target/base ratio is plausible.
type Calculator struct {
	BaseYear     int
	BaseTotalMWh float64
	Rate         float64
	Targets      Annual
}

// Factor returns the multiplicative scale from the base year to year.
func (c Calculator) Factor(year int) float64 {
	rateBased := math.Pow(1+c.Rate, float64(year-c.BaseYear))
	if c.BaseTotalMWh <= 0 {
		return rateBased
	}
	target, ok := c.Targets[year]
	if !ok || target <= 0 {
		return rateBased
	}
	ratio := target / c.BaseTotalMWh
	if ratio < ratioFloor || ratio > ratioCeil {
		// Anomalous target: keep the rate-based factor.
		return rateBased
	}
	return ratio
}

// MonthlyEnvelopes computes the (year, fiscal month) Max/Min demand
// envelope for every year in [startYear, endYear]. Each cell is computed
// independently from the base-year month extremes and the year's growth
// factor; overrides replace Max only.
func MonthlyEnvelopes(curve *baseyear.Curve, calc Calculator, startYear, endYear int, maxOverrides map[Key]float64) (map[Key]Envelope, error) {
	if startYear > endYear {
		return nil, fmt.Errorf("invalid year range %d..%d", startYear, endYear)
	}

	baseMax, baseMin := baseMonthStats(curve)

	out := map[Key]Envelope{}
	for year := startYear; year <= endYear; year++ {
		gf := calc.Factor(year)
		for fm := 1; fm <= 12; fm++ {
			env := Envelope{
				MaxMW: baseMax[fm] * gf,
				MinMW: baseMin[fm] * gf,
			}
			key := Key{Year: year, FiscalMonth: fm}
			if ov, ok := maxOverrides[key]; ok && ov > 0 {
				env.MaxMW = ov
			}
			if env.MinMW < 0 {
				env.MinMW = 0
			}
			if env.MaxMW < env.MinMW {
				env.MaxMW = env.MinMW
			}
			out[key] = env
		}
	}
	return out, nil
}

// baseMonthStats returns per-fiscal-month max and 5th-percentile demand of
// the base-year curve.
func baseMonthStats(curve *baseyear.Curve) (maxByMonth, minByMonth map[int]float64) {
	grouped := map[int][]float64{}
	for i, ts := range curve.Timestamps {
		fm := calendar.FiscalMonthOf(ts.Month())
		grouped[fm] = append(grouped[fm], curve.DemandMW[i])
	}

	maxByMonth = map[int]float64{}
	minByMonth = map[int]float64{}
	for fm := 1; fm <= 12; fm++ {
		vals := grouped[fm]
		if len(vals) == 0 {
			continue
		}
		_, mx := model.MinMax(vals)
		maxByMonth[fm] = mx
		minByMonth[fm] = model.Percentile(vals, 0.05)
	}
	return maxByMonth, minByMonth
}
