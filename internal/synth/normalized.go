package synth

import (
	"errors"

	"demand-profile/internal/baseyear"
	"demand-profile/internal/calendar"
	"demand-profile/internal/model"
)

// NormalizedPattern replicates the base-year normalized shape into every
// target hour, adjusted by pattern factors in normalized space so values
// stay in [0,1]. Pure function of (curve, bundle, calendar features).
type NormalizedPattern struct{}

func (s *NormalizedPattern) Name() string { return "normalized_pattern" }

// curveSlot is one base-year hour eligible as a template.
type curveSlot struct {
	day     int
	dayType model.DayType
	value   float64
}

type slotKey struct {
	fiscalMonth int
	hour        int
}

// shape dampening keeps hourly and day-type effects from pushing values
// out of the unit interval.
const (
	shapeBase    = 0.5
	shapeWeight  = 0.5
	reduceBase   = 0.7
	reduceWeight = 0.3
	neutralFill  = 0.5
)

func (s *NormalizedPattern) Synthesize(ctx Context) ([]float64, error) {
	if ctx.Curve == nil {
		return nil, errors.New("normalized pattern requires a base-year curve")
	}

	lookup, hourMeans := buildLookup(ctx.Curve)

	out := make([]float64, len(ctx.Rows))
	for i, row := range ctx.Rows {
		v := matchSlot(lookup, hourMeans, row)

		v = clip01(v * (shapeBase + shapeWeight*ctx.Bundle.ShapeFactorFor(row.DayType, row.Hour)))
		if row.DayType == model.DayWeekend || row.DayType == model.DayHoliday {
			v = clip01(v * (reduceBase + reduceWeight*ctx.Bundle.ReductionFor(row.DayType)))
		}
		out[i] = v
	}
	return out, nil
}

// buildLookup indexes the normalized curve by (fiscal month, hour) once,
// so the per-hour match is a bounded candidate scan instead of a sweep
// over the whole curve.
func buildLookup(curve *baseyear.Curve) (map[slotKey][]curveSlot, *[24]float64) {
	lookup := map[slotKey][]curveSlot{}
	var hourSum [24]float64
	var hourCount [24]int

	for i, ts := range curve.Timestamps {
		key := slotKey{fiscalMonth: calendar.FiscalMonthOf(ts.Month()), hour: ts.Hour()}
		lookup[key] = append(lookup[key], curveSlot{
			day:     ts.Day(),
			dayType: calendar.DayTypeOf(ts, nil),
			value:   curve.Normalized[i],
		})
		hourSum[ts.Hour()] += curve.Normalized[i]
		hourCount[ts.Hour()]++
	}

	means := &[24]float64{}
	for h := 0; h < 24; h++ {
		if hourCount[h] > 0 {
			means[h] = hourSum[h] / float64(hourCount[h])
		} else {
			means[h] = neutralFill
		}
	}
	return lookup, means
}

// matchSlot finds the normalized value for a row: same fiscal month and
// hour, preferring base-year days of the same day type (dates shift
// weekday across years, so a raw closest-date match would pair weekdays
// with weekend shapes), tie-broken by closest day of month. Falls back to
// the hour mean across months, then to 0.5.
func matchSlot(lookup map[slotKey][]curveSlot, hourMeans *[24]float64, row model.ProfileRow) float64 {
	candidates := lookup[slotKey{fiscalMonth: row.FiscalMonth, hour: row.Hour}]
	if len(candidates) == 0 {
		if hourMeans != nil {
			return hourMeans[row.Hour]
		}
		return neutralFill
	}

	want := row.DayType
	if want == model.DayHoliday {
		// The base curve carries no holiday tags; off-days track weekends.
		want = model.DayWeekend
	}

	bestIdx := -1
	bestDist := 0
	bestTyped := false
	for idx, c := range candidates {
		typed := c.dayType == want
		dist := absInt(c.day - row.Day)
		if bestIdx < 0 ||
			(typed && !bestTyped) ||
			(typed == bestTyped && dist < bestDist) {
			bestIdx = idx
			bestDist = dist
			bestTyped = typed
		}
	}
	return candidates[bestIdx].value
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
