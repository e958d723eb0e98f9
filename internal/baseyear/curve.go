// Package baseyear builds the base-year demand curve: one complete fiscal
// year of historical hourly demand, gap-filled and normalized to [0,1],
// used as the shape template for future years.
package baseyear

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"demand-profile/internal/calendar"
	"demand-profile/internal/model"
)

// completenessThreshold is the fraction of the fiscal year's hours a year
// must cover to count as complete when defaulting the base year.
const completenessThreshold = 0.95

// Curve is one complete fiscal year of hourly demand plus its normalized
// form. Immutable once built.
type Curve struct {
	FiscalYear int
	// RequestedYear differs from FiscalYear when the requested base year
	// was absent from history and the latest available year was used.
	RequestedYear int

	Timestamps []time.Time
	DemandMW   []float64
	// Normalized holds (demand-min)/(max-min) clipped to [0,1];
	// constant 0.5 when the curve is flat.
	Normalized []float64

	MinMW  float64
	MaxMW  float64
	MeanMW float64

	// InterpolatedHours counts gap hours filled by interpolation or
	// edge filling.
	InterpolatedHours int
}

// Substituted reports whether the requested base year was replaced.
func (c *Curve) Substituted() bool {
	return c.RequestedYear != 0 && c.RequestedYear != c.FiscalYear
}

// TotalMWh is the summed energy of the curve.
func (c *Curve) TotalMWh() float64 {
	sum := 0.0
	for _, v := range c.DemandMW {
		sum += v
	}
	return sum
}

// Build assembles the base-year curve. requestedYear == 0 selects the most
// recent complete fiscal year; an absent requested year falls back to the
// latest available year rather than failing.
func Build(records []model.HourlyRecord, requestedYear int) (*Curve, error) {
	byYear := map[int]int{}
	for _, r := range records {
		byYear[r.FiscalYear]++
	}
	if len(byYear) == 0 {
		return nil, errors.New("no fiscal year of historical data available")
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	latest := years[len(years)-1]

	chosen := requestedYear
	switch {
	case requestedYear == 0:
		chosen = latestComplete(years, byYear)
	case byYear[requestedYear] == 0:
		log.Printf("baseyear: requested fiscal year %d absent, falling back to %d", requestedYear, latest)
		chosen = latest
	}

	curve, filled := assemble(records, chosen)
	if len(curve) == 0 {
		return nil, fmt.Errorf("fiscal year %d produced an empty curve", chosen)
	}

	c := &Curve{
		FiscalYear:        chosen,
		RequestedYear:     requestedYear,
		InterpolatedHours: filled,
	}
	c.Timestamps = make([]time.Time, len(curve))
	c.DemandMW = make([]float64, len(curve))
	for i, pt := range curve {
		c.Timestamps[i] = pt.ts
		c.DemandMW[i] = pt.demand
	}
	c.MinMW, c.MaxMW = model.MinMax(c.DemandMW)
	c.MeanMW = model.Mean(c.DemandMW)
	c.Normalized = normalize(c.DemandMW, c.MinMW, c.MaxMW)
	return c, nil
}

func latestComplete(years []int, counts map[int]int) int {
	for i := len(years) - 1; i >= 0; i-- {
		y := years[i]
		if float64(counts[y]) >= completenessThreshold*float64(hoursInFiscalYear(y)) {
			return y
		}
	}
	// No complete year: take the latest partial one.
	return years[len(years)-1]
}

func hoursInFiscalYear(fy int) int {
	start := calendar.FiscalYearStart(fy)
	end := calendar.FiscalYearStart(fy + 1)
	return int(end.Sub(start).Hours())
}

type curvePoint struct {
	ts     time.Time
	demand float64
	filled bool
}

// assemble builds the full hourly index for the fiscal year, left-joins
// history onto it, interpolates interior gaps linearly, then forward/
// backward-fills the edges.
func assemble(records []model.HourlyRecord, fy int) ([]curvePoint, int) {
	known := map[time.Time]float64{}
	for _, r := range records {
		if r.FiscalYear != fy {
			continue
		}
		known[r.Timestamp.Truncate(time.Hour).UTC()] = r.DemandMW
	}

	n := hoursInFiscalYear(fy)
	start := calendar.FiscalYearStart(fy)
	out := make([]curvePoint, n)
	missing := 0
	for i := 0; i < n; i++ {
		ts := start.Add(time.Duration(i) * time.Hour)
		pt := curvePoint{ts: ts}
		if v, ok := known[ts]; ok {
			pt.demand = v
		} else {
			pt.filled = true
			missing++
		}
		out[i] = pt
	}
	if missing == n {
		return nil, 0
	}
	if missing > 0 {
		log.Printf("baseyear: fiscal year %d missing %d of %d hours, interpolating", fy, missing, n)
		interpolate(out)
	}
	return out, missing
}

func interpolate(pts []curvePoint) {
	n := len(pts)

	// Interior gaps: linear between the surrounding known points.
	prev := -1
	for i := 0; i < n; i++ {
		if pts[i].filled {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			lo, hi := pts[prev].demand, pts[i].demand
			span := float64(i - prev)
			for j := prev + 1; j < i; j++ {
				frac := float64(j-prev) / span
				pts[j].demand = lo + frac*(hi-lo)
			}
		}
		prev = i
	}

	// Forward-fill the tail, backward-fill the head.
	for i := 1; i < n; i++ {
		if pts[i].filled && i > prev && prev >= 0 {
			pts[i].demand = pts[prev].demand
		}
	}
	first := -1
	for i := 0; i < n; i++ {
		if !pts[i].filled {
			first = i
			break
		}
	}
	for i := 0; i < first; i++ {
		pts[i].demand = pts[first].demand
	}
}

func normalize(vals []float64, minv, maxv float64) []float64 {
	out := make([]float64, len(vals))
	if maxv <= minv {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}
	span := maxv - minv
	for i, v := range vals {
		nv := (v - minv) / span
		if nv < 0 {
			nv = 0
		}
		if nv > 1 {
			nv = 1
		}
		out[i] = nv
	}
	return out
}
