package pattern

import (
	"errors"
	"log"

	"demand-profile/internal/model"
)

// Options controls optional extraction steps.
type Options struct {
	// WithDecomposition requests a trend/seasonal/residual split. It is
	// skipped (bundle.Decomposition stays nil) when fewer than two weeks
	// of hourly data exist.
	WithDecomposition bool
}

// minDecompositionHours is two weeks of hourly data.
const minDecompositionHours = 2 * seasonalPeriodHours

// Extract builds a Bundle from a tagged historical series. It is a pure
// function: identical input yields an identical bundle.
//
// Individual steps degrade gracefully (empty sub-bundle, factor defaults of
// 1.0) rather than aborting the run; only an empty series is fatal.
func Extract(records []model.HourlyRecord, opts Options) (*Bundle, error) {
	if len(records) == 0 {
		return nil, errors.New("no historical data to extract patterns from")
	}

	b := &Bundle{
		Hourly:    extractHourly(records),
		Monthly:   extractMonthly(records),
		Reduction: extractReduction(records),
	}

	all := make([]float64, 0, len(records))
	for _, r := range records {
		all = append(all, r.DemandMW)
	}
	b.BaseLoadMW = model.Percentile(all, 0.05)
	_, b.PeakMW = model.MinMax(all)
	if b.PeakMW > 0 {
		b.BaseToPeakRatio = b.BaseLoadMW / b.PeakMW
	}

	if opts.WithDecomposition {
		if len(records) >= minDecompositionHours {
			b.Decomposition = Decompose(all, seasonalPeriodHours)
		} else {
			log.Printf("pattern: %d hourly points < %d required, skipping decomposition",
				len(records), minDecompositionHours)
		}
	}

	return b, nil
}

func extractHourly(records []model.HourlyRecord) map[model.DayType]*[24]HourShape {
	grouped := map[model.DayType]*[24][]float64{}
	for _, r := range records {
		g, ok := grouped[r.DayType]
		if !ok {
			g = &[24][]float64{}
			grouped[r.DayType] = g
		}
		g[r.Hour] = append(g[r.Hour], r.DemandMW)
	}

	out := map[model.DayType]*[24]HourShape{}
	for dt, hours := range grouped {
		var allVals []float64
		for h := 0; h < 24; h++ {
			allVals = append(allVals, hours[h]...)
		}
		overall := model.Mean(allVals)

		table := &[24]HourShape{}
		for h := 0; h < 24; h++ {
			vals := hours[h]
			shape := HourShape{Count: len(vals)}
			if len(vals) > 0 {
				shape.MeanMW = model.Mean(vals)
				shape.StdMW = model.Std(vals)
				if overall > 0 {
					shape.ShapeFactor = shape.MeanMW / overall
				} else {
					// Zero-mean group: flat default.
					shape.ShapeFactor = 1.0
				}
			}
			table[h] = shape
		}
		out[dt] = table
	}
	return out
}

func extractMonthly(records []model.HourlyRecord) map[int]MonthShape {
	grouped := map[int][]float64{}
	var all []float64
	for _, r := range records {
		grouped[r.FiscalMonth] = append(grouped[r.FiscalMonth], r.DemandMW)
		all = append(all, r.DemandMW)
	}
	overall := model.Mean(all)

	out := map[int]MonthShape{}
	for fm, vals := range grouped {
		ms := MonthShape{MeanMW: model.Mean(vals), Count: len(vals)}
		if overall > 0 {
			ms.Factor = ms.MeanMW / overall
		} else {
			ms.Factor = 1.0
		}
		out[fm] = ms
	}
	return out
}

func extractReduction(records []model.HourlyRecord) map[model.DayType]float64 {
	sums := map[model.DayType]float64{}
	counts := map[model.DayType]int{}
	for _, r := range records {
		sums[r.DayType] += r.DemandMW
		counts[r.DayType]++
	}

	out := map[model.DayType]float64{}
	weekdayMean := 0.0
	if counts[model.DayWeekday] > 0 {
		weekdayMean = sums[model.DayWeekday] / float64(counts[model.DayWeekday])
	}
	for _, dt := range []model.DayType{model.DayWeekday, model.DayWeekend, model.DayHoliday} {
		if counts[dt] == 0 || weekdayMean <= 0 {
			out[dt] = 1.0
			continue
		}
		out[dt] = (sums[dt] / float64(counts[dt])) / weekdayMean
	}
	return out
}
