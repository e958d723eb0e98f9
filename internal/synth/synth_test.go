package synth

import (
	"math"
	"testing"
	"time"

	"demand-profile/internal/baseyear"
	"demand-profile/internal/calendar"
	"demand-profile/internal/model"
	"demand-profile/internal/pattern"
	"demand-profile/internal/targets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatHistory(fy int, weekdayMW, weekendMW float64) []model.HourlyRecord {
	start := calendar.FiscalYearStart(fy)
	end := calendar.FiscalYearStart(fy + 1)
	var records []model.HourlyRecord
	for ts := start; ts.Before(end); ts = ts.Add(time.Hour) {
		demand := weekdayMW
		if ts.Weekday() == time.Saturday || ts.Weekday() == time.Sunday {
			demand = weekendMW
		}
		records = append(records, calendar.Tag(ts, demand, nil))
	}
	return records
}

func TestBuildRows(t *testing.T) {
	t.Run("Horizon Span", func(t *testing.T) {
		rows, err := BuildRows(2025, 2025, nil)
		require.NoError(t, err)

		// FY2025 = Apr 1 2024 .. Mar 31 2025.
		assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), rows[0].DateTime)
		last := rows[len(rows)-1]
		assert.Equal(t, time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC), last.DateTime)
		for _, row := range rows {
			assert.Equal(t, 2025, row.FiscalYear)
		}
	})

	t.Run("Invalid Range", func(t *testing.T) {
		_, err := BuildRows(2026, 2024, nil)
		assert.Error(t, err)
		_, err = BuildRows(0, 2024, nil)
		assert.Error(t, err)
	})

	t.Run("Holiday Calendar Applied", func(t *testing.T) {
		holidays := map[string]bool{"2024-08-15": true}
		rows, err := BuildRows(2025, 2025, holidays)
		require.NoError(t, err)

		for _, row := range rows {
			if row.DateTime.Format("2006-01-02") == "2024-08-15" {
				assert.Equal(t, model.DayHoliday, row.DayType)
			}
		}
	})
}

func TestNormalizedPattern(t *testing.T) {
	history := flatHistory(2023, 100, 90)
	curve, err := baseyear.Build(history, 2023)
	require.NoError(t, err)
	bundle, err := pattern.Extract(history, pattern.Options{})
	require.NoError(t, err)

	rows, err := BuildRows(2024, 2024, nil)
	require.NoError(t, err)

	strat := &NormalizedPattern{}
	values, err := strat.Synthesize(Context{Rows: rows, Curve: curve, Bundle: bundle})
	require.NoError(t, err)

	t.Run("Values In Unit Interval", func(t *testing.T) {
		for _, v := range values {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	})

	t.Run("Weekday High Weekend Low", func(t *testing.T) {
		for i, row := range rows {
			if row.DayType == model.DayWeekday {
				// Flat weekday demand normalizes to 1 and unit shape
				// factors leave it there.
				assert.InDelta(t, 1.0, values[i], 1e-9)
			} else {
				assert.InDelta(t, 0.0, values[i], 1e-9)
			}
		}
	})

	t.Run("Pure Function", func(t *testing.T) {
		again, err := strat.Synthesize(Context{Rows: rows, Curve: curve, Bundle: bundle})
		require.NoError(t, err)
		assert.Equal(t, values, again)
	})

	t.Run("Missing Curve Rejected", func(t *testing.T) {
		_, err := strat.Synthesize(Context{Rows: rows, Bundle: bundle})
		assert.Error(t, err)
	})
}

func TestDecompositionStrategy(t *testing.T) {
	history := flatHistory(2023, 100, 90)
	bundle, err := pattern.Extract(history, pattern.Options{WithDecomposition: true})
	require.NoError(t, err)
	require.NotNil(t, bundle.Decomposition)

	rows, err := BuildRows(2024, 2024, nil)
	require.NoError(t, err)

	ctx := Context{
		Rows:         rows,
		Bundle:       bundle,
		GrowthFactor: func(int) float64 { return 1.0 },
	}

	t.Run("Reproducible With Seed", func(t *testing.T) {
		a, err := (&DecompositionStrategy{Seed: 7}).Synthesize(ctx)
		require.NoError(t, err)
		b, err := (&DecompositionStrategy{Seed: 7}).Synthesize(ctx)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("Values Floored Above Zero", func(t *testing.T) {
		values, err := (&DecompositionStrategy{Seed: 7}).Synthesize(ctx)
		require.NoError(t, err)

		floor := bundle.Decomposition.TrendMeanMW * trendFloorPct
		for _, v := range values {
			assert.GreaterOrEqual(t, v, floor-1e-9)
		}
	})

	t.Run("Tracks Trend Level", func(t *testing.T) {
		values, err := (&DecompositionStrategy{Seed: 7}).Synthesize(ctx)
		require.NoError(t, err)
		// Flat ~97 MW history: synthesized mean should stay in the
		// same neighborhood.
		mean := model.Mean(values)
		assert.InDelta(t, bundle.Decomposition.TrendMeanMW, mean, 10)
	})

	t.Run("Requires Decomposition", func(t *testing.T) {
		plain, err := pattern.Extract(history, pattern.Options{})
		require.NoError(t, err)
		_, err = (&DecompositionStrategy{}).Synthesize(Context{Rows: rows, Bundle: plain})
		assert.Error(t, err)
	})
}

func TestScaleToEnvelopes(t *testing.T) {
	rows, err := BuildRows(2024, 2024, nil)
	require.NoError(t, err)

	normalized := make([]float64, len(rows))
	for i := range normalized {
		normalized[i] = 0.5
	}

	t.Run("Midpoint Of Envelope", func(t *testing.T) {
		envs := map[targets.Key]targets.Envelope{}
		for fm := 1; fm <= 12; fm++ {
			envs[targets.Key{Year: 2024, FiscalMonth: fm}] = targets.Envelope{MaxMW: 120, MinMW: 80}
		}
		values, err := ScaleToEnvelopes(rows, normalized, envs)
		require.NoError(t, err)
		for _, v := range values {
			assert.InDelta(t, 100, v, 1e-9)
		}
	})

	t.Run("Missing Envelope Scales To Zero", func(t *testing.T) {
		values, err := ScaleToEnvelopes(rows, normalized, nil)
		require.NoError(t, err)
		for _, v := range values {
			assert.Zero(t, v)
		}
	})

	t.Run("Length Mismatch Rejected", func(t *testing.T) {
		_, err := ScaleToEnvelopes(rows, normalized[:10], nil)
		assert.Error(t, err)
	})
}

func TestScaleToAnnual(t *testing.T) {
	rows, err := BuildRows(2024, 2025, nil)
	require.NoError(t, err)

	values := make([]float64, len(rows))
	for i := range values {
		values[i] = 100
	}

	t.Run("Energy Conservation", func(t *testing.T) {
		annual := targets.Annual{2024: 500000, 2025: 950000}
		scaled, err := ScaleToAnnual(rows, values, annual)
		require.NoError(t, err)

		sums := map[int]float64{}
		for i, row := range rows {
			sums[row.FiscalYear] += scaled[i]
		}
		for year, target := range annual {
			assert.LessOrEqual(t, math.Abs(sums[year]-target)/target, 0.01, "year %d", year)
		}
	})

	t.Run("Untargeted Year Untouched", func(t *testing.T) {
		scaled, err := ScaleToAnnual(rows, values, targets.Annual{2024: 500000})
		require.NoError(t, err)
		for i, row := range rows {
			if row.FiscalYear == 2025 {
				assert.InDelta(t, 100, scaled[i], 1e-9)
			}
		}
	})

	t.Run("Empty Targets Leave Values", func(t *testing.T) {
		scaled, err := ScaleToAnnual(rows, values, nil)
		require.NoError(t, err)
		assert.Equal(t, values, scaled)
	})
}
