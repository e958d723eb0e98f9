package baseyear

import (
	"testing"
	"time"

	"demand-profile/internal/calendar"
	"demand-profile/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fiscalYearSeries tags one full fiscal year of hourly demand produced by fn.
func fiscalYearSeries(fy int, fn func(t time.Time) float64) []model.HourlyRecord {
	start := calendar.FiscalYearStart(fy)
	end := calendar.FiscalYearStart(fy + 1)
	var records []model.HourlyRecord
	for ts := start; ts.Before(end); ts = ts.Add(time.Hour) {
		records = append(records, calendar.Tag(ts, fn(ts), nil))
	}
	return records
}

func rampDemand(t time.Time) float64 {
	return 50 + float64(t.Hour())
}

func TestBuild(t *testing.T) {
	t.Run("No Data Is Fatal", func(t *testing.T) {
		_, err := Build(nil, 2023)
		assert.Error(t, err)
	})

	t.Run("Complete Year", func(t *testing.T) {
		c, err := Build(fiscalYearSeries(2023, rampDemand), 2023)
		require.NoError(t, err)

		assert.Equal(t, 2023, c.FiscalYear)
		assert.False(t, c.Substituted())
		assert.Len(t, c.DemandMW, 8760) // FY2023 spans Apr 2022 - Mar 2023, no leap day
		assert.Equal(t, 0, c.InterpolatedHours)
		assert.InDelta(t, 50, c.MinMW, 1e-9)
		assert.InDelta(t, 73, c.MaxMW, 1e-9)
	})

	t.Run("Normalized Values In Unit Interval", func(t *testing.T) {
		c, err := Build(fiscalYearSeries(2023, rampDemand), 2023)
		require.NoError(t, err)
		for _, v := range c.Normalized {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	})

	t.Run("Flat Curve Normalizes To Half", func(t *testing.T) {
		c, err := Build(fiscalYearSeries(2023, func(time.Time) float64 { return 75 }), 2023)
		require.NoError(t, err)
		for _, v := range c.Normalized {
			assert.InDelta(t, 0.5, v, 1e-9)
		}
	})

	t.Run("Absent Year Falls Back To Latest", func(t *testing.T) {
		c, err := Build(fiscalYearSeries(2023, rampDemand), 2030)
		require.NoError(t, err)
		assert.Equal(t, 2023, c.FiscalYear)
		assert.True(t, c.Substituted())
	})

	t.Run("Zero Year Picks Latest Complete", func(t *testing.T) {
		records := fiscalYearSeries(2022, rampDemand)
		records = append(records, fiscalYearSeries(2023, rampDemand)...)
		// A few stray hours of FY2024 must not win the default.
		stray := calendar.FiscalYearStart(2024)
		for h := 0; h < 48; h++ {
			records = append(records, calendar.Tag(stray.Add(time.Duration(h)*time.Hour), 60, nil))
		}

		c, err := Build(records, 0)
		require.NoError(t, err)
		assert.Equal(t, 2023, c.FiscalYear)
	})

	t.Run("Interior Gaps Interpolated", func(t *testing.T) {
		records := fiscalYearSeries(2023, func(time.Time) float64 { return 100 })
		// Drop a 3-hour interior block; surrounding values are 100.
		trimmed := append([]model.HourlyRecord{}, records[:1000]...)
		trimmed = append(trimmed, records[1003:]...)

		c, err := Build(trimmed, 2023)
		require.NoError(t, err)
		assert.Equal(t, 3, c.InterpolatedHours)
		assert.InDelta(t, 100, c.DemandMW[1001], 1e-9)
	})

	t.Run("Edge Gaps Filled", func(t *testing.T) {
		records := fiscalYearSeries(2023, func(time.Time) float64 { return 80 })
		trimmed := records[24 : len(records)-24]

		c, err := Build(trimmed, 2023)
		require.NoError(t, err)
		assert.InDelta(t, 80, c.DemandMW[0], 1e-9)
		assert.InDelta(t, 80, c.DemandMW[len(c.DemandMW)-1], 1e-9)
	})
}

func TestHoursInFiscalYear(t *testing.T) {
	// FY2025 spans Apr 2024 - Mar 2025 and contains no Feb 29.
	assert.Equal(t, 8760, hoursInFiscalYear(2025))
	// FY2024 spans Apr 2023 - Mar 2024, which includes Feb 29 2024.
	assert.Equal(t, 8784, hoursInFiscalYear(2024))
}
