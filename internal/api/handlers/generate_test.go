package handlers

import (
	"testing"
	"time"

	"demand-profile/internal/engine"
	"demand-profile/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayRows(date time.Time, fy, fm int, season model.Season, dt model.DayType, peakMW float64) []model.ProfileRow {
	rows := make([]model.ProfileRow, 24)
	for h := 0; h < 24; h++ {
		mw := peakMW * 0.8
		if h == 18 {
			mw = peakMW
		}
		ts := date.Add(time.Duration(h) * time.Hour)
		rows[h] = model.ProfileRow{
			DateTime:    ts,
			Year:        ts.Year(),
			Month:       int(ts.Month()),
			Day:         ts.Day(),
			Hour:        h,
			DayOfWeek:   ts.Weekday(),
			FiscalYear:  fy,
			FiscalMonth: fm,
			Season:      season,
			DayType:     dt,
			DemandMW:    mw,
		}
	}
	return rows
}

func TestBuildSummary(t *testing.T) {
	var rows []model.ProfileRow
	rows = append(rows, dayRows(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 2026, 1, model.SeasonSummer, model.DayWeekday, 110)...)
	rows = append(rows, dayRows(time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), 2026, 1, model.SeasonSummer, model.DayWeekday, 120)...)
	rows = append(rows, dayRows(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), 2026, 4, model.SeasonMonsoon, model.DayWeekday, 100)...)
	rows = append(rows, dayRows(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), 2027, 1, model.SeasonSummer, model.DayWeekend, 95)...)

	result := &engine.Result{
		ProfileName: "test",
		Method:      "normalized_pattern",
		BaseYear:    2025,
		Rows:        rows,
	}
	summary := buildSummary(result)

	assert.Equal(t, "test", summary.Profile)
	assert.Equal(t, len(rows), summary.TotalHours)
	assert.Equal(t, rows[0].DateTime, summary.Window.Start)
	assert.Equal(t, rows[len(rows)-1].DateTime, summary.Window.End)

	require.Len(t, summary.Years, 2)
	assert.Equal(t, 2026, summary.Years[0].FiscalYear)
	assert.Equal(t, 2027, summary.Years[1].FiscalYear)

	// One rollup row per populated (fiscal year, fiscal month) cell.
	require.Len(t, summary.Months, 3)
	assert.Equal(t, "FY2026 Apr", summary.Months[0].Label)
	assert.Equal(t, 48, summary.Months[0].Hours)
	assert.InDelta(t, 120, summary.Months[0].PeakMW, 1e-9)

	require.Len(t, summary.Seasons, 3)
	assert.Equal(t, "FY2026 Summer", summary.Seasons[0].Label)
	assert.Equal(t, "FY2026 Monsoon", summary.Seasons[1].Label)

	require.Len(t, summary.PeakDays, 4)
	assert.Equal(t, "2025-04-02", summary.PeakDays[0].Date)
	assert.InDelta(t, 120, summary.PeakDays[0].PeakMW, 1e-9)
	for i := 1; i < len(summary.PeakDays); i++ {
		assert.LessOrEqual(t, summary.PeakDays[i].PeakMW, summary.PeakDays[i-1].PeakMW)
	}
}

func TestConvertRows(t *testing.T) {
	rows := dayRows(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 2026, 1, model.SeasonSummer, model.DayWeekday, 110)
	converted := convertRows(rows[:2])

	require.Len(t, converted, 2)
	assert.Equal(t, rows[0].DateTime, converted[0].DateTime)
	assert.Equal(t, 2026, converted[0].FiscalYear)
	assert.Equal(t, "Summer", converted[0].Season)
	assert.Equal(t, "weekday", converted[0].DayType)
	assert.InDelta(t, rows[0].DemandMW, converted[0].DemandMW, 1e-9)
}
