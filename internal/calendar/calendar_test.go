package calendar

import (
	"testing"
	"time"

	"demand-profile/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestFiscalYearOf(t *testing.T) {
	t.Run("April Onwards Maps To Next Year", func(t *testing.T) {
		assert.Equal(t, 2025, FiscalYearOf(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, 2025, FiscalYearOf(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)))
	})

	t.Run("Jan Through Mar Maps To Same Year", func(t *testing.T) {
		assert.Equal(t, 2024, FiscalYearOf(time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)))
		assert.Equal(t, 2024, FiscalYearOf(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	})
}

func TestFiscalMonthOf(t *testing.T) {
	assert.Equal(t, 1, FiscalMonthOf(time.April))
	assert.Equal(t, 9, FiscalMonthOf(time.December))
	assert.Equal(t, 10, FiscalMonthOf(time.January))
	assert.Equal(t, 12, FiscalMonthOf(time.March))

	for fm := 1; fm <= 12; fm++ {
		assert.Equal(t, fm, FiscalMonthOf(CalendarMonthOf(fm)), "round trip fiscal month %d", fm)
	}
}

func TestFiscalMonthByName(t *testing.T) {
	fm, err := FiscalMonthByName("Apr")
	assert.NoError(t, err)
	assert.Equal(t, 1, fm)

	fm, err = FiscalMonthByName("mar")
	assert.NoError(t, err)
	assert.Equal(t, 12, fm)

	_, err = FiscalMonthByName("Smarch")
	assert.Error(t, err)
}

func TestDayOfFiscalYear(t *testing.T) {
	assert.Equal(t, 0, DayOfFiscalYear(time.Date(2024, 4, 1, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, DayOfFiscalYear(time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)))
	// Mar 31 closes the fiscal year that started the previous April.
	assert.Equal(t, 364, DayOfFiscalYear(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)))
}

func TestSeasonOf(t *testing.T) {
	assert.Equal(t, model.SeasonSummer, SeasonOf(time.March))
	assert.Equal(t, model.SeasonSummer, SeasonOf(time.June))
	assert.Equal(t, model.SeasonMonsoon, SeasonOf(time.July))
	assert.Equal(t, model.SeasonPostMonsoon, SeasonOf(time.October))
	assert.Equal(t, model.SeasonWinter, SeasonOf(time.December))
	assert.Equal(t, model.SeasonWinter, SeasonOf(time.February))
}

func TestDayTypeOf(t *testing.T) {
	sat := time.Date(2024, 4, 6, 10, 0, 0, 0, time.UTC)
	mon := time.Date(2024, 4, 8, 10, 0, 0, 0, time.UTC)
	holidays := map[string]bool{"2024-04-08": true}

	assert.Equal(t, model.DayWeekend, DayTypeOf(sat, holidays))
	assert.Equal(t, model.DayHoliday, DayTypeOf(mon, holidays))
	assert.Equal(t, model.DayWeekday, DayTypeOf(mon, nil))
}

func TestDetectHolidays(t *testing.T) {
	// Four ordinary Mondays at 100 MW and one collapsed Monday at 40 MW.
	var records []model.HourlyRecord
	for week := 0; week < 5; week++ {
		day := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*week)
		demand := 100.0
		if week == 2 {
			demand = 40.0
		}
		for h := 0; h < 24; h++ {
			records = append(records, Tag(day.Add(time.Duration(h)*time.Hour), demand, nil))
		}
	}

	holidays := DetectHolidays(records)
	assert.True(t, holidays["2024-04-15"])
	assert.Len(t, holidays, 1)
}
