// Package calendar derives fiscal-calendar features for hourly timestamps.
//
// The fiscal year runs April 1 to March 31: a date in Apr-Dec belongs to
// fiscal year = calendar year + 1, Jan-Mar to fiscal year = calendar year.
// Fiscal months are numbered Apr=1 .. Mar=12.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"demand-profile/internal/model"
)

// FiscalMonthNames is the fixed fiscal-month abbreviation table, index 0 = Apr.
var FiscalMonthNames = [12]string{
	"Apr", "May", "Jun", "Jul", "Aug", "Sep",
	"Oct", "Nov", "Dec", "Jan", "Feb", "Mar",
}

// FiscalYearOf maps a timestamp to its fiscal year.
func FiscalYearOf(t time.Time) int {
	if t.Month() >= time.April {
		return t.Year() + 1
	}
	return t.Year()
}

// FiscalMonthOf maps a calendar month to the 1-based fiscal month (Apr=1).
func FiscalMonthOf(m time.Month) int {
	if m >= time.April {
		return int(m) - 3
	}
	return int(m) + 9
}

// CalendarMonthOf is the inverse of FiscalMonthOf.
func CalendarMonthOf(fiscalMonth int) time.Month {
	if fiscalMonth <= 9 {
		return time.Month(fiscalMonth + 3)
	}
	return time.Month(fiscalMonth - 9)
}

// FiscalMonthByName resolves a fiscal-month abbreviation ("Apr".."Mar")
// to its 1-based fiscal month.
func FiscalMonthByName(name string) (int, error) {
	for i, n := range FiscalMonthNames {
		if strings.EqualFold(n, name) {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("unknown fiscal month name: %q", name)
}

// FiscalYearStart returns April 1 of the year that opens the given fiscal year.
func FiscalYearStart(fiscalYear int) time.Time {
	return time.Date(fiscalYear-1, time.April, 1, 0, 0, 0, 0, time.UTC)
}

// FiscalYearEnd returns the last hour (Mar 31, 23:00) of the fiscal year.
func FiscalYearEnd(fiscalYear int) time.Time {
	return time.Date(fiscalYear, time.March, 31, 23, 0, 0, 0, time.UTC)
}

// DayOfFiscalYear returns the 0-based day offset from April 1.
func DayOfFiscalYear(t time.Time) int {
	start := FiscalYearStart(FiscalYearOf(t))
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(day.Sub(start).Hours() / 24)
}

// SeasonOf maps a calendar month to its fixed season.
func SeasonOf(m time.Month) model.Season {
	switch {
	case m >= time.March && m <= time.June:
		return model.SeasonSummer
	case m >= time.July && m <= time.September:
		return model.SeasonMonsoon
	case m == time.October || m == time.November:
		return model.SeasonPostMonsoon
	default:
		return model.SeasonWinter
	}
}

// DayTypeOf classifies a timestamp, consulting an optional holiday set keyed
// by "2006-01-02" date strings. Weekend classification wins over holiday for
// Saturdays/Sundays so reduction factors stay attributable to one bucket.
func DayTypeOf(t time.Time, holidays map[string]bool) model.DayType {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return model.DayWeekend
	}
	if holidays != nil && holidays[t.Format("2006-01-02")] {
		return model.DayHoliday
	}
	return model.DayWeekday
}

// Tag fills the derived calendar fields of a record from its timestamp.
func Tag(t time.Time, demandMW float64, holidays map[string]bool) model.HourlyRecord {
	return model.HourlyRecord{
		Timestamp:   t,
		DemandMW:    demandMW,
		Hour:        t.Hour(),
		Weekday:     t.Weekday(),
		Month:       t.Month(),
		FiscalYear:  FiscalYearOf(t),
		FiscalMonth: FiscalMonthOf(t.Month()),
		Season:      SeasonOf(t.Month()),
		DayType:     DayTypeOf(t, holidays),
	}
}
