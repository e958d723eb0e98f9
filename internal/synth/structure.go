package synth

import (
	"fmt"
	"time"

	"demand-profile/internal/calendar"
	"demand-profile/internal/model"
)

// BuildRows creates the empty hourly profile structure spanning fiscal
// years startYear..endYear (April 1 of startYear-1 through March 31 of
// endYear). Demand is left zero; holidays is an optional explicit calendar
// keyed by "2006-01-02".
func BuildRows(startYear, endYear int, holidays map[string]bool) ([]model.ProfileRow, error) {
	if startYear <= 0 || endYear <= 0 || startYear > endYear {
		return nil, fmt.Errorf("invalid year range %d..%d", startYear, endYear)
	}

	start := calendar.FiscalYearStart(startYear)
	end := calendar.FiscalYearStart(endYear + 1)
	n := int(end.Sub(start).Hours())

	rows := make([]model.ProfileRow, 0, n)
	for ts := start; ts.Before(end); ts = ts.Add(time.Hour) {
		rows = append(rows, model.ProfileRow{
			DateTime:    ts,
			Year:        ts.Year(),
			Month:       int(ts.Month()),
			Day:         ts.Day(),
			Hour:        ts.Hour(),
			DayOfWeek:   ts.Weekday(),
			FiscalYear:  calendar.FiscalYearOf(ts),
			FiscalMonth: calendar.FiscalMonthOf(ts.Month()),
			Season:      calendar.SeasonOf(ts.Month()),
			DayType:     calendar.DayTypeOf(ts, holidays),
		})
	}
	return rows, nil
}
