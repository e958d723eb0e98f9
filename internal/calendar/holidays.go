package calendar

import (
	"time"

	"demand-profile/internal/model"
)

// holidayStdThreshold flags weekday dates whose daily mean demand falls more
// than this many standard deviations below the weekday's historical average.
// Best-effort heuristic; an explicit holiday calendar always takes priority.
const holidayStdThreshold = 1.5

// DetectHolidays statistically flags likely-holiday weekdays in a tagged
// series. Returns a holiday set keyed by "2006-01-02" date strings.
func DetectHolidays(records []model.HourlyRecord) map[string]bool {
	type dayAgg struct {
		weekday time.Weekday
		sum     float64
		count   int
	}
	days := map[string]*dayAgg{}
	for _, r := range records {
		if r.DayType == model.DayWeekend {
			continue
		}
		key := r.Timestamp.Format("2006-01-02")
		agg, ok := days[key]
		if !ok {
			agg = &dayAgg{weekday: r.Weekday}
			days[key] = agg
		}
		agg.sum += r.DemandMW
		agg.count++
	}

	// Daily means grouped by weekday.
	byWeekday := map[time.Weekday][]float64{}
	means := map[string]float64{}
	for key, agg := range days {
		if agg.count == 0 {
			continue
		}
		m := agg.sum / float64(agg.count)
		means[key] = m
		byWeekday[agg.weekday] = append(byWeekday[agg.weekday], m)
	}

	holidays := map[string]bool{}
	for key, agg := range days {
		pop := byWeekday[agg.weekday]
		if len(pop) < 2 {
			continue
		}
		mean := model.Mean(pop)
		std := model.Std(pop)
		if std <= 0 {
			continue
		}
		if means[key] < mean-holidayStdThreshold*std {
			holidays[key] = true
		}
	}
	return holidays
}

// ApplyHolidays retags day types with the union of explicit and detected
// holiday dates. Weekends are never reclassified.
func ApplyHolidays(records []model.HourlyRecord, holidays map[string]bool) []model.HourlyRecord {
	if len(holidays) == 0 {
		return records
	}
	out := make([]model.HourlyRecord, len(records))
	copy(out, records)
	for i := range out {
		out[i].DayType = DayTypeOf(out[i].Timestamp, holidays)
	}
	return out
}
