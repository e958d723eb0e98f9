// Package pattern extracts reusable demand-shape information from a cleaned
// historical hourly series. The resulting Bundle is immutable: it is built
// once per generation run and read by the synthesis strategies.
package pattern

import "demand-profile/internal/model"

// HourShape summarizes one hour-of-day within a day-type group.
type HourShape struct {
	MeanMW float64
	StdMW  float64
	// ShapeFactor = mean(hour) / mean(all hours, same day-type).
	ShapeFactor float64
	Count       int
}

// MonthShape summarizes one fiscal month.
type MonthShape struct {
	MeanMW float64
	// Factor = mean(month) / mean(all months).
	Factor float64
	Count  int
}

// Bundle is the extracted pattern set for one historical series.
type Bundle struct {
	// Hourly shape tables per day-type, indexed by hour of day.
	Hourly map[model.DayType]*[24]HourShape

	// Monthly aggregates keyed by fiscal month (Apr=1).
	Monthly map[int]MonthShape

	// Base load is the 5th percentile of all demand.
	BaseLoadMW      float64
	PeakMW          float64
	BaseToPeakRatio float64

	// Reduction factors per day-type against the weekday baseline.
	Reduction map[model.DayType]float64

	// Decomposition is nil when the series is too short or the step failed.
	Decomposition *Decomposition
}

// ReductionFor returns the day-type reduction factor, defaulting to 1.0
// for unknown or empty groups.
func (b *Bundle) ReductionFor(dt model.DayType) float64 {
	if b == nil || b.Reduction == nil {
		return 1.0
	}
	if f, ok := b.Reduction[dt]; ok && f > 0 {
		return f
	}
	return 1.0
}

// ShapeFactorFor returns the hourly shape factor for a day-type and hour,
// defaulting to 1.0 when the group is missing.
func (b *Bundle) ShapeFactorFor(dt model.DayType, hour int) float64 {
	if b == nil || b.Hourly == nil || hour < 0 || hour > 23 {
		return 1.0
	}
	table, ok := b.Hourly[dt]
	if !ok {
		// Holiday hours without their own table borrow the weekend shape.
		if dt == model.DayHoliday {
			table, ok = b.Hourly[model.DayWeekend]
		}
		if !ok {
			return 1.0
		}
	}
	if table[hour].Count == 0 || table[hour].ShapeFactor <= 0 {
		return 1.0
	}
	return table[hour].ShapeFactor
}
