package model

import "time"

// Season buckets fiscal months into climate seasons.
type Season string

const (
	SeasonSummer      Season = "Summer"
	SeasonMonsoon     Season = "Monsoon"
	SeasonPostMonsoon Season = "Post-monsoon"
	SeasonWinter      Season = "Winter"
)

// DayType classifies a calendar day for demand shaping.
type DayType string

const (
	DayWeekday DayType = "weekday"
	DayWeekend DayType = "weekend"
	DayHoliday DayType = "holiday"
)

// HourlyRecord is one hour of measured demand plus derived calendar features.
// Units:
// - DemandMW: MW (average power over the hour, so also MWh for the hour)
// - FiscalMonth: 1..12 with Apr=1, Mar=12
type HourlyRecord struct {
	Timestamp time.Time
	DemandMW  float64

	Hour        int
	Weekday     time.Weekday
	Month       time.Month
	FiscalYear  int
	FiscalMonth int
	Season      Season
	DayType     DayType
}

// ProfileRow is one hour of a generated profile.
// Rows are created empty by the structure builder and populated in two
// passes: normalized values first, then scaled Demand_MW.
type ProfileRow struct {
	DateTime    time.Time
	Year        int
	Month       int
	Day         int
	Hour        int
	DayOfWeek   time.Weekday
	FiscalYear  int
	FiscalMonth int
	Season      Season
	DayType     DayType
	DemandMW    float64
}
