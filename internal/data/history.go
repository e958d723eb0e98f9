package data

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"demand-profile/internal/calendar"
	"demand-profile/internal/model"
)

// Historical CSV layout: a header row naming at least a date column and a
// demand column, with an optional separate time column. Rows with
// unparseable timestamps or non-positive demand are dropped before any
// stage runs; duplicate timestamps are collapsed by averaging.

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02-01-2006 15:04",
	"02-01-2006",
	"02/01/2006 15:04",
	"02/01/2006",
}

var timeLayouts = []string{"15:04:05", "15:04", "15"}

// LoadHistoryCSV reads and tags a historical hourly demand series.
func LoadHistoryCSV(path string) ([]model.HourlyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}

	dateCol, timeCol, demandCol, err := resolveColumns(rows[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	type acc struct {
		sum   float64
		count int
	}
	byHour := map[time.Time]*acc{}
	dropped := 0
	for _, row := range rows[1:] {
		ts, ok := parseTimestamp(row, dateCol, timeCol)
		if !ok {
			dropped++
			continue
		}
		demand, err := strconv.ParseFloat(strings.TrimSpace(row[demandCol]), 64)
		if err != nil || demand <= 0 {
			dropped++
			continue
		}
		hour := ts.Truncate(time.Hour)
		a, ok := byHour[hour]
		if !ok {
			a = &acc{}
			byHour[hour] = a
		}
		a.sum += demand
		a.count++
	}
	if dropped > 0 {
		log.Printf("data: dropped %d invalid rows from %s", dropped, path)
	}
	if len(byHour) == 0 {
		return nil, fmt.Errorf("%s: no valid demand rows", path)
	}

	hours := make([]time.Time, 0, len(byHour))
	for h := range byHour {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].Before(hours[j]) })

	records := make([]model.HourlyRecord, 0, len(hours))
	for _, h := range hours {
		a := byHour[h]
		records = append(records, calendar.Tag(h, a.sum/float64(a.count), nil))
	}
	return records, nil
}

func resolveColumns(header []string) (dateCol, timeCol, demandCol int, err error) {
	dateCol, timeCol, demandCol = -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date", "datetime", "timestamp":
			if dateCol < 0 {
				dateCol = i
			}
		case "time", "hour":
			if timeCol < 0 {
				timeCol = i
			}
		case "demand", "demand_mw", "load", "load_mw":
			if demandCol < 0 {
				demandCol = i
			}
		}
	}
	if dateCol < 0 || demandCol < 0 {
		return 0, 0, 0, fmt.Errorf("header must name a date and a demand column, got %v", header)
	}
	return dateCol, timeCol, demandCol, nil
}

// parseTimestamp combines date and optional time columns, trying each
// known layout.
func parseTimestamp(row []string, dateCol, timeCol int) (time.Time, bool) {
	if dateCol >= len(row) {
		return time.Time{}, false
	}
	dateStr := strings.TrimSpace(row[dateCol])
	if timeCol >= 0 && timeCol < len(row) {
		timeStr := strings.TrimSpace(row[timeCol])
		for _, dl := range dateLayouts {
			for _, tl := range timeLayouts {
				if ts, err := time.ParseInLocation(dl+" "+tl, dateStr+" "+timeStr, time.UTC); err == nil {
					return ts, true
				}
			}
		}
	}
	for _, dl := range dateLayouts {
		if ts, err := time.ParseInLocation(dl, dateStr, time.UTC); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
