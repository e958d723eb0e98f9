package data

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"demand-profile/internal/model"
)

// WriteProfileCSV writes the generated hourly profile, one row per hour.
func WriteProfileCSV(path string, rows []model.ProfileRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"DateTime",
		"Year",
		"Month",
		"Day",
		"Hour",
		"DayOfWeek",
		"Fiscal_Year",
		"fiscal_month",
		"season",
		"day_type",
		"Demand_MW",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			fmtTime(r.DateTime),
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Month),
			strconv.Itoa(r.Day),
			strconv.Itoa(r.Hour),
			r.DayOfWeek.String(),
			strconv.Itoa(r.FiscalYear),
			strconv.Itoa(r.FiscalMonth),
			string(r.Season),
			string(r.DayType),
			fmtFloat(r.DemandMW),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
