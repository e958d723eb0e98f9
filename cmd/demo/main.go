package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"demand-profile/internal/analysis"
	"demand-profile/internal/calendar"
	"demand-profile/internal/config"
	"demand-profile/internal/data"
	"demand-profile/internal/engine"
	"demand-profile/internal/model"
	"demand-profile/internal/targets"
)

// Demo:
// - Build two fiscal years of synthetic hourly demand (weekdays 100 MW, weekends 90 MW)
// - Set annual energy targets implying ~3% growth
// - Run the full synthesis pipeline and print the result
func main() {
	years := flag.Int("years", 2, "Number of future fiscal years to generate")
	outCSV := flag.String("out", "", "Optional path to write the profile CSV (e.g. results/demo.csv)")
	flag.Parse()

	records := syntheticHistory(2023, 2024)
	fmt.Printf("Synthetic history: %d hours, FY%d..FY%d\n",
		len(records), records[0].FiscalYear, records[len(records)-1].FiscalYear)

	cfg := &config.Config{
		Profile: config.ProfileConfig{
			Name:      "demo",
			StartYear: 2025,
			EndYear:   2025 + *years - 1,
			Method:    config.MethodNormalizedPattern,
		},
	}
	cfg.ApplyDefaults()

	// Targets grow 3% per year off the last historical total
	base := 0.0
	for _, r := range records {
		if r.FiscalYear == 2024 {
			base += r.DemandMW
		}
	}
	annual := targets.Annual{}
	growth := 1.0
	for y := cfg.Profile.StartYear; y <= cfg.Profile.EndYear; y++ {
		growth *= 1.03
		annual[y] = base * growth
	}

	events := make(chan engine.Event, 16)
	done := make(chan struct{})
	go func() {
		for ev := range events {
			fmt.Printf("[%d/%d] %s\n", ev.Step, ev.TotalSteps, ev.Message)
		}
		close(done)
	}()

	res, err := engine.New(cfg).Run(records, annual, events)
	close(events)
	<-done
	if err != nil {
		panic(err)
	}

	fmt.Printf("\nGenerated %d hours with method %s (base year FY%d)\n",
		len(res.Rows), res.Method, res.BaseYear)
	fmt.Println("\nFirst day of the generated profile:")
	for _, r := range res.Rows[:24] {
		fmt.Printf("  %s  %s  %6.1f MW\n", r.DateTime.Format("2006-01-02 15:04"), r.DayType, r.DemandMW)
	}

	fmt.Println("\nPer-year summary:")
	for _, s := range analysis.ByYear(res.Rows) {
		fmt.Printf("  %s: peak=%.1f MW avg=%.1f MW energy=%.0f MWh\n",
			s.Label, s.PeakMW, s.AverageMW, s.TotalMWh)
	}

	if res.Validation.AllPass {
		fmt.Println("\nValidation: all years within tolerance of their targets")
	}

	if *outCSV != "" {
		if err := os.MkdirAll(filepath.Dir(*outCSV), 0o755); err != nil {
			panic(err)
		}
		if err := data.WriteProfileCSV(*outCSV, res.Rows); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote %s\n", *outCSV)
	}
}

func syntheticHistory(startFY, endFY int) []model.HourlyRecord {
	var records []model.HourlyRecord
	start := calendar.FiscalYearStart(startFY)
	end := calendar.FiscalYearEnd(endFY)
	for ts := start; !ts.After(end); ts = ts.Add(time.Hour) {
		demand := 100.0
		if ts.Weekday() == time.Saturday || ts.Weekday() == time.Sunday {
			demand = 90.0
		}
		records = append(records, calendar.Tag(ts, demand, nil))
	}
	return records
}
