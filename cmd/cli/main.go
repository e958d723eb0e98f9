package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"demand-profile/internal/analysis"
	"demand-profile/internal/calendar"
	"demand-profile/internal/config"
	"demand-profile/internal/data"
	"demand-profile/internal/engine"
	"demand-profile/internal/model"
	"demand-profile/internal/pattern"
	"demand-profile/internal/targets"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "generate":
		cmdGenerate(os.Args[2:])
	case "validate":
		cmdValidate(os.Args[2:])
	case "patterns":
		cmdPatterns(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli generate --config examples/profile.yaml --targets examples/targets.json --out results/profile.csv")
	fmt.Println("  cli validate --config examples/profile.yaml")
	fmt.Println("  cli patterns --data demand_history.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - generate writes one CSV row per hour across the configured fiscal years")
	fmt.Println("  - validate checks the config and reports coverage of the historical data")
	fmt.Println("  - patterns prints the extracted shape factors without generating a profile")
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML profile config")
	dataPath := fs.String("data", "", "Optional: override the config's data_source")
	targetsPath := fs.String("targets", "", "Optional: annual energy targets (JSON or CSV)")
	targetsURL := fs.String("targets-url", "", "Optional: forecast service base URL (overrides profile.forecast_url)")
	outPath := fs.String("out", "results/profile.csv", "Output CSV path")
	monthly := fs.Bool("monthly", false, "Also print the per-fiscal-month rollup")
	quiet := fs.Bool("quiet", false, "Suppress progress output")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}

	records := loadHistory(cfg, *dataPath)
	annual := loadTargets(cfg, *targetsPath, *targetsURL)

	var events chan engine.Event
	done := make(chan struct{})
	if !*quiet {
		events = make(chan engine.Event, 16)
		go func() {
			for ev := range events {
				fmt.Printf("[%d/%d] %s (%.0f%%)\n", ev.Step, ev.TotalSteps, ev.Message, ev.Percentage)
			}
			close(done)
		}()
	} else {
		close(done)
	}

	res, err := engine.New(cfg).Run(records, annual, events)
	if events != nil {
		close(events)
	}
	<-done
	if err != nil {
		fatal(err)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fatal(err)
	}
	if err := data.WriteProfileCSV(*outPath, res.Rows); err != nil {
		fatal(err)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(res.Rows), *outPath)
	fmt.Printf("Method=%s BaseYear=FY%d", res.Method, res.BaseYear)
	if res.BaseYearSubstituted {
		fmt.Printf(" (substituted)")
	}
	fmt.Println()

	for _, s := range analysis.ByYear(res.Rows) {
		fmt.Printf("  %s: peak=%.1f MW avg=%.1f MW energy=%.0f MWh load_factor=%.3f\n",
			s.Label, s.PeakMW, s.AverageMW, s.TotalMWh, s.LoadFactor)
	}

	fmt.Println("Seasonal rollup:")
	for _, s := range analysis.BySeason(res.Rows) {
		fmt.Printf("  %-22s peak=%.1f MW avg=%.1f MW energy=%.0f MWh\n",
			s.Label, s.PeakMW, s.AverageMW, s.TotalMWh)
	}

	if *monthly {
		fmt.Println("Monthly rollup:")
		for _, s := range analysis.ByFiscalMonth(res.Rows) {
			fmt.Printf("  %-12s peak=%.1f MW avg=%.1f MW energy=%.0f MWh\n",
				s.Label, s.PeakMW, s.AverageMW, s.TotalMWh)
		}
	}

	fmt.Println("Top peak days:")
	for i, d := range analysis.RankPeakDays(res.Rows, 5) {
		fmt.Printf("  %d. %s (%s) peak=%.1f MW avg=%.1f MW\n",
			i+1, d.Date, d.DayType, d.PeakMW, d.AverageMW)
	}

	if res.Validation.AllPass {
		fmt.Println("Validation: all years within tolerance")
	} else {
		fmt.Println("Validation: FAILED for one or more years")
		for _, y := range res.Validation.Years {
			if !y.Pass {
				fmt.Printf("  FY%d: generated=%.0f MWh target=%.0f MWh error=%.2f%%\n",
					y.Year, y.GeneratedMWh, y.TargetMWh, y.ErrorPct)
			}
		}
	}
}

func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML profile config")
	dataPath := fs.String("data", "", "Optional: override the config's data_source")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Config OK: profile %q, FY%d..FY%d, method=%s\n",
		cfg.Profile.Name, cfg.Profile.StartYear, cfg.Profile.EndYear, cfg.Profile.Method)

	records := loadHistory(cfg, *dataPath)
	fmt.Printf("History: %d hourly records, %s .. %s\n",
		len(records),
		records[0].Timestamp.Format("2006-01-02 15:04"),
		records[len(records)-1].Timestamp.Format("2006-01-02 15:04"))

	byYear := map[int]int{}
	for _, r := range records {
		byYear[r.FiscalYear]++
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		fmt.Printf("  FY%d: %d hours\n", y, byYear[y])
	}

	holidays := calendar.DetectHolidays(records)
	fmt.Printf("Detected %d holiday candidates\n", len(holidays))
}

func cmdPatterns(args []string) {
	fs := flag.NewFlagSet("patterns", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to historical demand CSV")
	decompose := fs.Bool("decompose", false, "Also run the weekly decomposition")
	_ = fs.Parse(args)

	if *dataPath == "" {
		fmt.Println("--data is required")
		os.Exit(2)
	}

	records, err := data.LoadHistoryCSV(*dataPath)
	if err != nil {
		fatal(err)
	}
	records = calendar.ApplyHolidays(records, calendar.DetectHolidays(records))

	bundle, err := pattern.Extract(records, pattern.Options{WithDecomposition: *decompose})
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Base load (P05): %.1f MW  Peak: %.1f MW  Base/Peak: %.3f\n",
		bundle.BaseLoadMW, bundle.PeakMW, bundle.BaseToPeakRatio)

	for _, dt := range []model.DayType{model.DayWeekday, model.DayWeekend, model.DayHoliday} {
		table, ok := bundle.Hourly[dt]
		if !ok {
			continue
		}
		fmt.Printf("\n%s hourly shape (reduction %.3f):\n", dt, bundle.ReductionFor(dt))
		for h := 0; h < 24; h++ {
			if table[h].Count == 0 {
				continue
			}
			fmt.Printf("  %02d:00  mean=%.1f MW  shape=%.3f  n=%d\n",
				h, table[h].MeanMW, table[h].ShapeFactor, table[h].Count)
		}
	}

	fmt.Println("\nMonthly factors:")
	for m := 1; m <= 12; m++ {
		ms, ok := bundle.Monthly[m]
		if !ok {
			continue
		}
		fmt.Printf("  %s  mean=%.1f MW  factor=%.3f\n", calendar.FiscalMonthNames[m-1], ms.MeanMW, ms.Factor)
	}

	if bundle.Decomposition != nil {
		d := bundle.Decomposition
		fmt.Printf("\nDecomposition: trend mean=%.1f MW  seasonal amplitude=%.1f MW\n", d.TrendMeanMW, d.SeasonalAmplitude)
		fmt.Printf("  trend strength=%.3f  seasonal strength=%.3f\n", d.TrendStrength, d.SeasonalStrength)
	} else if *decompose {
		fmt.Println("\nDecomposition: skipped (needs at least two weeks of data)")
	}
}

func loadHistory(cfg *config.Config, override string) []model.HourlyRecord {
	source := cfg.Profile.DataSource
	if override != "" {
		source = override
	}
	if source == "" {
		fmt.Println("no data source: set profile.data_source or pass --data")
		os.Exit(2)
	}
	path := data.ResolveSource(source, data.GetDefaultSourcesPath())
	records, err := data.LoadHistoryCSV(path)
	if err != nil {
		fatal(err)
	}
	return records
}

// loadTargets resolves annual targets in precedence order: an explicit
// targets file, then a forecast service URL (flag over config), then none.
func loadTargets(cfg *config.Config, path, urlOverride string) targets.Annual {
	if path != "" {
		var (
			annual targets.Annual
			err    error
		)
		if strings.HasSuffix(strings.ToLower(path), ".json") {
			annual, err = data.LoadTargetsJSON(path)
		} else {
			annual, err = data.LoadTargetsCSV(path)
		}
		if err != nil {
			fatal(err)
		}
		return annual
	}

	baseURL := urlOverride
	if baseURL == "" {
		baseURL = cfg.Profile.ForecastURL
	}
	if baseURL != "" {
		client := data.NewForecastClient(baseURL)
		annual, err := client.FetchTargets(cfg.Profile.Name, cfg.Profile.StartYear, cfg.Profile.EndYear)
		if err != nil {
			fatal(err)
		}
		return annual
	}

	return targets.Annual{}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
