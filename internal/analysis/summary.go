// Package analysis derives reporting rollups from a generated profile. It
// is a read-only layer: summaries never feed back into synthesis.
package analysis

import (
	"fmt"
	"sort"

	"demand-profile/internal/calendar"
	"demand-profile/internal/model"
)

// PeriodSummary is one Peak/Min/Average/Total/LoadFactor rollup row.
type PeriodSummary struct {
	Label string

	FiscalYear  int
	FiscalMonth int
	Season      model.Season

	Hours      int
	PeakMW     float64
	MinMW      float64
	AverageMW  float64
	TotalMWh   float64
	LoadFactor float64
}

func summarize(label string, vals []float64) PeriodSummary {
	s := PeriodSummary{Label: label, Hours: len(vals)}
	if len(vals) == 0 {
		return s
	}
	s.MinMW, s.PeakMW = model.MinMax(vals)
	s.AverageMW = model.Mean(vals)
	for _, v := range vals {
		s.TotalMWh += v
	}
	if s.PeakMW > 0 {
		s.LoadFactor = s.AverageMW / s.PeakMW
	}
	return s
}

// ByYear rolls the profile up per fiscal year, sorted ascending.
func ByYear(rows []model.ProfileRow) []PeriodSummary {
	grouped := map[int][]float64{}
	for _, r := range rows {
		grouped[r.FiscalYear] = append(grouped[r.FiscalYear], r.DemandMW)
	}
	years := make([]int, 0, len(grouped))
	for y := range grouped {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]PeriodSummary, 0, len(years))
	for _, y := range years {
		s := summarize(fmt.Sprintf("FY%d", y), grouped[y])
		s.FiscalYear = y
		out = append(out, s)
	}
	return out
}

// ByFiscalMonth rolls up per (fiscal year, fiscal month), fiscal order.
func ByFiscalMonth(rows []model.ProfileRow) []PeriodSummary {
	type key struct{ year, fm int }
	grouped := map[key][]float64{}
	for _, r := range rows {
		k := key{r.FiscalYear, r.FiscalMonth}
		grouped[k] = append(grouped[k], r.DemandMW)
	}
	keys := make([]key, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].fm < keys[j].fm
	})

	out := make([]PeriodSummary, 0, len(keys))
	for _, k := range keys {
		s := summarize(fmt.Sprintf("FY%d %s", k.year, calendar.FiscalMonthNames[k.fm-1]), grouped[k])
		s.FiscalYear = k.year
		s.FiscalMonth = k.fm
		out = append(out, s)
	}
	return out
}

// BySeason rolls up per (fiscal year, season).
func BySeason(rows []model.ProfileRow) []PeriodSummary {
	type key struct {
		year   int
		season model.Season
	}
	grouped := map[key][]float64{}
	for _, r := range rows {
		k := key{r.FiscalYear, r.Season}
		grouped[k] = append(grouped[k], r.DemandMW)
	}
	seasonOrder := map[model.Season]int{
		model.SeasonSummer:      0,
		model.SeasonMonsoon:     1,
		model.SeasonPostMonsoon: 2,
		model.SeasonWinter:      3,
	}
	keys := make([]key, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return seasonOrder[keys[i].season] < seasonOrder[keys[j].season]
	})

	out := make([]PeriodSummary, 0, len(keys))
	for _, k := range keys {
		s := summarize(fmt.Sprintf("FY%d %s", k.year, k.season), grouped[k])
		s.FiscalYear = k.year
		s.Season = k.season
		out = append(out, s)
	}
	return out
}

// DayPeak is one calendar day's peak for ranking.
type DayPeak struct {
	Date      string
	DayType   model.DayType
	PeakMW    float64
	AverageMW float64
}

// RankPeakDays returns the top n days by peak demand, descending.
func RankPeakDays(rows []model.ProfileRow, n int) []DayPeak {
	type agg struct {
		dayType model.DayType
		peak    float64
		sum     float64
		count   int
	}
	byDay := map[string]*agg{}
	for _, r := range rows {
		key := r.DateTime.Format("2006-01-02")
		a, ok := byDay[key]
		if !ok {
			a = &agg{dayType: r.DayType}
			byDay[key] = a
		}
		if r.DemandMW > a.peak {
			a.peak = r.DemandMW
		}
		a.sum += r.DemandMW
		a.count++
	}

	out := make([]DayPeak, 0, len(byDay))
	for date, a := range byDay {
		out = append(out, DayPeak{
			Date:      date,
			DayType:   a.dayType,
			PeakMW:    a.peak,
			AverageMW: a.sum / float64(a.count),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PeakMW != out[j].PeakMW {
			return out[i].PeakMW > out[j].PeakMW
		}
		return out[i].Date < out[j].Date
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
