package pattern

import (
	"math"

	"demand-profile/internal/model"
)

// seasonalPeriodHours is the weekly seasonal period for hourly demand.
const seasonalPeriodHours = 168

// Decomposition is an additive trend/seasonal/residual split of the
// historical hourly series, aligned to its index.
type Decomposition struct {
	Trend    []float64
	Seasonal []float64
	Residual []float64

	// Period is the seasonal period in hours (168 = weekly).
	Period int

	// SeasonalPattern is the repeating per-slot seasonal component,
	// centered around zero, length Period.
	SeasonalPattern []float64

	TrendMeanMW       float64
	SeasonalAmplitude float64
	ResidualVariance  float64

	TrendStrength    float64
	SeasonalStrength float64
}

// Decompose performs a classical additive decomposition: centered
// moving-average trend, per-slot seasonal averaging of the detrended
// series, residual as the remainder.
func Decompose(data []float64, period int) *Decomposition {
	n := len(data)
	if n < 2*period {
		return nil
	}

	d := &Decomposition{
		Trend:    movingAverage(data, period+1),
		Seasonal: make([]float64, n),
		Residual: make([]float64, n),
		Period:   period,
	}

	detrended := make([]float64, n)
	for i := range data {
		detrended[i] = data[i] - d.Trend[i]
	}
	d.SeasonalPattern = seasonalPattern(detrended, period)

	for i := range data {
		d.Seasonal[i] = d.SeasonalPattern[i%period]
		d.Residual[i] = data[i] - d.Trend[i] - d.Seasonal[i]
	}

	d.TrendMeanMW = model.Mean(d.Trend)
	minS, maxS := model.MinMax(d.SeasonalPattern)
	d.SeasonalAmplitude = (maxS - minS) / 2
	d.ResidualVariance = model.Variance(d.Residual)
	d.TrendStrength, d.SeasonalStrength = strengths(d)

	return d
}

// strengths measures how much variance each component explains:
// 1 - Var(residual)/Var(residual+component), clamped to [0,1].
func strengths(d *Decomposition) (trend, seasonal float64) {
	n := len(d.Residual)
	varResid := model.Variance(d.Residual)

	withTrend := make([]float64, n)
	withSeasonal := make([]float64, n)
	for i := 0; i < n; i++ {
		withTrend[i] = d.Residual[i] + d.Trend[i]
		withSeasonal[i] = d.Residual[i] + d.Seasonal[i]
	}

	if v := model.Variance(withTrend); v > 0 {
		trend = clamp01(1 - varResid/v)
	}
	if v := model.Variance(withSeasonal); v > 0 {
		seasonal = clamp01(1 - varResid/v)
	}
	return trend, seasonal
}

func movingAverage(data []float64, window int) []float64 {
	n := len(data)
	out := make([]float64, n)
	half := window / 2
	for i := 0; i < n; i++ {
		start := i - half
		end := i + half + 1
		if start < 0 {
			start = 0
		}
		if end > n {
			end = n
		}
		sum := 0.0
		for j := start; j < end; j++ {
			sum += data[j]
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// seasonalPattern averages detrended values per slot and centers the
// pattern around zero.
func seasonalPattern(detrended []float64, period int) []float64 {
	pattern := make([]float64, period)
	counts := make([]int, period)
	for i, v := range detrended {
		pattern[i%period] += v
		counts[i%period]++
	}
	for i := range pattern {
		if counts[i] > 0 {
			pattern[i] /= float64(counts[i])
		}
	}
	avg := model.Mean(pattern)
	for i := range pattern {
		pattern[i] -= avg
	}
	return pattern
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
