package pattern

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompose(t *testing.T) {
	t.Run("Too Short Returns Nil", func(t *testing.T) {
		data := make([]float64, seasonalPeriodHours) // one week only
		assert.Nil(t, Decompose(data, seasonalPeriodHours))
	})

	t.Run("Weekly Sinusoid", func(t *testing.T) {
		// Four weeks of a pure weekly cycle around 100 MW.
		n := 4 * seasonalPeriodHours
		data := make([]float64, n)
		for i := range data {
			data[i] = 100 + 20*math.Sin(2*math.Pi*float64(i)/float64(seasonalPeriodHours))
		}

		d := Decompose(data, seasonalPeriodHours)
		require.NotNil(t, d)

		assert.Equal(t, seasonalPeriodHours, d.Period)
		assert.Len(t, d.SeasonalPattern, seasonalPeriodHours)
		assert.InDelta(t, 100, d.TrendMeanMW, 2.0)
		// Amplitude of the recovered seasonal pattern stays near 20 MW.
		assert.InDelta(t, 20, d.SeasonalAmplitude, 3.0)
		// A pure seasonal signal has high seasonal strength.
		assert.Greater(t, d.SeasonalStrength, 0.9)
	})

	t.Run("Components Reassemble Series", func(t *testing.T) {
		n := 3 * seasonalPeriodHours
		data := make([]float64, n)
		for i := range data {
			data[i] = 50 + 0.01*float64(i) + 5*math.Sin(2*math.Pi*float64(i)/24)
		}

		d := Decompose(data, seasonalPeriodHours)
		require.NotNil(t, d)
		for i := range data {
			sum := d.Trend[i] + d.Seasonal[i] + d.Residual[i]
			assert.InDelta(t, data[i], sum, 1e-9)
		}
	})

	t.Run("Strengths Bounded", func(t *testing.T) {
		n := 2 * seasonalPeriodHours
		data := make([]float64, n)
		for i := range data {
			data[i] = float64((i*7919)%101) + 40 // deterministic noise
		}
		d := Decompose(data, seasonalPeriodHours)
		require.NotNil(t, d)

		assert.GreaterOrEqual(t, d.TrendStrength, 0.0)
		assert.LessOrEqual(t, d.TrendStrength, 1.0)
		assert.GreaterOrEqual(t, d.SeasonalStrength, 0.0)
		assert.LessOrEqual(t, d.SeasonalStrength, 1.0)
	})
}
