package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("Minimal Config With Defaults", func(t *testing.T) {
		path := writeFile(t, dir, "minimal.yaml", `
profile:
  name: statewide
  start_year: 2025
  end_year: 2030
`)
		c, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, MethodNormalizedPattern, c.Profile.Method)
		assert.Equal(t, "apply", c.Profile.MonthlyConstraintMode)
		assert.InDelta(t, 0.03, c.Profile.GrowthRateDefault, 1e-9)
	})

	t.Run("Forecast URL Parsed", func(t *testing.T) {
		path := writeFile(t, dir, "forecast.yaml", `
profile:
  name: statewide
  start_year: 2025
  end_year: 2030
  forecast_url: http://forecast.internal:9000
`)
		c, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://forecast.internal:9000", c.Profile.ForecastURL)
	})

	t.Run("Constraint File Merged With Inline Override", func(t *testing.T) {
		writeFile(t, dir, "constraints.yaml", `
constraints:
  - {year: 2025, month: Apr, max_mw: 210}
  - {year: 2025, month: May, max_mw: 220}
`)
		path := writeFile(t, dir, "merged.yaml", `
profile:
  name: statewide
  start_year: 2025
  end_year: 2026
  method: decomposition
constraint_file: constraints.yaml
constraints:
  - {year: 2025, month: Apr, max_mw: 250}
`)
		c, err := Load(path)
		require.NoError(t, err)
		require.Len(t, c.Constraints, 2)

		byMonth := map[string]float64{}
		for _, mc := range c.Constraints {
			byMonth[mc.Month] = mc.MaxMW
		}
		assert.InDelta(t, 250, byMonth["Apr"], 1e-9) // inline wins
		assert.InDelta(t, 220, byMonth["May"], 1e-9) // file survives
	})

	t.Run("Invalid Year Range Rejected", func(t *testing.T) {
		path := writeFile(t, dir, "badrange.yaml", `
profile:
  start_year: 2030
  end_year: 2025
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("Unsupported Method Rejected", func(t *testing.T) {
		path := writeFile(t, dir, "badmethod.yaml", `
profile:
  start_year: 2025
  end_year: 2026
  method: monte_carlo
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestMergeConstraints(t *testing.T) {
	base := []MonthlyMaxConfig{
		{Year: 2025, Month: "Apr", MaxMW: 100},
		{Year: 2025, Month: "May", MaxMW: 110},
	}
	override := []MonthlyMaxConfig{
		{Year: 2025, Month: "May", MaxMW: 150},
		{Year: 2026, Month: "Jun", MaxMW: 160},
	}

	merged := MergeConstraints(base, override)
	assert.Len(t, merged, 3)

	vals := map[[2]interface{}]float64{}
	for _, m := range merged {
		vals[[2]interface{}{m.Year, m.Month}] = m.MaxMW
	}
	assert.InDelta(t, 100, vals[[2]interface{}{2025, "Apr"}], 1e-9)
	assert.InDelta(t, 150, vals[[2]interface{}{2025, "May"}], 1e-9)
	assert.InDelta(t, 160, vals[[2]interface{}{2026, "Jun"}], 1e-9)
}
