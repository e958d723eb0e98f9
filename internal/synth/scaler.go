package synth

import (
	"fmt"

	"demand-profile/internal/model"
	"demand-profile/internal/targets"
)

// ScaleToEnvelopes maps normalized values into each month's Max/Min
// envelope: demand = min + normalized * (max - min), per (year, fiscal
// month) cell. Cells without an envelope scale to zero, the documented
// fallback when no targets exist.
func ScaleToEnvelopes(rows []model.ProfileRow, normalized []float64, envs map[targets.Key]targets.Envelope) ([]float64, error) {
	if len(rows) != len(normalized) {
		return nil, fmt.Errorf("row/value length mismatch: %d vs %d", len(rows), len(normalized))
	}
	out := make([]float64, len(rows))
	for i, row := range rows {
		env, ok := envs[targets.Key{Year: row.FiscalYear, FiscalMonth: row.FiscalMonth}]
		if !ok {
			continue
		}
		out[i] = env.MinMW + normalized[i]*(env.MaxMW-env.MinMW)
	}
	return out, nil
}

// ScaleToAnnual uniformly rescales each targeted year so its generated
// energy matches the annual target. Years without an explicit target are
// left untouched.
func ScaleToAnnual(rows []model.ProfileRow, values []float64, annual targets.Annual) ([]float64, error) {
	if len(rows) != len(values) {
		return nil, fmt.Errorf("row/value length mismatch: %d vs %d", len(rows), len(values))
	}

	generated := map[int]float64{}
	for i, row := range rows {
		generated[row.FiscalYear] += values[i]
	}

	scale := map[int]float64{}
	for year, target := range annual {
		if gen := generated[year]; gen > 0 && target > 0 {
			scale[year] = target / gen
		}
	}

	out := make([]float64, len(values))
	copy(out, values)
	if len(scale) == 0 {
		return out, nil
	}
	for i, row := range rows {
		if s, ok := scale[row.FiscalYear]; ok {
			out[i] *= s
		}
	}
	return out, nil
}
