package synth

import (
	"errors"
	"math"
	"math/rand"

	"demand-profile/internal/calendar"
)

// DecompositionStrategy rebuilds demand from the historical trend/seasonal/
// residual split, scaled per target year. Output is in MW; callers apply
// the annual target scaler afterwards.
type DecompositionStrategy struct {
	// Seed fixes the residual-noise stream so runs are reproducible.
	Seed int64
}

const (
	noiseDamping  = 0.3
	trendFloorPct = 0.10
)

func (s *DecompositionStrategy) Name() string { return "decomposition" }

func (s *DecompositionStrategy) Synthesize(ctx Context) ([]float64, error) {
	if ctx.Bundle == nil || ctx.Bundle.Decomposition == nil {
		return nil, errors.New("decomposition strategy requires a decomposed pattern bundle")
	}
	d := ctx.Bundle.Decomposition

	seed := s.Seed
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))

	residStd := math.Sqrt(d.ResidualVariance)

	out := make([]float64, len(ctx.Rows))
	for i, row := range ctx.Rows {
		gf := 1.0
		if ctx.GrowthFactor != nil {
			gf = ctx.GrowthFactor(row.FiscalYear)
		}

		trend := d.TrendMeanMW * gf
		// Weekly seasonal slot for this hour of the fiscal year.
		slot := (calendar.DayOfFiscalYear(row.DateTime)*24 + row.Hour) % d.Period
		seasonal := d.SeasonalPattern[slot] * gf

		v := (trend + seasonal) * ctx.Bundle.ReductionFor(row.DayType)
		v += rng.NormFloat64() * residStd * gf * noiseDamping

		// Floor at 10% of the scaled trend to keep demand physical.
		if floor := trend * trendFloorPct; v < floor {
			v = floor
		}
		out[i] = v
	}
	return out, nil
}
