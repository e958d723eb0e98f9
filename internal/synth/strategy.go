// Package synth holds the profile synthesis strategies and the target
// scaler. Both strategies emit values for a prebuilt row structure; the
// scaler turns those values into Demand_MW.
package synth

import (
	"demand-profile/internal/baseyear"
	"demand-profile/internal/model"
	"demand-profile/internal/pattern"
)

// Context carries the frozen inputs of one synthesis run.
type Context struct {
	Rows   []model.ProfileRow
	Curve  *baseyear.Curve
	Bundle *pattern.Bundle

	// GrowthFactor maps a fiscal year to its growth factor.
	GrowthFactor func(year int) float64
}

// Strategy produces one value per row. Normalized-pattern values live in
// [0,1]; decomposition values are in MW.
type Strategy interface {
	Name() string
	Synthesize(ctx Context) ([]float64, error)
}
