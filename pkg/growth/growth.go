// Package growth evaluates growth curves: the pure function mapping a base
// value, a 1-indexed period, and a growth model to a projected value.
package growth

import (
	"errors"
	"fmt"
	"math"

	"github.com/venuemetrics/product-forecast/pkg/model"
)

// ErrInvalidGrowthModel indicates a malformed growth specification. It is
// fatal to the single computation that hit it and is never retried.
var ErrInvalidGrowthModel = errors.New("invalid growth model")

// Evaluate projects a base value to the given period. Period 1 always returns
// the base unmodified; growth compounds starting at period 2. Negative rates
// are permitted and model decline.
func Evaluate(base float64, period int, gm model.GrowthModel) (float64, error) {
	if period <= 1 {
		return base, nil
	}

	switch gm.Type {
	case model.GrowthLinear:
		return base * (1 + gm.Rate*float64(period-1)), nil
	case model.GrowthExponential:
		return base * math.Pow(1+gm.Rate, float64(period-1)), nil
	case model.GrowthSeasonal:
		if len(gm.SeasonalFactors) == 0 {
			return 0, fmt.Errorf("%w: seasonal model requires at least one seasonal factor", ErrInvalidGrowthModel)
		}
		factor := gm.SeasonalFactors[(period-1)%len(gm.SeasonalFactors)]
		return base * math.Pow(1+gm.Rate, float64(period-1)) * factor, nil
	default:
		return 0, fmt.Errorf("%w: unknown growth type %q", ErrInvalidGrowthModel, gm.Type)
	}
}
