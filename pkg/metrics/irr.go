package metrics

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoConvergence indicates the IRR root search found no sign change in the
// bounded interval. Callers treat the metric as undefined, not as a failure
// of the whole metrics bundle.
var ErrNoConvergence = errors.New("irr search did not converge")

// IRR search parameters. The interval is wide enough for any realistic
// product forecast; flows whose root lies outside it report no convergence.
const (
	irrSearchMin     = -0.99
	irrSearchMax     = 10.0
	irrMaxIterations = 200
	irrTolerance     = 1e-7
)

// InternalRateOfReturn finds the discount rate at which the cash flows' net
// present value is zero, by bisection over [irrSearchMin, irrSearchMax].
func InternalRateOfReturn(cashFlows []float64) (float64, error) {
	if len(cashFlows) == 0 {
		return 0, fmt.Errorf("%w: empty cash flow series", ErrNoConvergence)
	}

	// A root requires the flows to change sign at least once.
	hasPositive := false
	hasNegative := false
	for _, cashFlow := range cashFlows {
		if cashFlow > 0 {
			hasPositive = true
		}
		if cashFlow < 0 {
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return 0, fmt.Errorf("%w: cash flows never change sign", ErrNoConvergence)
	}

	low, high := irrSearchMin, irrSearchMax
	npvLow := NetPresentValue(cashFlows, low)
	npvHigh := NetPresentValue(cashFlows, high)
	if npvLow*npvHigh > 0 {
		return 0, fmt.Errorf("%w: no root in search interval [%.2f, %.2f]", ErrNoConvergence, low, high)
	}

	for i := 0; i < irrMaxIterations; i++ {
		mid := (low + high) / 2
		npvMid := NetPresentValue(cashFlows, mid)

		if math.Abs(npvMid) < irrTolerance || (high-low)/2 < irrTolerance {
			return mid, nil
		}

		if npvLow*npvMid < 0 {
			high = mid
		} else {
			low = mid
			npvLow = npvMid
		}
	}

	return (low + high) / 2, nil
}
