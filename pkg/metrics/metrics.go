// Package metrics reduces a forecast time series into summary financial
// metrics: totals, margin, NPV, IRR, ROI, and break-even figures.
package metrics

import (
	"math"

	"github.com/venuemetrics/product-forecast/pkg/mathutil"
	"github.com/venuemetrics/product-forecast/pkg/model"
)

// BreakEvenInputs describes a linear contribution-margin decomposition.
// It is optional; when the model lacks a clean per-unit cost split the
// unit/revenue break-even figures stay undefined.
type BreakEvenInputs struct {
	UnitPrice        float64
	UnitVariableCost float64
	FixedCosts       float64
}

// Compute reduces a series into financial metrics using the given per-period
// discount rate. Zero-denominator ratios resolve to 0; a failed IRR search
// leaves the IRR nil without affecting the rest of the bundle.
func Compute(series []model.ForecastPeriodData, discountRate float64) model.FinancialMetrics {
	return ComputeWithBreakEven(series, discountRate, nil)
}

// ComputeWithBreakEven is Compute plus the optional contribution-margin
// break-even derivation.
func ComputeWithBreakEven(series []model.ForecastPeriodData, discountRate float64, breakEven *BreakEvenInputs) model.FinancialMetrics {
	var m model.FinancialMetrics

	profits := make([]float64, len(series))
	for i, record := range series {
		m.TotalRevenue += record.Revenue
		m.TotalCosts += record.Costs
		m.TotalProfit += record.Profit
		profits[i] = record.Profit

		if m.BreakEvenPeriodIndex == nil && record.CumulativeProfit >= 0 {
			period := record.Period
			m.BreakEvenPeriodIndex = &period
		}
	}

	m.ProfitMargin = mathutil.CalculatePercentage(m.TotalProfit, m.TotalRevenue)
	m.ROI = mathutil.CalculatePercentage(m.TotalProfit, m.TotalCosts)
	m.NPV = NetPresentValue(profits, discountRate)

	if irr, err := InternalRateOfReturn(profits); err == nil {
		m.IRR = &irr
	}

	if breakEven != nil {
		unitMargin := breakEven.UnitPrice - breakEven.UnitVariableCost
		if unitMargin > 0 {
			units := breakEven.FixedCosts / unitMargin
			revenue := units * breakEven.UnitPrice
			m.BreakEvenUnits = &units
			m.BreakEvenRevenue = &revenue
		}
	}

	return m
}

// NetPresentValue discounts the cash flow at index i as period i+1, matching
// the 1-indexed forecast series.
func NetPresentValue(cashFlows []float64, discountRate float64) float64 {
	npv := 0.0
	for i, cashFlow := range cashFlows {
		npv += cashFlow / math.Pow(1+discountRate, float64(i+1))
	}
	return npv
}
