// Package variance reconciles generated forecast series against externally
// supplied actuals, period by period and cumulatively.
package variance

import (
	"sort"

	"github.com/venuemetrics/product-forecast/pkg/mathutil"
	"github.com/venuemetrics/product-forecast/pkg/model"
)

// Reconcile compares actuals against the forecast aligned by period index.
// Variance is actual minus forecast; percentages are guarded against zero
// forecasts. Actuals outside the forecast horizon come back flagged as
// unmatched rather than being dropped or zero-filled. Cumulative variance is
// the running sum over matched periods, in period order.
func Reconcile(series []model.ForecastPeriodData, actuals []model.ActualRecord) []model.VarianceRecord {
	if len(actuals) == 0 {
		return nil
	}

	ordered := append([]model.ActualRecord(nil), actuals...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Period < ordered[j].Period })

	records := make([]model.VarianceRecord, 0, len(ordered))
	var cumulativeRevenueVariance, cumulativeCostVariance float64

	for _, actual := range ordered {
		if actual.Period < 1 || actual.Period > len(series) {
			records = append(records, model.VarianceRecord{
				Period:        actual.Period,
				ActualRevenue: actual.Revenue,
				ActualCosts:   actual.Costs,
				Unmatched:     true,
			})
			continue
		}

		forecast := series[actual.Period-1]
		revenueVariance := actual.Revenue - forecast.Revenue
		costVariance := actual.Costs - forecast.Costs
		cumulativeRevenueVariance += revenueVariance
		cumulativeCostVariance += costVariance

		records = append(records, model.VarianceRecord{
			Period:                    actual.Period,
			ForecastRevenue:           forecast.Revenue,
			ActualRevenue:             actual.Revenue,
			RevenueVariance:           revenueVariance,
			RevenueVariancePercent:    mathutil.CalculatePercentage(revenueVariance, forecast.Revenue),
			ForecastCosts:             forecast.Costs,
			ActualCosts:               actual.Costs,
			CostVariance:              costVariance,
			CostVariancePercent:       mathutil.CalculatePercentage(costVariance, forecast.Costs),
			CumulativeRevenueVariance: cumulativeRevenueVariance,
			CumulativeCostVariance:    cumulativeCostVariance,
		})
	}

	return records
}
