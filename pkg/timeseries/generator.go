// Package timeseries composes revenue streams, cost categories, and
// per-customer spend drivers into an ordered sequence of per-period forecast
// records. Generation is a pure function of its inputs.
package timeseries

import (
	"fmt"

	"github.com/venuemetrics/product-forecast/pkg/growth"
	"github.com/venuemetrics/product-forecast/pkg/model"
)

// Generate produces the forecast series for periods 1..periods. A horizon of
// zero or less yields an empty series, not an error. Negative growth may
// drive revenue or costs negative; values are never clamped. Totals
// accumulate in declaration order (per-customer components, then streams,
// then categories) so identical inputs always sum to identical floats.
func Generate(m model.FinancialModel, periods int) ([]model.ForecastPeriodData, error) {
	series := make([]model.ForecastPeriodData, 0, max(periods, 0))
	var cumulativeRevenue, cumulativeCosts, cumulativeProfit float64

	for p := 1; p <= periods; p++ {
		record := model.ForecastPeriodData{
			Period:           p,
			RevenueBreakdown: make(map[string]float64),
			CostBreakdown:    make(map[string]float64),
		}

		covered := make(map[string]bool)
		if m.PerCustomer != nil {
			if err := applyPerCustomer(&record, m.PerCustomer, p, covered); err != nil {
				return nil, err
			}
		}

		for _, stream := range m.RevenueStreams {
			if covered[stream.Name] {
				continue
			}
			if stream.Kind == model.KindOneTime && p > 1 {
				continue
			}
			value, err := growth.Evaluate(stream.Value, p, m.GrowthModel)
			if err != nil {
				return nil, fmt.Errorf("revenue stream %s: %w", stream.Name, err)
			}
			record.RevenueBreakdown[stream.Name] += value
			record.Revenue += value
		}

		for _, category := range m.CostCategories {
			if category.Kind == model.KindOneTime && p > 1 {
				continue
			}
			value, err := growth.Evaluate(category.Value, p, m.GrowthModel)
			if err != nil {
				return nil, fmt.Errorf("cost category %s: %w", category.Name, err)
			}
			record.CostBreakdown[category.Name] += value
			record.Costs += value
		}

		record.Profit = record.Revenue - record.Costs

		cumulativeRevenue += record.Revenue
		cumulativeCosts += record.Costs
		cumulativeProfit += record.Profit
		record.CumulativeRevenue = cumulativeRevenue
		record.CumulativeCosts = cumulativeCosts
		record.CumulativeProfit = cumulativeProfit

		series = append(series, record)
	}

	return series, nil
}

// applyPerCustomer fills the five attendance-driven revenue components for one
// period. Attendance compounds from the base attendance via the driver's own
// growth rate; each spend field may additionally carry its own schedule.
func applyPerCustomer(record *model.ForecastPeriodData, pc *model.PerCustomerSpend, period int, covered map[string]bool) error {
	attendance, err := growth.Evaluate(pc.BaseAttendance, period, model.GrowthModel{
		Type: model.GrowthExponential,
		Rate: pc.AttendanceGrowthRate,
	})
	if err != nil {
		return fmt.Errorf("attendance driver: %w", err)
	}
	record.Attendance = &attendance

	components := []struct {
		name   string
		base   float64
		growth *model.GrowthModel
	}{
		{model.StreamTicketSales, pc.TicketPrice, pc.TicketPriceGrowth},
		{model.StreamFBSales, pc.FBSpend, pc.FBSpendGrowth},
		{model.StreamMerchandiseSales, pc.MerchandiseSpend, pc.MerchandiseSpendGrowth},
		{model.StreamOnlineSales, pc.OnlineSpend, pc.OnlineSpendGrowth},
		{model.StreamMiscellaneousRevenue, pc.MiscSpend, pc.MiscSpendGrowth},
	}

	for _, component := range components {
		spend := component.base
		if component.growth != nil {
			spend, err = growth.Evaluate(component.base, period, *component.growth)
			if err != nil {
				return fmt.Errorf("per-customer component %s: %w", component.name, err)
			}
		}
		value := attendance * spend
		record.RevenueBreakdown[component.name] = value
		record.Revenue += value
		covered[component.name] = true
	}

	return nil
}
