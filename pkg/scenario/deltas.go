// Package scenario transforms baseline assumption sets with parameter deltas
// and orchestrates base/best/worst comparison and sensitivity analysis.
package scenario

import (
	"sort"
	"strings"

	"github.com/venuemetrics/product-forecast/pkg/constants"
	"github.com/venuemetrics/product-forecast/pkg/model"
)

// ApplyDeltas returns a new FinancialModel with the deltas applied. The
// baseline is never mutated; an all-neutral delta set reproduces it exactly.
func ApplyDeltas(baseline model.FinancialModel, deltas model.ScenarioParameterDeltas) model.FinancialModel {
	adjusted := baseline.Clone()

	if pc := adjusted.PerCustomer; pc != nil {
		// ticketPriceDelta is the newer, more specific mechanism and takes
		// precedence over the legacy pricingPercent when both are present.
		switch {
		case deltas.TicketPriceDelta != nil:
			pc.TicketPrice = applyValueDelta(pc.TicketPrice, *deltas.TicketPriceDelta)
		case deltas.PricingPercent != 0:
			pc.TicketPrice *= 1 + deltas.PricingPercent/constants.PercentageMultiplier
		}

		if deltas.FBSpendDelta != nil {
			pc.FBSpend = applyValueDelta(pc.FBSpend, *deltas.FBSpendDelta)
		}
		if deltas.MerchSpendDelta != nil {
			pc.MerchandiseSpend = applyValueDelta(pc.MerchandiseSpend, *deltas.MerchSpendDelta)
		}

		// Attendance growth shifts in rate space, additively.
		if deltas.AttendanceGrowthPercent != 0 {
			pc.AttendanceGrowthRate += deltas.AttendanceGrowthPercent / constants.PercentageMultiplier
		}
	}

	for i := range adjusted.CostCategories {
		category := &adjusted.CostCategories[i]

		if percent, ok := channelPercent(deltas.MarketingSpendByChannel, category.Name); ok {
			category.Value *= 1 + percent/constants.PercentageMultiplier
		} else if deltas.MarketingSpendPercent != 0 && isMarketingCategory(category.Name) {
			category.Value *= 1 + deltas.MarketingSpendPercent/constants.PercentageMultiplier
		}

		if deltas.CogsMultiplier != nil && category.IsCOGS {
			category.Value *= *deltas.CogsMultiplier
		}
	}

	return adjusted
}

func applyValueDelta(value float64, delta model.ValueDelta) float64 {
	if delta.Type == model.DeltaAbsolute {
		return value + delta.Value
	}
	return value * (1 + delta.Value/constants.PercentageMultiplier)
}

// channelPercent matches a cost category against the per-channel marketing
// map: an exact (case-insensitive) name match wins over a category name
// containing the channel key. Candidates are checked in sorted key order so
// overlapping channel keys resolve the same way on every run.
func channelPercent(byChannel map[string]float64, categoryName string) (float64, bool) {
	if len(byChannel) == 0 {
		return 0, false
	}

	channels := make([]string, 0, len(byChannel))
	for channel := range byChannel {
		channels = append(channels, channel)
	}
	sort.Strings(channels)

	for _, channel := range channels {
		if strings.EqualFold(channel, categoryName) {
			return byChannel[channel], true
		}
	}

	loweredName := strings.ToLower(categoryName)
	for _, channel := range channels {
		if strings.Contains(loweredName, strings.ToLower(channel)) {
			return byChannel[channel], true
		}
	}
	return 0, false
}

// isMarketingCategory flags categories subject to the blanket marketing
// spend adjustment.
func isMarketingCategory(name string) bool {
	return strings.Contains(strings.ToLower(name), "marketing")
}
