package scenario

import (
	"github.com/venuemetrics/product-forecast/pkg/constants"
	"github.com/venuemetrics/product-forecast/pkg/model"
)

// Preset shift magnitudes for the best/worst case profiles and the
// sensitivity sweep.
const (
	// BestCaseRevenueShiftPercent scales every revenue source up in the best case.
	BestCaseRevenueShiftPercent = 10.0

	// BestCaseCostShiftPercent scales every cost category down in the best case.
	BestCaseCostShiftPercent = -10.0

	// WorstCaseRevenueShiftPercent mirrors the best case downward.
	WorstCaseRevenueShiftPercent = -10.0

	// WorstCaseCostShiftPercent mirrors the best case upward.
	WorstCaseCostShiftPercent = 10.0

	// SensitivityRangePercent bounds the symmetric perturbation sweep.
	SensitivityRangePercent = 20.0

	// SensitivityStepPercent is the sweep increment.
	SensitivityStepPercent = 5.0
)

// presetModel produces the best/worst case assumption set: every revenue
// source (streams and per-customer spends) scaled by the revenue shift, every
// cost category scaled by the cost shift. The baseline is cloned, not mutated.
func presetModel(baseline model.FinancialModel, revenueShiftPercent, costShiftPercent float64) model.FinancialModel {
	adjusted := baseline.Clone()
	revenueFactor := 1 + revenueShiftPercent/constants.PercentageMultiplier
	costFactor := 1 + costShiftPercent/constants.PercentageMultiplier

	for i := range adjusted.RevenueStreams {
		adjusted.RevenueStreams[i].Value *= revenueFactor
	}
	if pc := adjusted.PerCustomer; pc != nil {
		pc.TicketPrice *= revenueFactor
		pc.FBSpend *= revenueFactor
		pc.MerchandiseSpend *= revenueFactor
		pc.OnlineSpend *= revenueFactor
		pc.MiscSpend *= revenueFactor
	}
	for i := range adjusted.CostCategories {
		adjusted.CostCategories[i].Value *= costFactor
	}

	return adjusted
}
