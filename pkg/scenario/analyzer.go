package scenario

import (
	"github.com/venuemetrics/product-forecast/pkg/mathutil"
	"github.com/venuemetrics/product-forecast/pkg/metrics"
	"github.com/venuemetrics/product-forecast/pkg/model"
	"github.com/venuemetrics/product-forecast/pkg/timeseries"
)

// Analyze runs the full pipeline against the baseline and the best/worst
// presets, then sweeps the sensitivity range for revenue-only and cost-only
// perturbations.
func Analyze(baseline model.FinancialModel, periods int, discountRate float64) (model.ScenarioAnalysis, error) {
	baseSeries, err := timeseries.Generate(baseline, periods)
	if err != nil {
		return model.ScenarioAnalysis{}, err
	}
	bestSeries, err := timeseries.Generate(presetModel(baseline, BestCaseRevenueShiftPercent, BestCaseCostShiftPercent), periods)
	if err != nil {
		return model.ScenarioAnalysis{}, err
	}
	worstSeries, err := timeseries.Generate(presetModel(baseline, WorstCaseRevenueShiftPercent, WorstCaseCostShiftPercent), periods)
	if err != nil {
		return model.ScenarioAnalysis{}, err
	}

	analysis := model.ScenarioAnalysis{
		BaseCase:  metrics.Compute(baseSeries, discountRate),
		BestCase:  metrics.Compute(bestSeries, discountRate),
		WorstCase: metrics.Compute(worstSeries, discountRate),
	}
	analysis.Sensitivity = model.SensitivityAnalysis{
		RevenueImpact: sensitivityCurve(baseSeries, analysis.BaseCase.NPV, discountRate, perturbRevenue),
		CostImpact:    sensitivityCurve(baseSeries, analysis.BaseCase.NPV, discountRate, perturbCosts),
	}

	return analysis, nil
}

type perturbation int

const (
	perturbRevenue perturbation = iota
	perturbCosts
)

// sensitivityCurve varies one side of the P&L by each step percentage while
// holding the other side fixed, and records the relative NPV change.
func sensitivityCurve(series []model.ForecastPeriodData, baseNPV, discountRate float64, side perturbation) []model.SensitivityPoint {
	steps := int(SensitivityRangePercent / SensitivityStepPercent)
	points := make([]model.SensitivityPoint, 0, 2*steps+1)

	for step := -steps; step <= steps; step++ {
		change := float64(step) * SensitivityStepPercent
		factor := 1 + change/100

		profits := make([]float64, len(series))
		for i, record := range series {
			if side == perturbRevenue {
				profits[i] = record.Revenue*factor - record.Costs
			} else {
				profits[i] = record.Revenue - record.Costs*factor
			}
		}

		npv := metrics.NetPresentValue(profits, discountRate)
		points = append(points, model.SensitivityPoint{
			Change:    change,
			NPVChange: mathutil.RelativeChangePercent(npv, baseNPV),
		})
	}

	return points
}
