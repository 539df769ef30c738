// Package engine is the single entry point to the forecasting core. It wires
// together time-series generation, scenario application, metric computation,
// scenario analysis and variance reconciliation behind one facade.
package engine

import (
	"go.uber.org/zap"

	"github.com/venuemetrics/product-forecast/pkg/metrics"
	"github.com/venuemetrics/product-forecast/pkg/model"
	"github.com/venuemetrics/product-forecast/pkg/scenario"
	"github.com/venuemetrics/product-forecast/pkg/timeseries"
	"github.com/venuemetrics/product-forecast/pkg/variance"
)

// Engine exposes the forecasting operations. All operations are deterministic
// and side-effect free; the engine holds no state beyond its logger.
type Engine struct {
	logger *zap.Logger
}

// New creates an engine. A nil logger disables logging.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// GenerateForecast produces a time series of the given length from the model's
// assumptions.
func (e *Engine) GenerateForecast(m model.FinancialModel, periods int) ([]model.ForecastPeriodData, error) {
	series, err := timeseries.Generate(m, periods)
	if err != nil {
		e.logger.Error("forecast generation failed",
			zap.String("op", "engine.GenerateForecast"),
			zap.String("modelId", m.ID),
			zap.Error(err))
		return nil, err
	}
	e.logger.Debug("generated forecast",
		zap.String("op", "engine.GenerateForecast"),
		zap.String("modelId", m.ID),
		zap.Int("periods", periods))
	return series, nil
}

// ApplyScenarioDeltas returns a copy of baseline with the deltas applied. The
// baseline is never modified.
func (e *Engine) ApplyScenarioDeltas(baseline model.FinancialModel, deltas model.ScenarioParameterDeltas) model.FinancialModel {
	adjusted := scenario.ApplyDeltas(baseline, deltas)
	e.logger.Debug("applied scenario deltas",
		zap.String("op", "engine.ApplyScenarioDeltas"),
		zap.String("modelId", baseline.ID))
	return adjusted
}

// ComputeMetrics derives aggregate metrics from a generated series.
func (e *Engine) ComputeMetrics(series []model.ForecastPeriodData, discountRate float64) model.FinancialMetrics {
	return metrics.Compute(series, discountRate)
}

// ComputeMetricsWithBreakEven derives aggregate metrics including
// contribution-margin break-even when a unit economics split is supplied.
func (e *Engine) ComputeMetricsWithBreakEven(series []model.ForecastPeriodData, discountRate float64, breakEven *metrics.BreakEvenInputs) model.FinancialMetrics {
	return metrics.ComputeWithBreakEven(series, discountRate, breakEven)
}

// AnalyzeScenario runs base, best-case and worst-case forecasts plus the
// revenue and cost sensitivity sweeps for the baseline model.
func (e *Engine) AnalyzeScenario(baseline model.FinancialModel, periods int, discountRate float64) (model.ScenarioAnalysis, error) {
	analysis, err := scenario.Analyze(baseline, periods, discountRate)
	if err != nil {
		e.logger.Error("scenario analysis failed",
			zap.String("op", "engine.AnalyzeScenario"),
			zap.String("modelId", baseline.ID),
			zap.Error(err))
		return model.ScenarioAnalysis{}, err
	}
	e.logger.Debug("analyzed scenario",
		zap.String("op", "engine.AnalyzeScenario"),
		zap.String("modelId", baseline.ID),
		zap.Float64("baseNPV", analysis.BaseCase.NPV))
	return analysis, nil
}

// ReconcileActuals compares actuals against a forecast series period by
// period.
func (e *Engine) ReconcileActuals(series []model.ForecastPeriodData, actuals []model.ActualRecord) []model.VarianceRecord {
	records := variance.Reconcile(series, actuals)
	e.logger.Debug("reconciled actuals",
		zap.String("op", "engine.ReconcileActuals"),
		zap.Int("actuals", len(actuals)),
		zap.Int("records", len(records)))
	return records
}
