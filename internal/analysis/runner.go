// Package analysis runs the full forecasting workload described by a
// configuration: baseline forecasts per model, scenario comparisons,
// sensitivity analysis, and variance reconciliation against recorded actuals.
package analysis

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/venuemetrics/product-forecast/internal/config"
	"github.com/venuemetrics/product-forecast/pkg/engine"
	"github.com/venuemetrics/product-forecast/pkg/forecastcache"
	"github.com/venuemetrics/product-forecast/pkg/model"
)

// ModelReport is the complete result set for one configured model.
type ModelReport struct {
	Model     model.FinancialModel
	Series    []model.ForecastPeriodData
	Metrics   model.FinancialMetrics
	Analysis  model.ScenarioAnalysis
	Scenarios []ScenarioReport
	Variance  []model.VarianceRecord
}

// ScenarioReport is the forecast for one named scenario applied to its base
// model.
type ScenarioReport struct {
	Scenario model.Scenario
	Series   []model.ForecastPeriodData
	Metrics  model.FinancialMetrics
}

type cachedForecast struct {
	Series  []model.ForecastPeriodData
	Metrics model.FinancialMetrics
}

// Runner executes forecasting workloads. Baseline forecasts are memoized per
// (model version, horizon, discount rate) so repeated runs of the same
// configuration do the math once.
type Runner struct {
	logger *zap.Logger
	engine *engine.Engine
	cache  *forecastcache.Cache
}

// NewRunner constructs a Runner. A nil logger disables logging.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		logger: logger,
		engine: engine.New(logger),
		cache:  forecastcache.New(0),
	}
}

// Run produces a report per configured model.
func (r *Runner) Run(conf *config.Configuration) ([]ModelReport, error) {
	periods := conf.Horizon()
	discountRate := conf.Discount()

	reports := make([]ModelReport, 0, len(conf.Models))
	for _, configured := range conf.Models {
		baseline := configured.ToFinancialModel(conf.Project)

		// Generated IDs change per run, so cache on the configured identity.
		cacheID := configured.ID
		if cacheID == "" {
			cacheID = configured.Name
		}

		series, metrics, err := r.baselineForecast(baseline, cacheID, periods, discountRate)
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", baseline.Name, err)
		}

		scenarioAnalysis, err := r.engine.AnalyzeScenario(baseline, periods, discountRate)
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", baseline.Name, err)
		}

		report := ModelReport{
			Model:    baseline,
			Series:   series,
			Metrics:  metrics,
			Analysis: scenarioAnalysis,
		}

		for _, configuredScenario := range conf.Scenarios {
			if configuredScenario.BaseModel != configured.Name {
				continue
			}
			if !configuredScenario.Active {
				r.logger.Debug("skipping inactive scenario",
					zap.String("op", "analysis.Run"),
					zap.String("scenario", configuredScenario.Name),
					zap.String("model", configured.Name))
				continue
			}

			scenario := configuredScenario.ToScenario(conf.Project)
			adjusted := r.engine.ApplyScenarioDeltas(baseline, scenario.ParameterDeltas)
			scenarioSeries, err := r.engine.GenerateForecast(adjusted, periods)
			if err != nil {
				return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
			}

			report.Scenarios = append(report.Scenarios, ScenarioReport{
				Scenario: scenario,
				Series:   scenarioSeries,
				Metrics:  r.engine.ComputeMetrics(scenarioSeries, discountRate),
			})
		}

		if actuals := conf.ActualsForModel(configured.Name); len(actuals) > 0 {
			report.Variance = r.engine.ReconcileActuals(series, actuals)
		}

		reports = append(reports, report)
	}

	r.logger.Info("analysis complete",
		zap.String("op", "analysis.Run"),
		zap.Int("models", len(reports)),
		zap.Int("periods", periods))

	return reports, nil
}

func (r *Runner) baselineForecast(baseline model.FinancialModel, cacheID string, periods int, discountRate float64) ([]model.ForecastPeriodData, model.FinancialMetrics, error) {
	key := forecastcache.Key{
		ModelID:      fmt.Sprintf("%s:v%d", cacheID, baseline.Version),
		Periods:      periods,
		DiscountRate: discountRate,
	}

	if value, ok := r.cache.Get(key); ok {
		if cached, ok := value.(cachedForecast); ok {
			r.logger.Debug("baseline forecast served from cache",
				zap.String("op", "analysis.baselineForecast"),
				zap.String("modelId", baseline.ID))
			return cached.Series, cached.Metrics, nil
		}
	}

	series, err := r.engine.GenerateForecast(baseline, periods)
	if err != nil {
		return nil, model.FinancialMetrics{}, err
	}
	metrics := r.engine.ComputeMetrics(series, discountRate)

	r.cache.Put(key, cachedForecast{Series: series, Metrics: metrics})
	return series, metrics, nil
}
