package config

import (
	"fmt"

	"github.com/venuemetrics/product-forecast/pkg/model"
)

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Warnings never block a run; structurally broken models
// fail later with a hard error from the engine.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Models) == 0 {
		warnings = append(warnings, "no models configured; nothing to forecast")
	}
	if c.Periods < 0 {
		warnings = append(warnings, fmt.Sprintf("periods is negative (%d); the default horizon will be used", c.Periods))
	}
	if c.DiscountRate != nil && *c.DiscountRate < 0 {
		warnings = append(warnings, fmt.Sprintf("discountRate is negative (%.4f)", *c.DiscountRate))
	}

	modelNames := make(map[string]bool, len(c.Models))
	for _, m := range c.Models {
		if m.Name == "" {
			warnings = append(warnings, "a model has no name")
			continue
		}
		if modelNames[m.Name] {
			warnings = append(warnings, fmt.Sprintf("duplicate model name %q", m.Name))
		}
		modelNames[m.Name] = true

		if len(m.RevenueStreams) == 0 && m.PerCustomer == nil {
			warnings = append(warnings, fmt.Sprintf("model %q has no revenue streams and no per-customer spend", m.Name))
		}
		if m.Growth.Type == model.GrowthSeasonal && len(m.Growth.SeasonalFactors) == 0 {
			warnings = append(warnings, fmt.Sprintf("model %q uses seasonal growth without seasonal factors", m.Name))
		}

		streamNames := make(map[string]bool, len(m.RevenueStreams))
		for _, stream := range m.RevenueStreams {
			if streamNames[stream.Name] {
				warnings = append(warnings, fmt.Sprintf("model %q has duplicate revenue stream %q", m.Name, stream.Name))
			}
			streamNames[stream.Name] = true
		}
		categoryNames := make(map[string]bool, len(m.CostCategories))
		for _, category := range m.CostCategories {
			if categoryNames[category.Name] {
				warnings = append(warnings, fmt.Sprintf("model %q has duplicate cost category %q", m.Name, category.Name))
			}
			categoryNames[category.Name] = true
		}
	}

	scenarioNames := make(map[string]bool, len(c.Scenarios))
	for _, scenario := range c.Scenarios {
		if scenarioNames[scenario.Name] {
			warnings = append(warnings, fmt.Sprintf("duplicate scenario name %q", scenario.Name))
		}
		scenarioNames[scenario.Name] = true

		if scenario.BaseModel == "" {
			warnings = append(warnings, fmt.Sprintf("scenario %q has no baseModel", scenario.Name))
		} else if !modelNames[scenario.BaseModel] {
			warnings = append(warnings, fmt.Sprintf("scenario %q references unknown baseModel %q", scenario.Name, scenario.BaseModel))
		}
		if scenario.Deltas.CogsMultiplier != nil && *scenario.Deltas.CogsMultiplier < 0 {
			warnings = append(warnings, fmt.Sprintf("scenario %q has a negative cogsMultiplier (%.4f)", scenario.Name, *scenario.Deltas.CogsMultiplier))
		}
	}

	horizon := c.Horizon()
	for _, actual := range c.Actuals {
		if actual.Model != "" && !modelNames[actual.Model] {
			warnings = append(warnings, fmt.Sprintf("actual for period %d references unknown model %q", actual.Period, actual.Model))
		}
		if actual.Period < 1 {
			warnings = append(warnings, fmt.Sprintf("actual for model %q has period %d before the forecast start", actual.Model, actual.Period))
		} else if actual.Period > horizon {
			warnings = append(warnings, fmt.Sprintf("actual for model %q at period %d falls beyond the %d-period horizon", actual.Model, actual.Period, horizon))
		}
	}

	return warnings
}
