package config

import (
	"github.com/google/uuid"

	"github.com/venuemetrics/product-forecast/pkg/constants"
	"github.com/venuemetrics/product-forecast/pkg/model"
)

// Horizon returns the configured forecast length, falling back to the
// default when unset.
func (c *Configuration) Horizon() int {
	if c.Periods > 0 {
		return c.Periods
	}
	return constants.DefaultPeriods
}

// Discount returns the configured discount rate, falling back to the default
// only when the field is absent. An explicit 0 is honored and yields
// undiscounted NPV.
func (c *Configuration) Discount() float64 {
	if c.DiscountRate != nil {
		return *c.DiscountRate
	}
	return constants.DefaultDiscountRate
}

// ToFinancialModel converts a configured model into the engine
// representation, filling defaults for omitted fields. Missing IDs are
// generated so cache keys and log fields always have something to hold on to.
func (m Model) ToFinancialModel(project string) model.FinancialModel {
	out := model.FinancialModel{
		ID:          m.ID,
		ProjectID:   project,
		Name:        m.Name,
		Type:        m.Type,
		GrowthModel: m.Growth.toGrowthModel(),
		Version:     m.Version,
	}
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	if out.Version == 0 {
		out.Version = 1
	}

	for _, stream := range m.RevenueStreams {
		out.RevenueStreams = append(out.RevenueStreams, model.RevenueStream{
			Name:      stream.Name,
			Value:     stream.Value,
			Kind:      defaultKind(stream.Kind),
			Frequency: defaultFrequency(stream.Frequency),
		})
	}
	for _, category := range m.CostCategories {
		out.CostCategories = append(out.CostCategories, model.CostCategory{
			Name:      category.Name,
			Value:     category.Value,
			Kind:      defaultKind(category.Kind),
			Frequency: defaultFrequency(category.Frequency),
			IsCOGS:    category.IsCOGS,
		})
	}

	if m.PerCustomer != nil {
		out.PerCustomer = &model.PerCustomerSpend{
			TicketPrice:            m.PerCustomer.TicketPrice,
			FBSpend:                m.PerCustomer.FBSpend,
			MerchandiseSpend:       m.PerCustomer.MerchandiseSpend,
			OnlineSpend:            m.PerCustomer.OnlineSpend,
			MiscSpend:              m.PerCustomer.MiscSpend,
			BaseAttendance:         m.PerCustomer.BaseAttendance,
			AttendanceGrowthRate:   m.PerCustomer.AttendanceGrowthRate,
			TicketPriceGrowth:      m.PerCustomer.TicketPriceGrowth.toGrowthPointer(),
			FBSpendGrowth:          m.PerCustomer.FBSpendGrowth.toGrowthPointer(),
			MerchandiseSpendGrowth: m.PerCustomer.MerchandiseSpendGrowth.toGrowthPointer(),
			OnlineSpendGrowth:      m.PerCustomer.OnlineSpendGrowth.toGrowthPointer(),
			MiscSpendGrowth:        m.PerCustomer.MiscSpendGrowth.toGrowthPointer(),
		}
		if out.Type == "" {
			out.Type = model.ModelTypeRecurringEvent
		}
	}

	return out
}

// ToScenario converts a configured scenario into the engine representation.
func (s Scenario) ToScenario(project string) model.Scenario {
	out := model.Scenario{
		ID:          s.ID,
		ProjectID:   project,
		BaseModelID: s.BaseModel,
		Name:        s.Name,
		ParameterDeltas: model.ScenarioParameterDeltas{
			MarketingSpendPercent:   s.Deltas.MarketingSpendPercent,
			PricingPercent:          s.Deltas.PricingPercent,
			AttendanceGrowthPercent: s.Deltas.AttendanceGrowthPercent,
			CogsMultiplier:          s.Deltas.CogsMultiplier,
			TicketPriceDelta:        s.Deltas.TicketPriceDelta.toValueDelta(),
			FBSpendDelta:            s.Deltas.FBSpendDelta.toValueDelta(),
			MerchSpendDelta:         s.Deltas.MerchSpendDelta.toValueDelta(),
		},
	}
	if len(s.Deltas.MarketingSpendByChannel) > 0 {
		channels := make(map[string]float64, len(s.Deltas.MarketingSpendByChannel))
		for name, percent := range s.Deltas.MarketingSpendByChannel {
			channels[name] = percent
		}
		out.ParameterDeltas.MarketingSpendByChannel = channels
	}
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	return out
}

// ActualsForModel collects the actuals recorded against the given model, in
// config order.
func (c *Configuration) ActualsForModel(modelName string) []model.ActualRecord {
	var actuals []model.ActualRecord
	for _, actual := range c.Actuals {
		if actual.Model != modelName {
			continue
		}
		actuals = append(actuals, model.ActualRecord{
			Period:  actual.Period,
			Revenue: actual.Revenue,
			Costs:   actual.Costs,
		})
	}
	return actuals
}

func (g Growth) toGrowthModel() model.GrowthModel {
	out := model.GrowthModel{
		Type: g.Type,
		Rate: g.Rate,
	}
	if out.Type == "" {
		out.Type = model.GrowthLinear
	}
	if len(g.SeasonalFactors) > 0 {
		out.SeasonalFactors = append([]float64(nil), g.SeasonalFactors...)
	}
	return out
}

func (g *Growth) toGrowthPointer() *model.GrowthModel {
	if g == nil {
		return nil
	}
	converted := g.toGrowthModel()
	return &converted
}

func (d *Delta) toValueDelta() *model.ValueDelta {
	if d == nil {
		return nil
	}
	return &model.ValueDelta{Type: d.Type, Value: d.Value}
}

func defaultKind(kind string) string {
	if kind == "" {
		return model.KindRecurring
	}
	return kind
}

func defaultFrequency(frequency string) string {
	if frequency == "" {
		return model.FrequencyMonthly
	}
	return frequency
}
