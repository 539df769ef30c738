package config

import (
	"testing"

	"github.com/venuemetrics/product-forecast/pkg/constants"
	"github.com/venuemetrics/product-forecast/pkg/model"
)

func TestToFinancialModelDefaults(t *testing.T) {
	configured := Model{
		Name: "Simple",
		RevenueStreams: []Stream{
			{Name: "Sales", Value: 100.0},
		},
		CostCategories: []Category{
			{Name: "Ops", Value: 40.0},
		},
	}

	converted := configured.ToFinancialModel("proj-1")

	if converted.ID == "" {
		t.Errorf("missing model ID should be generated")
	}
	if converted.ProjectID != "proj-1" {
		t.Errorf("ProjectID = %v, expected proj-1", converted.ProjectID)
	}
	if converted.Version != 1 {
		t.Errorf("Version = %d, expected default 1", converted.Version)
	}
	if converted.GrowthModel.Type != model.GrowthLinear {
		t.Errorf("GrowthModel.Type = %v, expected default linear", converted.GrowthModel.Type)
	}
	if converted.RevenueStreams[0].Kind != model.KindRecurring {
		t.Errorf("stream kind = %v, expected default recurring", converted.RevenueStreams[0].Kind)
	}
	if converted.RevenueStreams[0].Frequency != model.FrequencyMonthly {
		t.Errorf("stream frequency = %v, expected default monthly", converted.RevenueStreams[0].Frequency)
	}
	if converted.CostCategories[0].Kind != model.KindRecurring {
		t.Errorf("category kind = %v, expected default recurring", converted.CostCategories[0].Kind)
	}
	if converted.PerCustomer != nil {
		t.Errorf("PerCustomer should stay nil when not configured")
	}
}

func TestToFinancialModelPerCustomer(t *testing.T) {
	configured := Model{
		ID:   "model-7",
		Name: "Venue",
		PerCustomer: &PerCustomerSpend{
			TicketPrice:          50.0,
			BaseAttendance:       500.0,
			AttendanceGrowthRate: 0.05,
			TicketPriceGrowth:    &Growth{Type: "linear", Rate: 0.01},
		},
		Version: 3,
	}

	converted := configured.ToFinancialModel("proj-1")

	if converted.ID != "model-7" {
		t.Errorf("explicit ID must be preserved, got %v", converted.ID)
	}
	if converted.Version != 3 {
		t.Errorf("Version = %d, expected 3", converted.Version)
	}
	if converted.Type != model.ModelTypeRecurringEvent {
		t.Errorf("per-customer models default to type %q, got %q", model.ModelTypeRecurringEvent, converted.Type)
	}
	if converted.PerCustomer == nil {
		t.Fatalf("PerCustomer not converted")
	}
	if converted.PerCustomer.TicketPriceGrowth == nil || converted.PerCustomer.TicketPriceGrowth.Rate != 0.01 {
		t.Errorf("per-spend growth schedule not converted: %+v", converted.PerCustomer.TicketPriceGrowth)
	}
	if converted.PerCustomer.FBSpendGrowth != nil {
		t.Errorf("absent per-spend growth schedule should stay nil")
	}
}

func TestToScenario(t *testing.T) {
	cogs := 1.1
	configured := Scenario{
		Name:      "aggressive",
		BaseModel: "Venue",
		Active:    true,
		Deltas: Deltas{
			PricingPercent:          10.0,
			CogsMultiplier:          &cogs,
			TicketPriceDelta:        &Delta{Type: "absolute", Value: 5.0},
			MarketingSpendByChannel: map[string]float64{"Social Media": -25.0},
		},
	}

	converted := configured.ToScenario("proj-1")

	if converted.ID == "" {
		t.Errorf("missing scenario ID should be generated")
	}
	if converted.BaseModelID != "Venue" {
		t.Errorf("BaseModelID = %v, expected Venue", converted.BaseModelID)
	}
	if converted.ParameterDeltas.CogsMultiplier == nil || *converted.ParameterDeltas.CogsMultiplier != 1.1 {
		t.Errorf("CogsMultiplier not converted: %v", converted.ParameterDeltas.CogsMultiplier)
	}
	if converted.ParameterDeltas.TicketPriceDelta == nil || converted.ParameterDeltas.TicketPriceDelta.Value != 5.0 {
		t.Errorf("TicketPriceDelta not converted: %+v", converted.ParameterDeltas.TicketPriceDelta)
	}
	if got := converted.ParameterDeltas.MarketingSpendByChannel["Social Media"]; got != -25.0 {
		t.Errorf("channel delta = %v, expected -25.0", got)
	}
}

func TestHorizonAndDiscountDefaults(t *testing.T) {
	conf := &Configuration{}
	if conf.Horizon() != constants.DefaultPeriods {
		t.Errorf("Horizon() = %d, expected default %d", conf.Horizon(), constants.DefaultPeriods)
	}
	if conf.Discount() != constants.DefaultDiscountRate {
		t.Errorf("Discount() = %v, expected default %v", conf.Discount(), constants.DefaultDiscountRate)
	}

	rate := 0.12
	conf = &Configuration{Periods: 24, DiscountRate: &rate}
	if conf.Horizon() != 24 {
		t.Errorf("Horizon() = %d, expected 24", conf.Horizon())
	}
	if conf.Discount() != 0.12 {
		t.Errorf("Discount() = %v, expected 0.12", conf.Discount())
	}
}

func TestDiscountExplicitZero(t *testing.T) {
	// discountRate: 0 in the config asks for undiscounted NPV, not the default.
	zero := 0.0
	conf := &Configuration{DiscountRate: &zero}
	if conf.Discount() != 0.0 {
		t.Errorf("Discount() = %v, expected explicit 0 to be honored", conf.Discount())
	}
}

func TestActualsForModel(t *testing.T) {
	conf := &Configuration{
		Actuals: []Actual{
			{Model: "Venue", Period: 1, Revenue: 100.0, Costs: 40.0},
			{Model: "Webstore", Period: 1, Revenue: 50.0, Costs: 20.0},
			{Model: "Venue", Period: 2, Revenue: 110.0, Costs: 42.0},
		},
	}

	actuals := conf.ActualsForModel("Venue")
	if len(actuals) != 2 {
		t.Fatalf("ActualsForModel() returned %d records, expected 2", len(actuals))
	}
	if actuals[1].Period != 2 || actuals[1].Revenue != 110.0 {
		t.Errorf("unexpected second actual: %+v", actuals[1])
	}
	if got := conf.ActualsForModel("Unknown"); got != nil {
		t.Errorf("ActualsForModel(Unknown) = %v, expected nil", got)
	}
}
