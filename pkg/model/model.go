// Package model defines the plain data records exchanged with the forecasting
// engine: assumption sets, scenario deltas, generated time series, and derived
// metrics. No framework types cross this boundary.
package model

import "time"

// Kind values for revenue streams and cost categories.
const (
	KindOneTime   = "one-time"
	KindRecurring = "recurring"
)

// Frequency values. Frequency is descriptive metadata on an assumption; the
// generator treats one forecast period as one occurrence of a recurring item.
const (
	FrequencyWeekly    = "weekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyAnnually  = "annually"
	FrequencyNone      = "none"
)

// Growth model types.
const (
	GrowthLinear      = "linear"
	GrowthExponential = "exponential"
	GrowthSeasonal    = "seasonal"
)

// ModelTypeRecurringEvent flags models whose revenue is driven by attendance
// and per-customer spend rather than flat streams.
const ModelTypeRecurringEvent = "recurring-event"

// Stream names under which per-customer revenue components are merged into
// the revenue breakdown.
const (
	StreamTicketSales          = "Ticket Sales"
	StreamFBSales              = "F&B Sales"
	StreamMerchandiseSales     = "Merchandise Sales"
	StreamOnlineSales          = "Online Sales"
	StreamMiscellaneousRevenue = "Miscellaneous Revenue"
)

// RevenueStream is a single named revenue assumption. Names are unique within
// a model; streams are immutable once part of a published model version.
type RevenueStream struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Kind      string  `json:"kind"`
	Frequency string  `json:"frequency"`
}

// CostCategory is a single named cost assumption. IsCOGS flags categories
// subject to COGS-specific scenario multipliers.
type CostCategory struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Kind      string  `json:"kind"`
	Frequency string  `json:"frequency"`
	IsCOGS    bool    `json:"isCOGS"`
}

// GrowthModel describes how a base value evolves across periods. Rate is
// fractional (0.05 = 5% per period). SeasonalFactors is required and non-empty
// only when Type is GrowthSeasonal.
type GrowthModel struct {
	Type            string    `json:"type"`
	Rate            float64   `json:"rate"`
	SeasonalFactors []float64 `json:"seasonalFactors,omitempty"`
}

// PerCustomerSpend drives revenue for recurring-event models: attendance
// times growth-adjusted per-customer spend, per spend field. Each spend field
// may carry its own growth schedule; nil means the spend stays flat.
type PerCustomerSpend struct {
	TicketPrice      float64 `json:"ticketPrice"`
	FBSpend          float64 `json:"fbSpend"`
	MerchandiseSpend float64 `json:"merchandiseSpend"`
	OnlineSpend      float64 `json:"onlineSpend"`
	MiscSpend        float64 `json:"miscSpend"`

	BaseAttendance       float64 `json:"baseAttendance"`
	AttendanceGrowthRate float64 `json:"attendanceGrowthRate"`

	TicketPriceGrowth      *GrowthModel `json:"ticketPriceGrowth,omitempty"`
	FBSpendGrowth          *GrowthModel `json:"fbSpendGrowth,omitempty"`
	MerchandiseSpendGrowth *GrowthModel `json:"merchandiseSpendGrowth,omitempty"`
	OnlineSpendGrowth      *GrowthModel `json:"onlineSpendGrowth,omitempty"`
	MiscSpendGrowth        *GrowthModel `json:"miscSpendGrowth,omitempty"`
}

// FinancialModel is a full assumption snapshot. The engine always receives or
// returns complete snapshots; callers never edit fields of a shared instance.
type FinancialModel struct {
	ID             string            `json:"id"`
	ProjectID      string            `json:"projectId"`
	Name           string            `json:"name"`
	Type           string            `json:"type,omitempty"`
	RevenueStreams []RevenueStream   `json:"revenueStreams"`
	CostCategories []CostCategory    `json:"costCategories"`
	GrowthModel    GrowthModel       `json:"growthModel"`
	PerCustomer    *PerCustomerSpend `json:"perCustomer,omitempty"`
	Version        int               `json:"version"`
}

// Clone returns a deep copy of the model. Scenario application operates on
// clones so the baseline is never mutated.
func (m FinancialModel) Clone() FinancialModel {
	out := m
	out.RevenueStreams = append([]RevenueStream(nil), m.RevenueStreams...)
	out.CostCategories = append([]CostCategory(nil), m.CostCategories...)
	out.GrowthModel = m.GrowthModel.Clone()
	if m.PerCustomer != nil {
		pc := *m.PerCustomer
		pc.TicketPriceGrowth = cloneGrowth(m.PerCustomer.TicketPriceGrowth)
		pc.FBSpendGrowth = cloneGrowth(m.PerCustomer.FBSpendGrowth)
		pc.MerchandiseSpendGrowth = cloneGrowth(m.PerCustomer.MerchandiseSpendGrowth)
		pc.OnlineSpendGrowth = cloneGrowth(m.PerCustomer.OnlineSpendGrowth)
		pc.MiscSpendGrowth = cloneGrowth(m.PerCustomer.MiscSpendGrowth)
		out.PerCustomer = &pc
	}
	return out
}

// Clone returns a deep copy of the growth model.
func (g GrowthModel) Clone() GrowthModel {
	out := g
	if g.SeasonalFactors != nil {
		out.SeasonalFactors = append([]float64(nil), g.SeasonalFactors...)
	}
	return out
}

func cloneGrowth(g *GrowthModel) *GrowthModel {
	if g == nil {
		return nil
	}
	clone := g.Clone()
	return &clone
}

// ForecastPeriodData is one period of a generated time series. Series are
// derived fresh on every request; assumptions remain the source of truth.
type ForecastPeriodData struct {
	Period            int                `json:"period"`
	Attendance        *float64           `json:"attendance,omitempty"`
	RevenueBreakdown  map[string]float64 `json:"revenueBreakdown"`
	CostBreakdown     map[string]float64 `json:"costBreakdown"`
	Revenue           float64            `json:"revenue"`
	Costs             float64            `json:"costs"`
	Profit            float64            `json:"profit"`
	CumulativeRevenue float64            `json:"cumulativeRevenue"`
	CumulativeCosts   float64            `json:"cumulativeCosts"`
	CumulativeProfit  float64            `json:"cumulativeProfit"`
}

// ValueDelta types.
const (
	DeltaPercent  = "percent"
	DeltaAbsolute = "absolute"
)

// ValueDelta is a relative or absolute adjustment to a single value.
type ValueDelta struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// ScenarioParameterDeltas adjusts baseline assumptions. Every field is
// optional; the zero value (or nil pointer) is the neutral element for that
// field. CogsMultiplier is a pointer because 0 is a legal multiplier distinct
// from "no adjustment".
type ScenarioParameterDeltas struct {
	MarketingSpendPercent   float64            `json:"marketingSpendPercent,omitempty"`
	MarketingSpendByChannel map[string]float64 `json:"marketingSpendByChannel,omitempty"`
	PricingPercent          float64            `json:"pricingPercent,omitempty"`
	TicketPriceDelta        *ValueDelta        `json:"ticketPriceDelta,omitempty"`
	AttendanceGrowthPercent float64            `json:"attendanceGrowthPercent,omitempty"`
	CogsMultiplier          *float64           `json:"cogsMultiplier,omitempty"`
	FBSpendDelta            *ValueDelta        `json:"fbSpendDelta,omitempty"`
	MerchSpendDelta         *ValueDelta        `json:"merchSpendDelta,omitempty"`
}

// NeutralDeltas returns a delta set that leaves any model unchanged.
func NeutralDeltas() ScenarioParameterDeltas {
	return ScenarioParameterDeltas{}
}

// Scenario names a delta set against a base model. It stores only the deltas;
// forecasts are recomputed on demand, never persisted on the scenario.
type Scenario struct {
	ID              string                  `json:"id"`
	ProjectID       string                  `json:"projectId"`
	BaseModelID     string                  `json:"baseModelId"`
	Name            string                  `json:"name"`
	ParameterDeltas ScenarioParameterDeltas `json:"parameterDeltas"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

// FinancialMetrics summarizes a time series. IRR is nil when the root search
// does not converge; break-even fields are nil when undefined.
type FinancialMetrics struct {
	TotalRevenue         float64  `json:"totalRevenue"`
	TotalCosts           float64  `json:"totalCosts"`
	TotalProfit          float64  `json:"totalProfit"`
	ProfitMargin         float64  `json:"profitMargin"`
	NPV                  float64  `json:"npv"`
	IRR                  *float64 `json:"irr"`
	ROI                  float64  `json:"roi"`
	BreakEvenUnits       *float64 `json:"breakEvenUnits,omitempty"`
	BreakEvenRevenue     *float64 `json:"breakEvenRevenue,omitempty"`
	BreakEvenPeriodIndex *int     `json:"breakEvenPeriodIndex"`
}

// SensitivityPoint records the NPV impact of one perturbation step.
type SensitivityPoint struct {
	Change    float64 `json:"change"`
	NPVChange float64 `json:"npvChange"`
}

// SensitivityAnalysis holds the two independent perturbation curves.
type SensitivityAnalysis struct {
	RevenueImpact []SensitivityPoint `json:"revenueImpact"`
	CostImpact    []SensitivityPoint `json:"costImpact"`
}

// ScenarioAnalysis compares base, best and worst case metrics and carries the
// sensitivity curves.
type ScenarioAnalysis struct {
	BaseCase    FinancialMetrics    `json:"baseCase"`
	BestCase    FinancialMetrics    `json:"bestCase"`
	WorstCase   FinancialMetrics    `json:"worstCase"`
	Sensitivity SensitivityAnalysis `json:"sensitivity"`
}

// ActualRecord is an externally supplied actual for one period.
type ActualRecord struct {
	Period  int     `json:"period"`
	Revenue float64 `json:"revenue"`
	Costs   float64 `json:"costs"`
}

// VarianceRecord compares an actual against the forecast for one period.
// Unmatched marks actuals whose period falls outside the forecast horizon;
// such records carry no variance figures.
type VarianceRecord struct {
	Period                    int     `json:"period"`
	ForecastRevenue           float64 `json:"forecastRevenue"`
	ActualRevenue             float64 `json:"actualRevenue"`
	RevenueVariance           float64 `json:"revenueVariance"`
	RevenueVariancePercent    float64 `json:"revenueVariancePercent"`
	ForecastCosts             float64 `json:"forecastCosts"`
	ActualCosts               float64 `json:"actualCosts"`
	CostVariance              float64 `json:"costVariance"`
	CostVariancePercent       float64 `json:"costVariancePercent"`
	CumulativeRevenueVariance float64 `json:"cumulativeRevenueVariance"`
	CumulativeCostVariance    float64 `json:"cumulativeCostVariance"`
	Unmatched                 bool    `json:"unmatched,omitempty"`
}
