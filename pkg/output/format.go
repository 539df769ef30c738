// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/venuemetrics/product-forecast/internal/analysis"
	"github.com/venuemetrics/product-forecast/pkg/constants"
	"github.com/venuemetrics/product-forecast/pkg/model"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(reports []analysis.ModelReport) {
	p := message.NewPrinter(language.English)
	for n, report := range reports {
		fmt.Printf("--- Results for model %s ---\n", report.Model.Name)
		fmt.Printf("Period | Revenue       | Costs         | Profit        | Cum. Profit\n")
		fmt.Printf("______ | _____________ | _____________ | _____________ | _____________\n")
		for _, period := range report.Series {
			_, _ = p.Printf("%6d | $%.2f | $%.2f | $%.2f | $%.2f\n",
				period.Period, period.Revenue, period.Costs, period.Profit, period.CumulativeProfit)
		}

		fmt.Printf("\nMetrics:\n")
		printMetrics(p, report.Metrics)

		_, _ = p.Printf("\nScenario analysis (NPV): worst $%.2f | base $%.2f | best $%.2f\n",
			report.Analysis.WorstCase.NPV, report.Analysis.BaseCase.NPV, report.Analysis.BestCase.NPV)

		for _, scenario := range report.Scenarios {
			fmt.Printf("\nScenario %s:\n", scenario.Scenario.Name)
			printMetrics(p, scenario.Metrics)
		}

		if len(report.Variance) > 0 {
			fmt.Printf("\nVariance vs. actuals:\n")
			fmt.Printf("Period | Rev. Variance | Cost Variance | Notes\n")
			for _, record := range report.Variance {
				if record.Unmatched {
					fmt.Printf("%6d | %13s | %13s | no forecast for this period\n", record.Period, "-", "-")
					continue
				}
				_, _ = p.Printf("%6d | $%.2f (%.1f%%) | $%.2f (%.1f%%) |\n",
					record.Period,
					record.RevenueVariance, record.RevenueVariancePercent,
					record.CostVariance, record.CostVariancePercent)
			}
		}

		if n < len(reports)-1 {
			fmt.Printf("\n")
		}
	}
}

func printMetrics(p *message.Printer, metrics model.FinancialMetrics) {
	_, _ = p.Printf("  Total revenue: $%.2f | total costs: $%.2f | total profit: $%.2f\n",
		metrics.TotalRevenue, metrics.TotalCosts, metrics.TotalProfit)
	_, _ = p.Printf("  Profit margin: %.2f%% | ROI: %.2f%% | NPV: $%.2f\n",
		metrics.ProfitMargin, metrics.ROI, metrics.NPV)
	if metrics.IRR != nil {
		_, _ = p.Printf("  IRR: %.2f%%\n", *metrics.IRR*100)
	} else {
		fmt.Printf("  IRR: not defined for this cash flow\n")
	}
	if metrics.BreakEvenPeriodIndex != nil {
		fmt.Printf("  Break-even period: %d\n", *metrics.BreakEvenPeriodIndex)
	}
	if metrics.BreakEvenUnits != nil && metrics.BreakEvenRevenue != nil {
		_, _ = p.Printf("  Break-even: %.0f units ($%.2f)\n", *metrics.BreakEvenUnits, *metrics.BreakEvenRevenue)
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(reports []analysis.ModelReport) {
	fmt.Print(CsvString(reports))
}

// CsvString renders the per-period series of every model and scenario as CSV.
func CsvString(reports []analysis.ModelReport) string {
	var b strings.Builder

	b.WriteString(`"model","scenario","period","revenue","costs","profit","cumulativeProfit"`)
	b.WriteString("\n")

	for _, report := range reports {
		writeSeries(&b, report.Model.Name, "baseline", report.Series)
		for _, scenario := range report.Scenarios {
			writeSeries(&b, report.Model.Name, scenario.Scenario.Name, scenario.Series)
		}
	}

	return b.String()
}

func writeSeries(b *strings.Builder, modelName, scenarioName string, series []model.ForecastPeriodData) {
	for _, period := range series {
		fmt.Fprintf(b, `"%s","%s","%d","%.2f","%.2f","%.2f","%.2f"`,
			modelName, scenarioName, period.Period,
			period.Revenue, period.Costs, period.Profit, period.CumulativeProfit)
		b.WriteString("\n")
	}
}

// ValidateFormat checks that the requested output format is supported.
func ValidateFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	default:
		return fmt.Errorf("invalid output format: %s (supported: %s, %s)",
			format, constants.OutputFormatPretty, constants.OutputFormatCSV)
	}
}
