package config

import (
	"strings"
	"testing"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationExample(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if config == nil {
		t.Fatalf("LoadConfiguration() returned nil config")
	}

	if config.Project != "Demo Venue" {
		t.Errorf("Expected project = Demo Venue, got %v", config.Project)
	}
	if config.Periods != 12 {
		t.Errorf("Expected periods = 12, got %v", config.Periods)
	}
	if config.DiscountRate == nil || *config.DiscountRate != 0.08 {
		t.Errorf("Expected discountRate = 0.08, got %v", config.DiscountRate)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("Expected logging level = debug, got %v", config.Logging.Level)
	}
	if config.Output.Format != "pretty" {
		t.Errorf("Expected output format = pretty, got %v", config.Output.Format)
	}
}

func TestLoadConfigurationStructure(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	expectedModels := []string{"Concert Series", "Merch Webstore"}
	if len(config.Models) != len(expectedModels) {
		t.Fatalf("Expected %d models, got %d", len(expectedModels), len(config.Models))
	}
	for i, expectedName := range expectedModels {
		if config.Models[i].Name != expectedName {
			t.Errorf("Expected model name %s, got %s", expectedName, config.Models[i].Name)
		}
	}

	concert := config.Models[0]
	if concert.Type != "recurring-event" {
		t.Errorf("Expected model type recurring-event, got %v", concert.Type)
	}
	if concert.Growth.Type != "exponential" || concert.Growth.Rate != 0.03 {
		t.Errorf("Unexpected growth model: %+v", concert.Growth)
	}
	if concert.PerCustomer == nil {
		t.Fatalf("Expected per-customer spend on Concert Series")
	}
	if concert.PerCustomer.TicketPrice != 50.0 {
		t.Errorf("Expected ticketPrice = 50.00, got %v", concert.PerCustomer.TicketPrice)
	}
	if concert.PerCustomer.TicketPriceGrowth == nil || concert.PerCustomer.TicketPriceGrowth.Rate != 0.01 {
		t.Errorf("Expected ticketPriceGrowth rate 0.01, got %+v", concert.PerCustomer.TicketPriceGrowth)
	}
	if len(concert.CostCategories) != 4 {
		t.Fatalf("Expected 4 cost categories, got %d", len(concert.CostCategories))
	}
	if !concert.CostCategories[0].IsCOGS {
		t.Errorf("Expected COGS category to be flagged isCOGS")
	}
	if concert.CostCategories[3].Kind != "one-time" {
		t.Errorf("Expected Stage Equipment kind one-time, got %v", concert.CostCategories[3].Kind)
	}

	if len(config.Scenarios) != 2 {
		t.Fatalf("Expected 2 scenarios, got %d", len(config.Scenarios))
	}
	aggressive := config.Scenarios[0]
	if !aggressive.Active {
		t.Errorf("Expected scenario %q to be active", aggressive.Name)
	}
	if aggressive.Deltas.PricingPercent != 10.0 {
		t.Errorf("Expected pricingPercent = 10.0, got %v", aggressive.Deltas.PricingPercent)
	}
	if aggressive.Deltas.CogsMultiplier == nil || *aggressive.Deltas.CogsMultiplier != 1.05 {
		t.Errorf("Expected cogsMultiplier = 1.05, got %v", aggressive.Deltas.CogsMultiplier)
	}
	if got := aggressive.Deltas.MarketingSpendByChannel["Social Media"]; got != -25.0 {
		t.Errorf("Expected Social Media channel delta = -25.0, got %v", got)
	}
	if config.Scenarios[1].Active {
		t.Errorf("Expected scenario %q to be inactive", config.Scenarios[1].Name)
	}

	if len(config.Actuals) != 2 {
		t.Fatalf("Expected 2 actuals, got %d", len(config.Actuals))
	}
	if config.Actuals[0].Revenue != 39500.0 {
		t.Errorf("Expected first actual revenue = 39500.00, got %v", config.Actuals[0].Revenue)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	yaml := `---
project: Inline
periods: 6
models:
  - name: Simple
    revenueStreams:
      - name: Sales
        value: 100.00
`
	config, err := LoadConfigurationFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if config.Project != "Inline" {
		t.Errorf("Expected project = Inline, got %v", config.Project)
	}
	if len(config.Models) != 1 || config.Models[0].RevenueStreams[0].Value != 100.0 {
		t.Errorf("Unexpected models: %+v", config.Models)
	}
}

func TestLoadConfigurationFromReaderInvalid(t *testing.T) {
	if _, err := LoadConfigurationFromReader(strings.NewReader("models: [unclosed")); err == nil {
		t.Errorf("LoadConfigurationFromReader() expected error for malformed YAML")
	}
}
