// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"

	"github.com/spf13/viper"
)

// Configuration holds all configuration for product-forecast. DiscountRate is
// a pointer so an explicit 0 (undiscounted NPV) is distinguishable from the
// field being absent.
type Configuration struct {
	Project      string
	Periods      int
	DiscountRate *float64
	Models       []Model
	Scenarios    []Scenario
	Actuals      []Actual
	Logging      LoggingConfig `yaml:"logging,omitempty"`
	Output       OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Model is one set of baseline assumptions as written in the config file.
type Model struct {
	ID             string
	Name           string
	Type           string
	RevenueStreams []Stream
	CostCategories []Category
	Growth         Growth
	PerCustomer    *PerCustomerSpend
	Version        int
}

// Stream is a revenue assumption line.
type Stream struct {
	Name      string
	Value     float64
	Kind      string
	Frequency string
}

// Category is a cost assumption line.
type Category struct {
	Name      string
	Value     float64
	Kind      string
	Frequency string
	IsCOGS    bool
}

// Growth describes how a value evolves across periods.
type Growth struct {
	Type            string
	Rate            float64
	SeasonalFactors []float64
}

// PerCustomerSpend holds attendance-driven revenue inputs for
// recurring-event models.
type PerCustomerSpend struct {
	TicketPrice          float64
	FBSpend              float64
	MerchandiseSpend     float64
	OnlineSpend          float64
	MiscSpend            float64
	BaseAttendance       float64
	AttendanceGrowthRate float64

	TicketPriceGrowth      *Growth
	FBSpendGrowth          *Growth
	MerchandiseSpendGrowth *Growth
	OnlineSpendGrowth      *Growth
	MiscSpendGrowth        *Growth
}

// Scenario names a set of deltas against one of the configured models.
type Scenario struct {
	ID        string
	Name      string
	BaseModel string
	Active    bool
	Deltas    Deltas
}

// Deltas mirrors the scenario adjustment vocabulary. Pointer fields
// distinguish "absent" from a deliberate zero.
type Deltas struct {
	MarketingSpendPercent   float64
	MarketingSpendByChannel map[string]float64
	PricingPercent          float64
	TicketPriceDelta        *Delta
	AttendanceGrowthPercent float64
	CogsMultiplier          *float64
	FBSpendDelta            *Delta
	MerchSpendDelta         *Delta
}

// Delta is a relative or absolute adjustment to a single value.
type Delta struct {
	Type  string
	Value float64
}

// Actual is an externally supplied actual for one period of a model.
type Actual struct {
	Model   string
	Period  int
	Revenue float64
	Costs   float64
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// in-memory source, e.g. an HTTP upload.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}
