package main

import (
	"flag"
	"fmt"

	"go.uber.org/zap"

	"github.com/venuemetrics/product-forecast/internal/analysis"
	"github.com/venuemetrics/product-forecast/internal/config"
	"github.com/venuemetrics/product-forecast/internal/logging"
	"github.com/venuemetrics/product-forecast/pkg/constants"
	"github.com/venuemetrics/product-forecast/pkg/output"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	periodsFlag := flag.Int("periods", 0, "forecast horizon override in periods")
	discountRateFlag := flag.Float64("discount-rate", -1, "discount rate override (fractional, e.g. 0.08; 0 disables discounting)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = output.ValidateFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// CLI overrides for the forecast horizon and discount rate
	if *periodsFlag > 0 {
		conf.Periods = *periodsFlag
	}
	if *discountRateFlag >= 0 {
		conf.DiscountRate = discountRateFlag
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Run the forecasting workload for every configured model.
	runner := analysis.NewRunner(logger)
	reports, err := runner.Run(conf)
	if err != nil {
		logger.Fatal("failed to compute forecast",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(reports)
	case constants.OutputFormatCSV:
		output.CsvFormat(reports)
	}
}
