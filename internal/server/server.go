// Package server exposes the forecasting workload over HTTP: configuration
// uploads, editor-driven analysis requests, and version metadata.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/venuemetrics/product-forecast/internal/analysis"
	"github.com/venuemetrics/product-forecast/internal/config"
	"github.com/venuemetrics/product-forecast/pkg/constants"
	"github.com/venuemetrics/product-forecast/pkg/model"
	"github.com/venuemetrics/product-forecast/pkg/output"
)

type handler struct {
	logger        *zap.Logger
	runner        *analysis.Runner
	maxUploadSize int64
	version       string
}

// analysisOptions carries request-level overrides. Pointer fields distinguish
// "not supplied" from an explicit zero, so a client can ask for an
// undiscounted NPV with discountRate 0.
type analysisOptions struct {
	Periods      *int
	DiscountRate *float64
}

// NewHandler constructs the HTTP handler that serves the forecast API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		runner:        analysis.NewRunner(logger),
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()

	// Forecast API endpoint (file upload)
	mux.HandleFunc("/api/forecast", h.handleForecast)

	// Analysis endpoint for editor-driven requests
	mux.HandleFunc("/api/analyze", h.handleAnalyze)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type forecastResponse struct {
	Project  string                 `json:"project"`
	Models   []modelResult          `json:"models"`
	CSV      string                 `json:"csv"`
	Warnings []string               `json:"warnings,omitempty"`
	Duration string                 `json:"duration"`
	Config   map[string]interface{} `json:"config,omitempty"`
}

type modelResult struct {
	Name      string                     `json:"name"`
	Series    []model.ForecastPeriodData `json:"series"`
	Metrics   model.FinancialMetrics     `json:"metrics"`
	Analysis  model.ScenarioAnalysis     `json:"analysis"`
	Scenarios []scenarioResult           `json:"scenarios,omitempty"`
	Variance  []model.VarianceRecord     `json:"variance,omitempty"`
}

type scenarioResult struct {
	Name    string                     `json:"name"`
	Series  []model.ForecastPeriodData `json:"series"`
	Metrics model.FinancialMetrics     `json:"metrics"`
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleForecast")
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "server.handleForecast")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", "server.handleForecast")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleForecast"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), "server.handleForecast")
		return
	}

	configBytes := buf.Bytes()
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), "server.handleForecast")
		return
	}

	h.runAnalysis(w, configBytes, configMap, start, "server.handleForecast", analysisOptions{})
}

func (h *handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), "server.handleAnalyze")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondErrorWithOp(w, http.StatusBadRequest, "invalid config payload: expected object", "server.handleAnalyze")
			return
		}
		configPayload = cfgMap
	}

	options := analysisOptions{}
	if rawOptions, ok := payload["options"]; ok {
		optsMap, ok := rawOptions.(map[string]interface{})
		if !ok {
			h.respondErrorWithOp(w, http.StatusBadRequest, "invalid options payload: expected object", "server.handleAnalyze")
			return
		}
		if periodsVal, ok := optsMap["periods"]; ok {
			periods := int(coerceFloat(periodsVal))
			options.Periods = &periods
		}
		if rateVal, ok := optsMap["discountRate"]; ok {
			rate := coerceFloat(rateVal)
			options.DiscountRate = &rate
		}
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleAnalyze")
		return
	}

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse configuration: %v", err), "server.handleAnalyze")
		return
	}

	h.runAnalysis(w, configBytes, configMap, start, "server.handleAnalyze", options)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) runAnalysis(w http.ResponseWriter, configBytes []byte, configMap map[string]interface{}, start time.Time, op string, opts analysisOptions) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	if opts.Periods != nil && *opts.Periods > 0 {
		cfg.Periods = *opts.Periods
	}
	if opts.DiscountRate != nil {
		cfg.DiscountRate = opts.DiscountRate
	}

	warnings := cfg.ValidateConfiguration()

	reports, err := h.runner.Run(cfg)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to compute forecast: %v", err), op)
		return
	}

	elapsed := time.Since(start)

	if configMap == nil {
		configMap = make(map[string]interface{})
	}

	response := forecastResponse{
		Project:  cfg.Project,
		Models:   buildModelResults(reports),
		CSV:      output.CsvString(reports),
		Warnings: warnings,
		Duration: elapsed.String(),
		Config:   configMap,
	}

	h.logger.Info("forecast computed",
		zap.String("op", op),
		zap.Int("models", len(response.Models)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func buildModelResults(reports []analysis.ModelReport) []modelResult {
	results := make([]modelResult, 0, len(reports))
	for _, report := range reports {
		result := modelResult{
			Name:     report.Model.Name,
			Series:   report.Series,
			Metrics:  report.Metrics,
			Analysis: report.Analysis,
			Variance: report.Variance,
		}
		for _, scenario := range report.Scenarios {
			result.Scenarios = append(result.Scenarios, scenarioResult{
				Name:    scenario.Scenario.Name,
				Series:  scenario.Series,
				Metrics: scenario.Metrics,
			})
		}
		results = append(results, result)
	}
	return results
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("forecast request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func coerceFloat(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return parsed
		}
	case json.Number:
		if parsed, err := v.Float64(); err == nil {
			return parsed
		}
	}
	return 0
}
