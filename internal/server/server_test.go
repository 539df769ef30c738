package server

import (
	"bytes"
	"encoding/json"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/venuemetrics/product-forecast/pkg/constants"
)

func performJSON(t *testing.T, handler http.Handler, payload interface{}, path string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHandleForecastSuccess(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	configPath := filepath.Join("..", "..", "test", "test_config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read test config: %v", err)
	}

	part, err := writer.CreateFormFile("file", "test_config.yaml")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write form data: %v", err)
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/forecast", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp forecastResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Project != "Demo Venue" {
		t.Errorf("expected project Demo Venue, got %q", resp.Project)
	}
	if len(resp.Models) != 2 {
		t.Fatalf("expected 2 models in response, got %d", len(resp.Models))
	}
	if len(resp.Models[0].Series) != 12 {
		t.Errorf("expected 12 periods for the first model, got %d", len(resp.Models[0].Series))
	}
	if len(resp.Models[0].Scenarios) != 1 {
		t.Errorf("expected 1 active scenario for the first model, got %d", len(resp.Models[0].Scenarios))
	}
	if len(resp.Models[0].Variance) != 2 {
		t.Errorf("expected 2 variance records for the first model, got %d", len(resp.Models[0].Variance))
	}
	if resp.CSV == "" {
		t.Error("expected CSV data in response")
	}
	if resp.Duration == "" {
		t.Error("expected duration in response")
	}
	if resp.Config == nil {
		t.Error("expected config data in response")
	}
}

func TestHandleForecastRejectsGet(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	req := httptest.NewRequest(http.MethodGet, "/api/forecast", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
}

func TestHandleForecastMissingFile(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/forecast", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "missing configuration file") {
		t.Errorf("unexpected error body: %s", rr.Body.String())
	}
}

func TestHandleAnalyzeSuccess(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	configPath := filepath.Join("..", "..", "test", "test_config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read test config: %v", err)
	}

	var configPayload map[string]interface{}
	if err := yaml.Unmarshal(data, &configPayload); err != nil {
		t.Fatalf("failed to unmarshal yaml: %v", err)
	}

	payload := map[string]interface{}{
		"config": configPayload,
		"options": map[string]interface{}{
			"periods":      6,
			"discountRate": 0.10,
		},
	}

	rr := performJSON(t, handler, payload, "/api/analyze")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp forecastResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Models) != 2 {
		t.Fatalf("expected 2 models in response, got %d", len(resp.Models))
	}
	// Option override shortens the horizon.
	if len(resp.Models[0].Series) != 6 {
		t.Errorf("expected 6 periods after override, got %d", len(resp.Models[0].Series))
	}
}

func TestHandleAnalyzeZeroDiscountRate(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	configPath := filepath.Join("..", "..", "test", "test_config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read test config: %v", err)
	}

	var configPayload map[string]interface{}
	if err := yaml.Unmarshal(data, &configPayload); err != nil {
		t.Fatalf("failed to unmarshal yaml: %v", err)
	}

	// An explicit discountRate of 0 must override the config's 0.08, not be
	// discarded as unset: undiscounted NPV equals total profit.
	payload := map[string]interface{}{
		"config": configPayload,
		"options": map[string]interface{}{
			"discountRate": 0,
		},
	}

	rr := performJSON(t, handler, payload, "/api/analyze")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp forecastResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Models) == 0 {
		t.Fatalf("expected models in response")
	}

	for _, m := range resp.Models {
		if math.Abs(m.Metrics.NPV-m.Metrics.TotalProfit) > 1e-6 {
			t.Errorf("model %q: NPV = %.6f, expected undiscounted value %.6f", m.Name, m.Metrics.NPV, m.Metrics.TotalProfit)
		}
	}
}

func TestHandleAnalyzeInvalidOptions(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	payload := map[string]interface{}{
		"config":  map[string]interface{}{},
		"options": "not an object",
	}

	rr := performJSON(t, handler, payload, "/api/analyze")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleAnalyzeInvalidBody(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test")

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("not json"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleVersion(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "1.2.3")

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %q", resp["version"])
	}
}

func TestHandleVersionDefaultsToDev(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "  ")

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "dev" {
		t.Errorf("expected version dev, got %q", resp["version"])
	}
}
