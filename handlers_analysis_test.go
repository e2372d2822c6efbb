package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bloomwatch/nasa"
)

// newTestApp wires an App whose NASA endpoints are dead, so every request
// resolves through the deterministic synthetic fallback. Mongo-backed
// handlers are not exercised here.
func newTestApp(t *testing.T) (*App, func()) {
	t.Helper()
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	app := &App{
		cfg:  Config{JWTSecret: "test"},
		nasa: nasa.NewService(nasa.Config{ORNLBaseURL: down.URL, CMRBaseURL: down.URL}),
	}
	return app, down.Close
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	app, done := newTestApp(t)
	defer done()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	app.routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if out["status"] != "ok" {
		t.Fatalf("unexpected body %v", out)
	}
}

func TestNDVIEndpointReturnsSeries(t *testing.T) {
	app, done := newTestApp(t)
	defer done()
	rec := postJSON(t, app.routes(), "/api/ndvi",
		`{"latitude": 39, "longitude": -98, "start_date": "2023-01-01", "end_date": "2023-06-01"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Count   int `json:"count"`
		Records []struct {
			Date string  `json:"date"`
			NDVI float64 `json:"ndvi"`
		} `json:"records"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if out.Count == 0 || len(out.Records) != out.Count {
		t.Fatalf("unexpected payload: count=%d records=%d", out.Count, len(out.Records))
	}
}

func TestNDVIEndpointValidation(t *testing.T) {
	app, done := newTestApp(t)
	defer done()
	cases := []string{
		`{"latitude": 39, "longitude": -98}`,                                                      // missing end_date
		`{"latitude": 39, "longitude": -98, "end_date": "junk"}`,                                  // bad date
		`{"latitude": 39, "longitude": -98, "start_date": "2023-06-01", "end_date": "2023-01-01"}`, // inverted range
	}
	for _, body := range cases {
		if rec := postJSON(t, app.routes(), "/api/ndvi", body); rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestPeaksEndpoint(t *testing.T) {
	app, done := newTestApp(t)
	defer done()
	rec := postJSON(t, app.routes(), "/api/peaks",
		`{"latitude": 39, "longitude": -98, "start_date": "2022-01-01", "end_date": "2023-06-01", "threshold": 0.2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Peaks []int `json:"peaks"`
		Count int   `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if out.Peaks == nil {
		t.Fatal("peaks must serialize as a list, even when empty")
	}
	if len(out.Peaks) != out.Count {
		t.Fatalf("count mismatch: %d vs %d", len(out.Peaks), out.Count)
	}
}

func TestForecastEndpointRejectsBadHorizon(t *testing.T) {
	app, done := newTestApp(t)
	defer done()
	rec := postJSON(t, app.routes(), "/api/forecast",
		`{"latitude": 39, "longitude": -98, "end_date": "2023-06-01", "future_steps": -1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestForecastEndpointSkipsOverWater(t *testing.T) {
	app, done := newTestApp(t)
	defer done()
	rec := postJSON(t, app.routes(), "/api/forecast",
		`{"latitude": 0, "longitude": -170, "start_date": "2022-01-01", "end_date": "2023-01-01", "future_steps": 5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Skipped bool   `json:"skipped"`
		Reason  string `json:"reason"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !out.Skipped || out.Reason == "" {
		t.Fatalf("expected guarded skip over open ocean, got %+v", out)
	}
}

func TestAnalysisEndpoint(t *testing.T) {
	app, done := newTestApp(t)
	defer done()
	rec := postJSON(t, app.routes(), "/api/analysis",
		`{"latitude": 39, "longitude": -98, "start_date": "2022-01-01", "end_date": "2023-06-01", "future_steps": 5, "look_back": 10}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Success   bool   `json:"success"`
		Formatted string `json:"formatted_output"`
		Report    struct {
			Summary struct {
				DataPoints int `json:"data_points"`
			} `json:"summary"`
			CurrentStatus struct {
				VegetationType string `json:"vegetation_type"`
			} `json:"current_status"`
		} `json:"report"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !out.Success {
		t.Fatalf("expected success, body = %s", rec.Body.String())
	}
	if out.Report.Summary.DataPoints == 0 || out.Report.CurrentStatus.VegetationType == "" {
		t.Fatalf("report incomplete: %s", rec.Body.String())
	}
	if !strings.Contains(out.Formatted, "BLOOMWATCH ANALYSIS REPORT") {
		t.Fatal("formatted output missing header")
	}
}

func TestThumbEndpoint(t *testing.T) {
	app, done := newTestApp(t)
	defer done()
	rec := postJSON(t, app.routes(), "/api/ndvi-thumb",
		`{"latitude": 39, "longitude": -98, "end_date": "2023-06-01"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !strings.Contains(out.URL, "MODIS_Terra_NDVI_8Day") || !strings.Contains(out.URL, "2023-06-01") {
		t.Fatalf("unexpected tile url %q", out.URL)
	}
}

func TestRegionsRequireAuth(t *testing.T) {
	app, done := newTestApp(t)
	defer done()
	req := httptest.NewRequest(http.MethodGet, "/api/regions/", nil)
	rec := httptest.NewRecorder()
	app.routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
