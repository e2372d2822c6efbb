package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bloomwatch/bloom"
)

const (
	defaultROIDeg    = 5.0
	defaultStartDate = "2000-01-01"
	defaultThreshold = 0.2
)

// parseRegionReq validates the shared region fields and resolves defaults.
func parseRegionReq(req *regionReq) (start, end time.Time, err error) {
	if req.ROIDeg == 0 {
		req.ROIDeg = defaultROIDeg
	}
	if req.StartDate == "" {
		req.StartDate = defaultStartDate
	}
	if req.EndDate == "" {
		return start, end, fmt.Errorf("end_date is required")
	}
	start, err = time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return start, end, fmt.Errorf("invalid start_date %q", req.StartDate)
	}
	end, err = time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return start, end, fmt.Errorf("invalid end_date %q", req.EndDate)
	}
	if end.Before(start) {
		return start, end, fmt.Errorf("end_date before start_date")
	}
	return start, end, nil
}

// fetchSeries pulls raw rows from the data service and normalizes them into
// the canonical series every downstream component consumes.
func (a *App) fetchSeries(ctx context.Context, req *regionReq) (bloom.Series, error) {
	start, end, err := parseRegionReq(req)
	if err != nil {
		return nil, err
	}
	rows := a.nasa.HistoricalNDVI(ctx, req.Latitude, req.Longitude, req.ROIDeg, start, end)
	return bloom.Normalize(rows), nil
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"status": "ok", "data_sources": []string{"nasa"}})
}

func (a *App) handleDataSources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"sources": []map[string]any{{
			"id":                      "nasa",
			"name":                    "NASA MODIS/GIBS",
			"description":             "NASA MODIS data via GIBS and CMR APIs",
			"reliable":                true,
			"authentication_required": false,
		}},
	})
}

// handleNDVI returns the canonical NDVI time series for a point.
func (a *App) handleNDVI(w http.ResponseWriter, r *http.Request) {
	var req regionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	series, err := a.fetchSeries(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{
		"records":     series,
		"data_source": "nasa",
		"count":       len(series),
	})
}

// handlePeaks detects bloom peaks in the series.
func (a *App) handlePeaks(w http.ResponseWriter, r *http.Request) {
	var req peaksReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	series, err := a.fetchSeries(r.Context(), &req.regionReq)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	threshold := defaultThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	peaks := bloom.DetectPeaks(series, threshold)
	indices := peaks.Indices()
	if indices == nil {
		indices = []int{}
	}
	writeJSON(w, map[string]any{
		"peaks":       indices,
		"count":       len(indices),
		"data_source": "nasa",
	})
}

// handleForecast trains the forecaster and returns future dates/values, or a
// skip with its reason when the signal cannot be forecast.
func (a *App) handleForecast(w http.ResponseWriter, r *http.Request) {
	var req forecastReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	series, err := a.fetchSeries(r.Context(), &req.regionReq)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := bloom.ForecastParams{
		FutureSteps: bloom.DefaultFutureSteps,
		LookBack:    bloom.DefaultLookBack,
	}
	if req.FutureSteps != nil {
		params.FutureSteps = *req.FutureSteps
	}
	if req.LookBack != nil {
		params.LookBack = *req.LookBack
	}

	fc, err := bloom.Forecast(r.Context(), series, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if fc.Skipped {
		writeJSON(w, map[string]any{"skipped": true, "reason": fc.Reason})
		return
	}

	dates := make([]string, len(fc.Dates))
	for i, d := range fc.Dates {
		dates[i] = d.Format("2006-01-02")
	}
	writeJSON(w, map[string]any{
		"skipped":     false,
		"dates":       dates,
		"values":      fc.Values,
		"data_source": "nasa",
	})
}

// handleNDVIThumb returns a GIBS tile URL for the region at its end date.
func (a *App) handleNDVIThumb(w http.ResponseWriter, r *http.Request) {
	var req regionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	_, end, err := parseRegionReq(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	url := a.nasa.ThumbnailURL(req.Latitude, req.Longitude, req.ROIDeg, end)
	writeJSON(w, map[string]any{"url": url, "data_source": "nasa"})
}

// handleNDVIPlot renders the series and its peaks as a PNG chart.
func (a *App) handleNDVIPlot(w http.ResponseWriter, r *http.Request) {
	var req peaksReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	series, err := a.fetchSeries(r.Context(), &req.regionReq)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(series) == 0 {
		http.Error(w, "no NDVI data available", http.StatusNotFound)
		return
	}
	threshold := defaultThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	png, err := bloom.RenderSeriesPNG(series, bloom.DetectPeaks(series, threshold))
	if err != nil {
		http.Error(w, "plot error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// handleAnalysis runs the whole pipeline and returns the assembled report
// plus its text rendering.
func (a *App) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysisReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	series, err := a.fetchSeries(r.Context(), &req.regionReq)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, formatted, err := a.runAnalysis(r.Context(), series, req.Threshold, req.FutureSteps, req.LookBack)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if report == nil {
		writeJSON(w, map[string]any{
			"error":       "No NDVI data available",
			"data_source": "nasa",
		})
		return
	}
	writeJSON(w, map[string]any{
		"report":           report,
		"formatted_output": formatted,
		"data_source":      "nasa",
		"success":          true,
	})
}

// runAnalysis is the shared pipeline: peaks and forecast over one canonical
// series, merged by the report assembler. A skipped forecast or empty peak
// set never fails the report.
func (a *App) runAnalysis(ctx context.Context, series bloom.Series, threshold *float64, futureSteps, lookBack *int) (*bloom.Report, string, error) {
	th := defaultThreshold
	if threshold != nil {
		th = *threshold
	}
	params := bloom.ForecastParams{
		FutureSteps: bloom.DefaultFutureSteps,
		LookBack:    bloom.DefaultLookBack,
	}
	if futureSteps != nil {
		params.FutureSteps = *futureSteps
	}
	if lookBack != nil {
		params.LookBack = *lookBack
	}

	peaks := bloom.DetectPeaks(series, th)
	fc, err := bloom.Forecast(ctx, series, params)
	if err != nil {
		return nil, "", err
	}
	report := bloom.BuildReport(series, peaks, fc)
	return report, bloom.FormatReport(report), nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}
