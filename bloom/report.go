package bloom

import (
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"
)

// Report is the assembled analysis output. Field names and nesting are the
// contract consumed by the API layer and stored documents; do not rename.
type Report struct {
	Summary         ReportSummary         `json:"summary" bson:"summary"`
	CurrentStatus   ReportCurrentStatus   `json:"current_status" bson:"current_status"`
	Trends          ReportTrends          `json:"trends" bson:"trends"`
	Recommendations ReportRecommendations `json:"recommendations" bson:"recommendations"`
	Forecast        *ReportForecast       `json:"forecast,omitempty" bson:"forecast,omitempty"`
	Peaks           *ReportPeaks          `json:"peaks,omitempty" bson:"peaks,omitempty"`
}

type ReportSummary struct {
	AnalysisPeriod string `json:"analysis_period" bson:"analysis_period"`
	DataPoints     int    `json:"data_points" bson:"data_points"`
}

type ReportCurrentStatus struct {
	VegetationType    string  `json:"vegetation_type" bson:"vegetation_type"`
	Description       string  `json:"description" bson:"description"`
	HealthStatus      string  `json:"health_status" bson:"health_status"`
	HealthDescription string  `json:"health_description" bson:"health_description"`
	CurrentNDVI       float64 `json:"current_ndvi" bson:"current_ndvi"`
	Date              string  `json:"date" bson:"date"`
}

type ReportTrends struct {
	MeanNDVI       float64 `json:"mean_ndvi" bson:"mean_ndvi"`
	MaxNDVI        float64 `json:"max_ndvi" bson:"max_ndvi"`
	MinNDVI        float64 `json:"min_ndvi" bson:"min_ndvi"`
	TrendDirection string  `json:"trend_direction" bson:"trend_direction"`
	TrendValue     float64 `json:"trend_value" bson:"trend_value"`
}

type ReportRecommendations struct {
	Seasonal   []string `json:"seasonal" bson:"seasonal"`
	Management []string `json:"management" bson:"management"`
}

type ReportForecast struct {
	ForecastPeriod         string  `json:"forecast_period" bson:"forecast_period"`
	PredictedMeanNDVI      float64 `json:"predicted_mean_ndvi" bson:"predicted_mean_ndvi"`
	ForecastTrend          string  `json:"forecast_trend" bson:"forecast_trend"`
	ForecastInterpretation string  `json:"forecast_interpretation" bson:"forecast_interpretation"`
}

type ReportPeaks struct {
	TotalPeaks     int       `json:"total_peaks" bson:"total_peaks"`
	PeakDates      []string  `json:"peak_dates" bson:"peak_dates"`
	PeakNDVIValues []float64 `json:"peak_ndvi_values" bson:"peak_ndvi_values"`
}

// BuildReport assembles the full report from a canonical Series, the peaks
// detected on that same series, and an optional forecast. A skipped or nil
// forecast and an empty PeakSet simply leave those sections out. Returns nil
// for an empty series: there is nothing to report on.
func BuildReport(s Series, peaks PeakSet, fc *ForecastResult) *Report {
	if len(s) == 0 {
		return nil
	}

	values := s.Values()
	meanNDVI := s.Mean()
	maxNDVI, _ := stats.Max(values)
	minNDVI, _ := stats.Min(values)
	trend := Trend(s)

	current := s.Last()
	vegType, vegDesc := InterpretValue(current.NDVI)
	health, healthDesc := HealthStatus(meanNDVI, trend)

	r := &Report{
		Summary: ReportSummary{
			AnalysisPeriod: fmt.Sprintf("%s to %s",
				s.First().Date.Format("2006-01-02"),
				current.Date.Format("2006-01-02")),
			DataPoints: len(s),
		},
		CurrentStatus: ReportCurrentStatus{
			VegetationType:    vegType,
			Description:       vegDesc,
			HealthStatus:      health,
			HealthDescription: healthDesc,
			CurrentNDVI:       round3(current.NDVI),
			Date:              current.Date.Format("2006-01-02"),
		},
		Trends: ReportTrends{
			MeanNDVI:       round3(meanNDVI),
			MaxNDVI:        round3(maxNDVI),
			MinNDVI:        round3(minNDVI),
			TrendDirection: TrendDirection(trend),
			TrendValue:     round4(trend),
		},
		Recommendations: ReportRecommendations{
			Seasonal:   SeasonalRecommendations(current.Date.Month(), current.NDVI),
			Management: ManagementRecommendations(current.NDVI, trend),
		},
	}

	if fc != nil && !fc.Skipped && len(fc.Values) > 0 {
		fcMean, _ := stats.Mean(fc.Values)
		fcTrend := slope(fc.Values)
		fcType, _ := InterpretValue(fcMean)
		r.Forecast = &ReportForecast{
			ForecastPeriod: fmt.Sprintf("%s to %s",
				fc.Dates[0].Format("2006-01-02"),
				fc.Dates[len(fc.Dates)-1].Format("2006-01-02")),
			PredictedMeanNDVI:      round3(fcMean),
			ForecastTrend:          TrendDirection(fcTrend),
			ForecastInterpretation: fcType,
		}
	}

	if len(peaks) > 0 {
		rp := &ReportPeaks{TotalPeaks: len(peaks)}
		for _, p := range peaks {
			rp.PeakDates = append(rp.PeakDates, p.Date.Format("2006-01-02"))
			rp.PeakNDVIValues = append(rp.PeakNDVIValues, round3(p.NDVI))
		}
		r.Peaks = rp
	}

	return r
}

// FormatReport renders the report as plain text. Pure transform; the report
// itself is never mutated.
func FormatReport(r *Report) string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("BLOOMWATCH ANALYSIS REPORT")
	line(strings.Repeat("=", 50))

	line("")
	line("ANALYSIS SUMMARY")
	line("Period: %s", r.Summary.AnalysisPeriod)
	line("Data Points: %d", r.Summary.DataPoints)

	line("")
	line("CURRENT VEGETATION STATUS")
	line("Type: %s", r.CurrentStatus.VegetationType)
	line("Description: %s", r.CurrentStatus.Description)
	line("Health: %s", r.CurrentStatus.HealthStatus)
	line("Details: %s", r.CurrentStatus.HealthDescription)
	line("Current NDVI: %g", r.CurrentStatus.CurrentNDVI)

	line("")
	line("TREND ANALYSIS")
	line("Average NDVI: %g", r.Trends.MeanNDVI)
	line("Highest NDVI: %g", r.Trends.MaxNDVI)
	line("Lowest NDVI: %g", r.Trends.MinNDVI)
	line("Trend: %s (%g)", r.Trends.TrendDirection, r.Trends.TrendValue)

	line("")
	line("RECOMMENDATIONS")
	line("Seasonal:")
	for _, rec := range r.Recommendations.Seasonal {
		line("  - %s", rec)
	}
	line("Management:")
	for _, rec := range r.Recommendations.Management {
		line("  - %s", rec)
	}

	if r.Forecast != nil {
		line("")
		line("FORECAST")
		line("Period: %s", r.Forecast.ForecastPeriod)
		line("Predicted NDVI: %g", r.Forecast.PredictedMeanNDVI)
		line("Forecast Trend: %s", r.Forecast.ForecastTrend)
		line("Interpretation: %s", r.Forecast.ForecastInterpretation)
	}

	if r.Peaks != nil && r.Peaks.TotalPeaks > 0 {
		line("")
		line("DETECTED BLOOM EVENTS")
		line("Total Peaks: %d", r.Peaks.TotalPeaks)
		for i, date := range r.Peaks.PeakDates {
			line("  Peak %d: %s (NDVI: %g)", i+1, date, r.Peaks.PeakNDVIValues[i])
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func round3(v float64) float64 {
	r, _ := stats.Round(v, 3)
	return r
}

func round4(v float64) float64 {
	r, _ := stats.Round(v, 4)
	return r
}
