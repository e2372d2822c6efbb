package bloom

import "github.com/montanaflynn/stats"

// Trend bands shared by the classifier, recommendations and report rendering.
const (
	trendImproving = 0.01
	trendDeclining = -0.01
	trendUrgent    = -0.02
	trendPositive  = 0.02
)

// Trend returns the least-squares slope of NDVI over position index.
// Series shorter than 2 points have no trend and return 0.
func Trend(s Series) float64 {
	return slope(s.Values())
}

// slope fits y = a + b*x over x = 0..n-1 and returns b.
func slope(y []float64) float64 {
	if len(y) < 2 {
		return 0
	}
	x := make([]float64, len(y))
	for i := range x {
		x[i] = float64(i)
	}
	cov, err := stats.Covariance(x, y)
	if err != nil {
		return 0
	}
	varx, err := stats.SampleVariance(x)
	if err != nil || varx == 0 {
		return 0
	}
	return cov / varx
}

// TrendDirection maps a trend value onto the shared ±0.01 bands.
func TrendDirection(trend float64) string {
	switch {
	case trend > trendImproving:
		return "Improving"
	case trend < trendDeclining:
		return "Declining"
	default:
		return "Stable"
	}
}

// Mean returns the series mean, 0 for an empty series.
func (s Series) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	m, err := stats.Mean(s.Values())
	if err != nil {
		return 0
	}
	return m
}
