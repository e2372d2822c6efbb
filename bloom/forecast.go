package bloom

import (
	"context"
	"fmt"
	"time"
)

// Defaults for the forecast configuration surface.
const (
	DefaultFutureSteps = 60
	DefaultLookBack    = 30

	// waterFloor suppresses forecasting when the series mean is below it:
	// such a signal is water or bare ground, not vegetation.
	waterFloor = 0.1
)

// ForecastParams configures one forecast run.
type ForecastParams struct {
	// FutureSteps is the number of daily values to predict.
	FutureSteps int
	// LookBack is the requested window length; it is clamped down on short
	// series.
	LookBack int
	// AnchorEnd, when set, overrides the series' own last date as the day
	// the forecast is anchored after.
	AnchorEnd *time.Time
}

// ForecastResult is either a forecast or an explicit skip with a reason.
// A skip is a first-class outcome, not an error.
type ForecastResult struct {
	Skipped bool        `json:"skipped"`
	Reason  string      `json:"reason,omitempty"`
	Dates   []time.Time `json:"dates,omitempty"`
	Values  []float64   `json:"values,omitempty"`
}

const (
	skipNoData       = "No NDVI data available"
	skipWater        = "avg NDVI < 0.1 indicates water"
	skipInsufficient = "not enough observations to train forecaster"
)

func skipped(reason string) *ForecastResult {
	return &ForecastResult{Skipped: true, Reason: reason}
}

// Forecast trains a fresh regressor on the series and recursively predicts
// FutureSteps daily values. Empty, water-like, or too-short series produce a
// skipped result; only malformed parameters are errors. Each predicted value
// is fed back into the rolling window, so per-step error compounds over the
// horizon: this is a best-effort extrapolation, not a validated forecast.
func Forecast(ctx context.Context, s Series, p ForecastParams) (*ForecastResult, error) {
	if p.FutureSteps <= 0 {
		return nil, fmt.Errorf("future_steps must be positive, got %d", p.FutureSteps)
	}
	if p.LookBack <= 0 {
		return nil, fmt.Errorf("look_back must be positive, got %d", p.LookBack)
	}
	if len(s) == 0 {
		return skipped(skipNoData), nil
	}
	if s.Mean() < waterFloor {
		return skipped(skipWater), nil
	}

	// Min-max scale to [0,1] from the full series; the same parameters
	// invert the predictions below and live only for this call.
	sc := fitScaler(s.Values())
	dataset := sc.transform(s.Values())

	lookBack := p.LookBack
	if len(dataset) <= lookBack+5 {
		lookBack = len(dataset) / 3
		if lookBack < 5 {
			lookBack = 5
		}
	}
	if len(dataset) < lookBack {
		return skipped(skipInsufficient), nil
	}

	// Positional 80/20 split; only the leading portion trains the model.
	trainSize := int(float64(len(dataset)) * 0.8)
	inputs, targets := makeWindows(dataset[:trainSize], lookBack)
	if len(inputs) == 0 {
		return skipped(skipInsufficient), nil
	}

	model := newRegressor(lookBack)
	if err := model.train(ctx, inputs, targets); err != nil {
		return nil, err
	}

	// Recursive multi-step inference seeded with the last window.
	window := make([]float64, lookBack)
	copy(window, dataset[len(dataset)-lookBack:])
	preds := make([]float64, 0, p.FutureSteps)
	for step := 0; step < p.FutureSteps; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next := model.predict(window)
		preds = append(preds, next)
		copy(window, window[1:])
		window[lookBack-1] = next
	}

	anchor := s.Last().Date
	if p.AnchorEnd != nil {
		anchor = dateOnlyUTC(*p.AnchorEnd)
	}
	dates := make([]time.Time, p.FutureSteps)
	for i := range dates {
		dates[i] = anchor.AddDate(0, 0, i+1)
	}

	return &ForecastResult{Dates: dates, Values: sc.inverse(preds)}, nil
}

// makeWindows builds the overlapping (window -> next value) training pairs.
func makeWindows(data []float64, lookBack int) (inputs [][]float64, targets []float64) {
	for i := 0; i+lookBack < len(data); i++ {
		w := make([]float64, lookBack)
		copy(w, data[i:i+lookBack])
		inputs = append(inputs, w)
		targets = append(targets, data[i+lookBack])
	}
	return inputs, targets
}

// scaler holds the min-max parameters for one forecast call.
type scaler struct {
	min, max float64
}

func fitScaler(v []float64) scaler {
	sc := scaler{min: v[0], max: v[0]}
	for _, x := range v {
		if x < sc.min {
			sc.min = x
		}
		if x > sc.max {
			sc.max = x
		}
	}
	return sc
}

func (sc scaler) transform(v []float64) []float64 {
	out := make([]float64, len(v))
	span := sc.max - sc.min
	if span == 0 {
		return out
	}
	for i, x := range v {
		out[i] = (x - sc.min) / span
	}
	return out
}

func (sc scaler) inverse(v []float64) []float64 {
	out := make([]float64, len(v))
	span := sc.max - sc.min
	for i, x := range v {
		out[i] = x*span + sc.min
	}
	return out
}
