// Package bloom analyzes NDVI time series for a geographic point: bloom peak
// detection, trend and health classification, seasonal and management
// recommendations, and a short-horizon forecast.
package bloom

import (
	"math"
	"sort"
	"time"
)

// RawObservation is one (date, value) row as delivered by a data source.
// Rows are not assumed sorted, deduplicated, or even parseable.
type RawObservation struct {
	Date string   `json:"date"`
	NDVI *float64 `json:"ndvi"`
}

// Observation is one canonical (date, NDVI) sample.
type Observation struct {
	Date time.Time `json:"date"`
	NDVI float64   `json:"ndvi"`
}

// Series is an ascending, one-per-day sequence of observations.
// An empty Series is a valid "no signal" state, not an error.
type Series []Observation

var rawDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Normalize turns raw rows into a canonical Series: rows with missing values
// or unparseable dates are dropped, the rest are bucketed per UTC day with the
// last row winning, then sorted ascending. Returns an empty Series when no
// valid rows remain.
func Normalize(rows []RawObservation) Series {
	byDay := make(map[string]Observation, len(rows))
	for _, r := range rows {
		if r.NDVI == nil || math.IsNaN(*r.NDVI) || math.IsInf(*r.NDVI, 0) {
			continue
		}
		t, ok := parseRawDate(r.Date)
		if !ok {
			continue
		}
		d := dateOnlyUTC(t)
		byDay[d.Format("2006-01-02")] = Observation{Date: d, NDVI: *r.NDVI}
	}
	out := make(Series, 0, len(byDay))
	for _, o := range byDay {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Canonical re-normalizes an already parsed series (sort + one-per-day,
// last row wins). Normalize(rows) is already canonical, so Canonical is a
// fixed point: Canonical(Canonical(s)) == Canonical(s).
func Canonical(s Series) Series {
	byDay := make(map[string]Observation, len(s))
	for _, o := range s {
		if math.IsNaN(o.NDVI) || math.IsInf(o.NDVI, 0) {
			continue
		}
		d := dateOnlyUTC(o.Date)
		byDay[d.Format("2006-01-02")] = Observation{Date: d, NDVI: o.NDVI}
	}
	out := make(Series, 0, len(byDay))
	for _, o := range byDay {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func parseRawDate(s string) (time.Time, bool) {
	for _, layout := range rawDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dateOnlyUTC normalizes a timestamp to 00:00:00 UTC (one bucket per day).
func dateOnlyUTC(t time.Time) time.Time {
	tt := t.UTC()
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, time.UTC)
}

// Values returns the NDVI column.
func (s Series) Values() []float64 {
	v := make([]float64, len(s))
	for i, o := range s {
		v[i] = o.NDVI
	}
	return v
}

// First returns the earliest observation; zero value for an empty series.
func (s Series) First() Observation {
	if len(s) == 0 {
		return Observation{}
	}
	return s[0]
}

// Last returns the latest observation; zero value for an empty series.
func (s Series) Last() Observation {
	if len(s) == 0 {
		return Observation{}
	}
	return s[len(s)-1]
}
