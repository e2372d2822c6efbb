package bloom

import "time"

// Peak is one detected bloom event: a strict local maximum at Index into the
// series it was detected on.
type Peak struct {
	Index int       `json:"index"`
	Date  time.Time `json:"date"`
	NDVI  float64   `json:"ndvi"`
}

// PeakSet holds bloom peaks in series order. Indices stay valid only for the
// exact Series they were computed against.
type PeakSet []Peak

// DetectPeaks finds strict local maxima with NDVI >= threshold. A plateau of
// equal values counts as a single peak at its first point. Series boundaries
// are never peaks. Series shorter than 3 points yield no peaks.
func DetectPeaks(s Series, threshold float64) PeakSet {
	var peaks PeakSet
	if len(s) < 3 {
		return peaks
	}
	v := s.Values()
	i := 1
	for i < len(v)-1 {
		if v[i] <= v[i-1] {
			i++
			continue
		}
		// Walk to the end of an equal-valued plateau starting at i.
		j := i
		for j+1 < len(v) && v[j+1] == v[i] {
			j++
		}
		if j+1 < len(v) && v[j+1] < v[i] && v[i] >= threshold {
			peaks = append(peaks, Peak{Index: i, Date: s[i].Date, NDVI: v[i]})
		}
		i = j + 1
	}
	return peaks
}

// Indices returns the peak positions, for callers that only need offsets.
func (p PeakSet) Indices() []int {
	idx := make([]int, len(p))
	for i, pk := range p {
		idx[i] = pk.Index
	}
	return idx
}
