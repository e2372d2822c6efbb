package bloom

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// RenderSeriesPNG plots the NDVI series with its detected peaks to a PNG.
// Series longer than 10 points also get a centered 5-point rolling mean.
// Returns nil bytes for an empty series.
func RenderSeriesPNG(s Series, peaks PeakSet) ([]byte, error) {
	if len(s) == 0 {
		return nil, nil
	}

	p := plot.New()
	p.Title.Text = "NDVI Time Series"
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "NDVI"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Y.Min = -0.1
	p.Y.Max = 1.0
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(s))
	for i, o := range s {
		pts[i].X = float64(o.Date.Unix())
		pts[i].Y = o.NDVI
	}
	seriesLine, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("series line: %w", err)
	}
	seriesLine.Color = color.RGBA{B: 255, A: 255}
	p.Add(seriesLine)
	p.Legend.Add("NDVI", seriesLine)

	if len(s) > 10 {
		smooth := rollingMean(s.Values(), 5)
		spts := make(plotter.XYs, 0, len(s))
		for i, v := range smooth {
			if v == nil {
				continue
			}
			spts = append(spts, plotter.XY{X: float64(s[i].Date.Unix()), Y: *v})
		}
		smoothLine, err := plotter.NewLine(spts)
		if err != nil {
			return nil, fmt.Errorf("smooth line: %w", err)
		}
		smoothLine.Color = color.RGBA{R: 255, A: 255}
		smoothLine.Width = vg.Points(2)
		p.Add(smoothLine)
		p.Legend.Add("Smoothed NDVI", smoothLine)
	}

	if len(peaks) > 0 {
		ppts := make(plotter.XYs, len(peaks))
		for i, pk := range peaks {
			ppts[i].X = float64(pk.Date.Unix())
			ppts[i].Y = pk.NDVI
		}
		scatter, err := plotter.NewScatter(ppts)
		if err != nil {
			return nil, fmt.Errorf("peak scatter: %w", err)
		}
		scatter.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
		scatter.GlyphStyle.Shape = draw.CrossGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(4)
		p.Add(scatter)
		p.Legend.Add("Bloom Peaks", scatter)
	}

	w, err := p.WriterTo(12*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("render plot: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write png: %w", err)
	}
	return buf.Bytes(), nil
}

// rollingMean computes a centered moving average; positions where the window
// does not fully fit are nil, matching a centered pandas rolling mean.
func rollingMean(v []float64, window int) []*float64 {
	out := make([]*float64, len(v))
	half := window / 2
	for i := half; i < len(v)-half; i++ {
		sum := 0.0
		for j := i - half; j <= i+half; j++ {
			sum += v[j]
		}
		m := sum / float64(window)
		out[i] = &m
	}
	return out
}
