// Package nasa fetches NDVI time series for a point from NASA's public data
// services, falling back through ORNL MODIS subsets, CMR granule metadata,
// and finally a deterministic synthetic generator.
package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bloomwatch/bloom"
)

const (
	defaultORNLBaseURL = "https://modis.ornl.gov/rst/api/v1"
	defaultCMRBaseURL  = "https://cmr.earthdata.nasa.gov/search"
	defaultGIBSBaseURL = "https://gibs.earthdata.nasa.gov/wmts/epsg4326/best"

	// MOD13 collection id used for CMR granule searches.
	cmrCollectionID = "C1240039670-LPCLOUD"

	userAgent = "BloomWatch/1.0"
)

// Config holds the service endpoints; zero values use the public NASA hosts.
type Config struct {
	ORNLBaseURL string
	CMRBaseURL  string
	GIBSBaseURL string
}

// Service is the data-acquisition client. Construct one per process and pass
// it into the API layer; it is safe for concurrent use.
type Service struct {
	cfg  Config
	http *http.Client
}

func NewService(cfg Config) *Service {
	if cfg.ORNLBaseURL == "" {
		cfg.ORNLBaseURL = defaultORNLBaseURL
	}
	if cfg.CMRBaseURL == "" {
		cfg.CMRBaseURL = defaultCMRBaseURL
	}
	if cfg.GIBSBaseURL == "" {
		cfg.GIBSBaseURL = defaultGIBSBaseURL
	}
	return &Service{
		cfg:  cfg,
		http: &http.Client{Timeout: 60 * time.Second},
	}
}

// HistoricalNDVI returns raw NDVI rows for the point, trying the real
// services first and generating synthetic data when both are unavailable.
// The rows are unordered and undeduplicated; callers normalize them.
func (s *Service) HistoricalNDVI(ctx context.Context, lat, lon, roiDeg float64, start, end time.Time) []bloom.RawObservation {
	if rows, err := s.FetchORNLSubset(ctx, lat, lon, start, end); err == nil && len(rows) > 0 {
		return rows
	}
	if rows, err := s.FetchCMRGranules(ctx, lat, lon, roiDeg, start, end); err == nil && len(rows) > 0 {
		return rows
	}
	return SyntheticHistory(lat, lon, start, end)
}

type ornlResponse struct {
	Scale json.Number `json:"scale"`
	Data  []struct {
		CalendarDate string      `json:"calendar_date"`
		Value        json.Number `json:"value"`
	} `json:"data"`
}

// FetchORNLSubset queries the ORNL MODIS subset point API for MOD13C1 NDVI.
// Rows with missing dates or values are dropped, not fatal.
func (s *Service) FetchORNLSubset(ctx context.Context, lat, lon float64, start, end time.Time) ([]bloom.RawObservation, error) {
	u := fmt.Sprintf("%s/MOD13C1/point?latitude=%g&longitude=%g&startDate=%s&endDate=%s&band=NDVI",
		s.cfg.ORNLBaseURL, lat, lon, start.Format("2006-01-02"), end.Format("2006-01-02"))

	var payload ornlResponse
	if err := s.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}

	scale := 0.0001
	if f, err := payload.Scale.Float64(); err == nil && f != 0 {
		scale = f
	}

	rows := make([]bloom.RawObservation, 0, len(payload.Data))
	for _, item := range payload.Data {
		if item.CalendarDate == "" {
			continue
		}
		f, err := item.Value.Float64()
		if err != nil || math.IsNaN(f) {
			continue
		}
		v := f * scale
		rows = append(rows, bloom.RawObservation{Date: item.CalendarDate, NDVI: &v})
	}
	return rows, nil
}

type cmrResponse struct {
	Feed struct {
		Entry []struct {
			TimeStart string `json:"time_start"`
		} `json:"entry"`
	} `json:"feed"`
}

// FetchCMRGranules searches CMR for MODIS granules over the ROI and assigns
// each granule date a synthetic value; the granule metadata carries no pixel
// data, only acquisition dates.
func (s *Service) FetchCMRGranules(ctx context.Context, lat, lon, roiDeg float64, start, end time.Time) ([]bloom.RawObservation, error) {
	half := roiDeg / 2.0
	bbox := fmt.Sprintf("%g,%g,%g,%g", lon-half, lat-half, lon+half, lat+half)

	q := url.Values{}
	q.Set("collection_concept_id", cmrCollectionID)
	q.Set("temporal", fmt.Sprintf("%sT00:00:00Z,%sT23:59:59Z",
		start.Format("2006-01-02"), end.Format("2006-01-02")))
	q.Set("bounding_box", bbox)
	q.Set("page_size", "2000")

	var payload cmrResponse
	if err := s.getJSON(ctx, s.cfg.CMRBaseURL+"/granules?"+q.Encode(), &payload); err != nil {
		return nil, err
	}

	var rows []bloom.RawObservation
	for _, g := range payload.Feed.Entry {
		datePart, _, _ := strings.Cut(g.TimeStart, "T")
		d, err := time.Parse("2006-01-02", datePart)
		if err != nil {
			continue
		}
		v := SyntheticNDVI(d, lat, lon)
		rows = append(rows, bloom.RawObservation{Date: datePart, NDVI: &v})
	}
	return rows, nil
}

// TileURL builds a GIBS WMTS tile URL for the MODIS Terra 8-day NDVI layer
// covering the point on the given date.
func (s *Service) TileURL(lat, lon float64, date time.Time) string {
	const zoom = 6
	n := math.Pow(2, zoom)
	x := int((lon + 180.0) / 360.0 * n)
	y := int((90.0 - lat) / 180.0 * n)
	return fmt.Sprintf("%s/MODIS_Terra_NDVI_8Day/default/%s/GoogleMapsCompatible_Level%d/%d/%d/%d.png",
		s.cfg.GIBSBaseURL, date.Format("2006-01-02"), zoom, zoom, y, x)
}

// ThumbnailURL returns a tile URL anchored at the end of the requested range.
func (s *Service) ThumbnailURL(lat, lon, roiDeg float64, end time.Time) string {
	return s.TileURL(lat, lon, end)
}

func (s *Service) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("nasa request failed: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("nasa non-2xx: %s, body: %s", resp.Status, string(data))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode nasa resp: %w", err)
	}
	return nil
}
