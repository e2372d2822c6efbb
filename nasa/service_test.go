package nasa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchORNLSubsetParsesScaledValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("band") != "NDVI" {
			t.Errorf("missing band query param: %s", r.URL.String())
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"scale": 0.0001,
			"data": [
				{"calendar_date": "2023-01-01", "value": 5000},
				{"calendar_date": "2023-01-17", "value": 6000},
				{"calendar_date": "", "value": 7000},
				{"calendar_date": "2023-02-02", "value": null}
			]
		}`))
	}))
	defer srv.Close()

	s := NewService(Config{ORNLBaseURL: srv.URL})
	rows, err := s.FetchORNLSubset(context.Background(), 39, -98,
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 valid rows, got %d", len(rows))
	}
	if *rows[0].NDVI != 0.5 {
		t.Fatalf("value not scaled: %g", *rows[0].NDVI)
	}
	if rows[1].Date != "2023-01-17" || *rows[1].NDVI != 0.6 {
		t.Fatalf("unexpected row %+v", rows[1])
	}
}

func TestFetchORNLSubsetErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewService(Config{ORNLBaseURL: srv.URL})
	if _, err := s.FetchORNLSubset(context.Background(), 39, -98, time.Now().AddDate(-1, 0, 0), time.Now()); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

func TestFetchCMRGranulesUsesAcquisitionDates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page_size"); got != "2000" {
			t.Errorf("page_size = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"feed":{"entry":[
			{"time_start":"2023-04-07T00:00:00.000Z"},
			{"time_start":"2023-04-23T00:00:00.000Z"},
			{"time_start":"broken"}
		]}}`))
	}))
	defer srv.Close()

	s := NewService(Config{CMRBaseURL: srv.URL})
	rows, err := s.FetchCMRGranules(context.Background(), 39, -98, 5,
		time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Date != "2023-04-07" || rows[0].NDVI == nil {
		t.Fatalf("unexpected row %+v", rows[0])
	}
}

func TestHistoricalNDVIFallsBackToSynthetic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewService(Config{ORNLBaseURL: srv.URL, CMRBaseURL: srv.URL})
	rows := s.HistoricalNDVI(context.Background(), 39, -98, 5,
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))
	if len(rows) == 0 {
		t.Fatal("synthetic fallback must always produce rows")
	}
}

func TestTileURL(t *testing.T) {
	s := NewService(Config{})
	got := s.TileURL(40, -100, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))
	want := "https://gibs.earthdata.nasa.gov/wmts/epsg4326/best/MODIS_Terra_NDVI_8Day/default/2023-06-01/GoogleMapsCompatible_Level6/6/17/14.png"
	if got != want {
		t.Fatalf("tile url\n got %s\nwant %s", got, want)
	}
}
