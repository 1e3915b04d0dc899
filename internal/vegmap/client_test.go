package vegmap

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"golang.org/x/time/rate"
)

var testPolygon = orb.Polygon{{{18.4, -33.9}, {18.5, -33.9}, {18.5, -33.8}, {18.4, -33.9}}}

func testClient(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 2 * time.Second},
		limiter:    rate.NewLimiter(rate.Inf, 1),
		maxRetries: 2,
		backoff:    time.Millisecond,
	}
}

func TestAreaInfoParsesResults(t *testing.T) {
	var gotGeometry string
	var gotGeometryType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm: %v", err)
		}
		gotGeometry = r.PostFormValue("geometry")
		gotGeometryType = r.PostFormValue("geometryType")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]string{
				{"value": "Peninsula Granite Fynbos", "layerName": "Vegetation"},
				{"value": "Western Cape", "layerName": "Province"},
			},
		})
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	info, err := client.AreaInfo(context.Background(), testPolygon)
	if err != nil {
		t.Fatalf("AreaInfo failed: %v", err)
	}

	if gotGeometryType != "esriGeometryPolygon" {
		t.Errorf("expected esriGeometryPolygon, got %q", gotGeometryType)
	}

	// The geometry parameter must be valid JSON in the rings format, not
	// the bracket-patched string the old capture scripts produced.
	var rings ringsPayload
	if err := json.Unmarshal([]byte(gotGeometry), &rings); err != nil {
		t.Fatalf("geometry param is not valid rings JSON: %v\n%s", err, gotGeometry)
	}
	if len(rings.Rings) != 1 || len(rings.Rings[0]) != 4 {
		t.Errorf("unexpected rings shape: %+v", rings.Rings)
	}
	if rings.Rings[0][0] != [2]float64{18.4, -33.9} {
		t.Errorf("unexpected first coordinate: %v", rings.Rings[0][0])
	}

	if len(info) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(info))
	}
	zone, ok := info["Peninsula Granite Fynbos"]
	if !ok {
		t.Fatal("expected zone 'Peninsula Granite Fynbos'")
	}
	if zone.Type != "Vegetation" {
		t.Errorf("expected type Vegetation, got %q", zone.Type)
	}
	if zone.Status != "to be retrieved" {
		t.Errorf("expected status 'to be retrieved', got %q", zone.Status)
	}
	if zone.Area <= 0 {
		t.Errorf("expected positive area, got %v", zone.Area)
	}
}

func TestAreaInfoMalformedResponse(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"no results array", `{"error": "something"}`},
		{"result missing value", `{"results": [{"layerName": "Vegetation"}]}`},
		{"not json", `<html>503</html>`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := testClient(srv.URL)
			_, err := client.AreaInfo(context.Background(), testPolygon)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var lookupErr *LookupError
			if !errors.As(err, &lookupErr) {
				t.Errorf("expected *LookupError, got %T: %v", err, err)
			}
		})
	}
}

func TestAreaInfoRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "upstream down", http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	info, err := client.AreaInfo(context.Background(), testPolygon)
	if err != nil {
		t.Fatalf("AreaInfo failed after retries: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	if len(info) != 0 {
		t.Errorf("expected empty info for empty results, got %v", info)
	}
}

func TestAreaInfoDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "bad geometry", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	_, err := client.AreaInfo(context.Background(), testPolygon)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}
