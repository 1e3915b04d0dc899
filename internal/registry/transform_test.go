package registry

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/EcoAtlasZA/offsets-backend/internal/vegmap"
)

func TestGeoJSONToWKTRoundTrip(t *testing.T) {
	// 3D input: the third ordinate must be gone after normalization.
	raw := json.RawMessage(`{"type": "Polygon", "coordinates": [[[18.4,-33.9,10],[18.5,-33.9,11],[18.5,-33.8,12],[18.4,-33.9,10]]]}`)

	wkt, err := geoJSONToWKT(raw)
	if err != nil {
		t.Fatalf("geoJSONToWKT failed: %v", err)
	}
	if !strings.HasPrefix(wkt, "POLYGON") {
		t.Fatalf("expected POLYGON WKT, got %q", wkt)
	}
	if strings.Contains(wkt, "10") && strings.Contains(wkt, "11") && strings.Contains(wkt, "12") {
		t.Errorf("WKT still carries Z ordinates: %q", wkt)
	}

	back, err := wktToGeoJSON(wkt)
	if err != nil {
		t.Fatalf("wktToGeoJSON failed: %v", err)
	}
	var geom struct {
		Type        string         `json:"type"`
		Coordinates [][][2]float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(back, &geom); err != nil {
		t.Fatalf("round-tripped geometry is not valid GeoJSON: %v\n%s", err, back)
	}
	if geom.Type != "Polygon" {
		t.Errorf("expected Polygon, got %q", geom.Type)
	}
	if len(geom.Coordinates) != 1 || len(geom.Coordinates[0]) != 4 {
		t.Errorf("unexpected ring shape: %v", geom.Coordinates)
	}
}

func TestGeoJSONToWKTEmpty(t *testing.T) {
	wkt, err := geoJSONToWKT(nil)
	if err != nil {
		t.Fatalf("unexpected error for empty input: %v", err)
	}
	if wkt != "" {
		t.Errorf("expected empty WKT, got %q", wkt)
	}
}

func TestToDevelopmentOut(t *testing.T) {
	dev := Development{
		UniqueID:  "D1",
		Footprint: "POLYGON((0 0,1 0,1 1,0 0))",
	}

	out, err := toDevelopmentOut(dev)
	if err != nil {
		t.Fatalf("toDevelopmentOut failed: %v", err)
	}
	if !json.Valid(out.Footprint) {
		t.Fatalf("footprint is not valid JSON: %s", out.Footprint)
	}
	if !strings.Contains(string(out.Footprint), `"Polygon"`) {
		t.Errorf("expected GeoJSON Polygon, got %s", out.Footprint)
	}
}

func TestToOffsetOutNilPolygon(t *testing.T) {
	out, err := toOffsetOut(Offset{Type: OffsetFinancial})
	if err != nil {
		t.Fatalf("toOffsetOut failed: %v", err)
	}
	if out.Polygon != nil {
		t.Errorf("expected nil polygon for non-spatial offset, got %s", out.Polygon)
	}
}

func TestZoneOverlapsRoundTrip(t *testing.T) {
	zones := ZoneOverlaps{
		"Peninsula Granite Fynbos": {Area: 12.5, Status: "to be retrieved", Type: "Vegetation"},
	}

	value, err := zones.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var scanned ZoneOverlaps
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if scanned["Peninsula Granite Fynbos"] != (vegmap.ZoneInfo{Area: 12.5, Status: "to be retrieved", Type: "Vegetation"}) {
		t.Errorf("round trip lost data: %+v", scanned)
	}
}

func TestZoneOverlapsScanNil(t *testing.T) {
	scanned := ZoneOverlaps{"stale": {}}
	if err := scanned.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if scanned != nil {
		t.Errorf("expected nil map after scanning NULL, got %v", scanned)
	}

	var fromString ZoneOverlaps
	if err := fromString.Scan(`{"x": {"area": 1, "status": "s", "type": "t"}}`); err != nil {
		t.Fatalf("Scan(string) failed: %v", err)
	}
	if fromString["x"].Area != 1 {
		t.Errorf("string scan lost data: %+v", fromString)
	}

	if err := fromString.Scan(42); err == nil {
		t.Error("expected error scanning an int")
	}
}

func TestZoneOverlapsNilValue(t *testing.T) {
	var zones ZoneOverlaps
	value, err := zones.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if string(value.([]byte)) != "{}" {
		t.Errorf("expected empty object for nil map, got %v", value)
	}
}
