package areaimport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/EcoAtlasZA/offsets-backend/internal/db"
	"github.com/EcoAtlasZA/offsets-backend/internal/protected"
	"github.com/joho/godotenv"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestReadCollection(t *testing.T) {
	path := writeTempFile(t, "areas.geojson", `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {"PROVINCE": "Gauteng", "CODE": 7},
			 "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}}
		]
	}`)

	fc, err := readCollection(path)
	if err != nil {
		t.Fatalf("readCollection failed: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fc.Features))
	}
	if got := prop(fc.Features[0].Properties, "PROVINCE"); got != "Gauteng" {
		t.Errorf("expected Gauteng, got %q", got)
	}
	// Non-string properties come back empty rather than panicking.
	if got := prop(fc.Features[0].Properties, "CODE"); got != "" {
		t.Errorf("expected empty string for numeric property, got %q", got)
	}
}

func TestReadCollectionBadFile(t *testing.T) {
	if _, err := readCollection(filepath.Join(t.TempDir(), "nope.geojson")); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeTempFile(t, "broken.geojson", `{"type": "FeatureCollection", "features": [`)
	if _, err := readCollection(path); err == nil {
		t.Error("expected error for truncated JSON")
	}
}

func requireDB(t *testing.T) {
	t.Helper()
	_ = godotenv.Load("../../.env.local")
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	if db.DB == nil {
		db.Connect()
		protected.Init()
	}
}

func TestLoadProvincesIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	requireDB(t)

	path := writeTempFile(t, "provinces.geojson", `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {"PROVINCE": "Test Province areaimport"},
			 "geometry": {"type": "Polygon", "coordinates": [[[28,-26],[28.1,-26],[28.1,-25.9],[28,-26]]]}},
			{"type": "Feature", "properties": {},
			 "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}}
		]
	}`)

	t.Cleanup(func() {
		db.DB.Where("name = ?", "Test Province areaimport").Delete(&protected.ProtectedArea{})
	})

	summary, err := LoadProvinces(db.DB, path)
	if err != nil {
		t.Fatalf("LoadProvinces failed: %v", err)
	}
	if summary.Created != 1 || summary.Failed != 1 {
		t.Errorf("expected 1 created / 1 failed, got %+v", summary)
	}

	var area protected.ProtectedArea
	if err := db.DB.Where("name = ?", "Test Province areaimport").First(&area).Error; err != nil {
		t.Fatalf("province not persisted: %v", err)
	}
	if area.Type != protected.TypeProvince {
		t.Errorf("expected type %q, got %q", protected.TypeProvince, area.Type)
	}
}

func TestLoadProtectedAreasIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	requireDB(t)

	path := writeTempFile(t, "ramsar.geojson", `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature",
			 "properties": {"NAME": "Test Ramsar areaimport", "SITE_NO": "ZA999", "DESIGNATIO": "21 June 1991"},
			 "geometry": {"type": "Polygon", "coordinates": [[[30,-28],[30.1,-28],[30.1,-27.9],[30,-28]]]}}
		]
	}`)

	t.Cleanup(func() {
		db.DB.Where("name = ?", "Test Ramsar areaimport").Delete(&protected.ProtectedArea{})
	})

	summary, err := LoadProtectedAreas(db.DB, path)
	if err != nil {
		t.Fatalf("LoadProtectedAreas failed: %v", err)
	}
	if summary.Created != 1 || summary.Failed != 0 {
		t.Errorf("expected 1 created / 0 failed, got %+v", summary)
	}

	var area protected.ProtectedArea
	if err := db.DB.Where("name = ?", "Test Ramsar areaimport").First(&area).Error; err != nil {
		t.Fatalf("site not persisted: %v", err)
	}
	if area.Identifier != "ZA999" {
		t.Errorf("expected site number ZA999, got %q", area.Identifier)
	}
	if area.Type != protected.TypeRamsar {
		t.Errorf("expected type %q, got %q", protected.TypeRamsar, area.Type)
	}
	if area.Date == nil || area.Date.Year() != 1991 {
		t.Errorf("expected designation date in 1991, got %v", area.Date)
	}
}
