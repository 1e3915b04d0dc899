package areaimport

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/EcoAtlasZA/offsets-backend/internal/geometry"
	"github.com/EcoAtlasZA/offsets-backend/internal/protected"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Summary counts one loader run.
type Summary struct {
	Created int
	Failed  int
}

type rawFeatureCollection struct {
	Features []struct {
		Properties map[string]interface{} `json:"properties"`
		Geometry   json.RawMessage        `json:"geometry"`
	} `json:"features"`
}

func readCollection(path string) (*rawFeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fc rawFeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%s: parsing feature collection: %w", path, err)
	}
	return &fc, nil
}

func prop(props map[string]interface{}, name string) string {
	s, _ := props[name].(string)
	return s
}

// LoadProvinces creates one province record per feature. Per-feature
// problems are logged and the loader continues; only an unreadable file
// aborts.
func LoadProvinces(db *gorm.DB, path string) (*Summary, error) {
	fc, err := readCollection(path)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for i, item := range fc.Features {
		name := prop(item.Properties, "PROVINCE")
		if name == "" {
			log.Printf("[areas] feature %d: no PROVINCE property", i)
			summary.Failed++
			continue
		}

		geom, err := geometry.Normalize(item.Geometry)
		if err != nil {
			log.Printf("[areas] province %s: %v", name, err)
			summary.Failed++
			continue
		}

		area := protected.ProtectedArea{
			ID:      uuid.New(),
			Name:    name,
			Type:    protected.TypeProvince,
			Polygon: geometry.ToWKT(geom),
		}
		if err := db.Create(&area).Error; err != nil {
			log.Printf("[areas] province %s: create: %v", name, err)
			summary.Failed++
			continue
		}
		summary.Created++
		log.Printf("[areas] saved province %s", name)
	}

	log.Printf("[areas] done: %d created, %d failed", summary.Created, summary.Failed)
	return summary, nil
}

// LoadProtectedAreas creates one Ramsar-site record per feature. The
// DESIGNATIO property carries the designation date as "02 January 2006".
func LoadProtectedAreas(db *gorm.DB, path string) (*Summary, error) {
	fc, err := readCollection(path)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for i, item := range fc.Features {
		name := prop(item.Properties, "NAME")
		if name == "" {
			log.Printf("[areas] feature %d: no NAME property", i)
			summary.Failed++
			continue
		}

		geom, err := geometry.Normalize(item.Geometry)
		if err != nil {
			log.Printf("[areas] site %s: %v", name, err)
			summary.Failed++
			continue
		}

		area := protected.ProtectedArea{
			ID:         uuid.New(),
			Name:       name,
			Identifier: prop(item.Properties, "SITE_NO"),
			Type:       protected.TypeRamsar,
			Polygon:    geometry.ToWKT(geom),
		}
		if raw := prop(item.Properties, "DESIGNATIO"); raw != "" {
			designated, err := time.Parse("02 January 2006", raw)
			if err != nil {
				log.Printf("[areas] site %s: bad designation date %q: %v", name, raw, err)
				summary.Failed++
				continue
			}
			area.Date = &designated
		}

		if err := db.Create(&area).Error; err != nil {
			log.Printf("[areas] site %s: create: %v", name, err)
			summary.Failed++
			continue
		}
		summary.Created++
		log.Printf("[areas] saved %s", name)
	}

	log.Printf("[areas] done: %d created, %d failed", summary.Created, summary.Failed)
	return summary, nil
}
