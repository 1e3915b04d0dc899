package offsetsimport

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/EcoAtlasZA/offsets-backend/internal/geometry"
	"github.com/paulmach/orb"
)

// Feature is one indexed GeoJSON feature: its polygon normalized to 2D plus
// any provenance properties we keep.
type Feature struct {
	Polygon  orb.Polygon
	Province string
}

// FeatureIndex joins survey rows to geometries by the shared Uniq_ID.
type FeatureIndex struct {
	ByID map[string]Feature

	// Duplicates lists Uniq_IDs that appeared more than once in the source
	// collection. Later features overwrite earlier ones, so anything in here
	// means the source data needs attention.
	Duplicates []string
}

type rawFeatureCollection struct {
	Features []struct {
		Properties map[string]interface{} `json:"properties"`
		Geometry   json.RawMessage        `json:"geometry"`
	} `json:"features"`
}

// IndexFeatures parses a GeoJSON FeatureCollection into a map keyed by the
// Uniq_ID property. Iteration order is source order; a duplicate id
// overwrites the earlier entry and is recorded.
func IndexFeatures(path string) (*FeatureIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fc rawFeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%s: parsing feature collection: %w", path, err)
	}

	index := &FeatureIndex{ByID: map[string]Feature{}}
	for i, item := range fc.Features {
		uid, ok := item.Properties["Uniq_ID"].(string)
		if !ok || uid == "" {
			return nil, fmt.Errorf("%s: feature %d has no Uniq_ID property", path, i)
		}

		geom, err := geometry.Normalize(item.Geometry)
		if err != nil {
			return nil, fmt.Errorf("%s: feature %s: %w", path, uid, err)
		}
		polygon, err := geometry.PrimaryPolygon(geom)
		if err != nil {
			return nil, fmt.Errorf("%s: feature %s: %w", path, uid, err)
		}

		if _, seen := index.ByID[uid]; seen {
			index.Duplicates = append(index.Duplicates, uid)
		}

		feature := Feature{Polygon: polygon}
		if province, ok := item.Properties["PROVINCE"].(string); ok {
			feature.Province = province
		}
		index.ByID[uid] = feature
	}

	return index, nil
}
