package registry

import (
	"encoding/json"
	"fmt"

	"github.com/EcoAtlasZA/offsets-backend/internal/geometry"
	"github.com/paulmach/orb/geojson"
)

// DevelopmentOut is the API shape of a Development: the stored WKT footprint
// is exposed as a GeoJSON geometry.
type DevelopmentOut struct {
	Development
	Footprint json.RawMessage `json:"footprint"`
}

// OffsetOut is the API shape of an Offset.
type OffsetOut struct {
	Offset
	Polygon json.RawMessage `json:"polygon"`
}

func toDevelopmentOut(dev Development) (DevelopmentOut, error) {
	out := DevelopmentOut{Development: dev}
	if dev.Footprint != "" {
		raw, err := wktToGeoJSON(dev.Footprint)
		if err != nil {
			return out, fmt.Errorf("development %s: %w", dev.UniqueID, err)
		}
		out.Footprint = raw
	}
	return out, nil
}

func toOffsetOut(offset Offset) (OffsetOut, error) {
	out := OffsetOut{Offset: offset}
	if offset.Polygon != nil && *offset.Polygon != "" {
		raw, err := wktToGeoJSON(*offset.Polygon)
		if err != nil {
			return out, fmt.Errorf("offset %s: %w", offset.ID, err)
		}
		out.Polygon = raw
	}
	return out, nil
}

func wktToGeoJSON(s string) (json.RawMessage, error) {
	geom, err := geometry.FromWKT(s)
	if err != nil {
		return nil, err
	}
	return json.Marshal(geojson.NewGeometry(geom))
}

// geoJSONToWKT normalizes an incoming GeoJSON geometry (possibly 3D) and
// renders it as WKT for storage.
func geoJSONToWKT(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	geom, err := geometry.Normalize(raw)
	if err != nil {
		return "", err
	}
	return geometry.ToWKT(geom), nil
}
