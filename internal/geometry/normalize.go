package geometry

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
)

// ParseError wraps a malformed input geometry. There is no recovery: the
// caller treats the record as unusable.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "geometry parse: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// rawGeometry mirrors the GeoJSON geometry envelope so we can rewrite the
// coordinate arrays before handing them to orb. Survey exports often carry a
// spurious Z coordinate which orb's decoder rejects on some geometry types.
type rawGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Normalize parses a GeoJSON geometry object and returns an equivalent 2D
// geometry. Positions with three or more ordinates are truncated to X/Y.
// Normalizing an already-2D geometry is a no-op, so the operation is
// idempotent.
func Normalize(geometryJSON []byte) (orb.Geometry, error) {
	var raw rawGeometry
	if err := json.Unmarshal(geometryJSON, &raw); err != nil {
		return nil, &ParseError{Err: err}
	}
	if raw.Type == "" || len(raw.Coordinates) == 0 {
		return nil, &ParseError{Err: fmt.Errorf("missing type or coordinates")}
	}

	var coords interface{}
	if err := json.Unmarshal(raw.Coordinates, &coords); err != nil {
		return nil, &ParseError{Err: err}
	}
	flattened, err := dropExtraDims(coords)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	rewritten, err := json.Marshal(map[string]interface{}{
		"type":        raw.Type,
		"coordinates": flattened,
	})
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	geom, err := geojson.UnmarshalGeometry(rewritten)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return geom.Geometry(), nil
}

// dropExtraDims walks nested coordinate arrays and truncates every position
// to two ordinates. A "position" is a leaf array whose first element is a
// number; anything else recurses.
func dropExtraDims(v interface{}) (interface{}, error) {
	arr, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("coordinates are not an array")
	}
	if len(arr) == 0 {
		return arr, nil
	}
	if _, isNum := arr[0].(float64); isNum {
		if len(arr) < 2 {
			return nil, fmt.Errorf("position has fewer than 2 ordinates")
		}
		return arr[:2], nil
	}
	out := make([]interface{}, len(arr))
	for i, item := range arr {
		fixed, err := dropExtraDims(item)
		if err != nil {
			return nil, err
		}
		out[i] = fixed
	}
	return out, nil
}

// PrimaryPolygon reduces a geometry to a single polygon: polygons pass
// through, multipolygons yield their first member. The survey shapefiles
// occasionally export single sites as one-element multipolygons.
func PrimaryPolygon(geom orb.Geometry) (orb.Polygon, error) {
	switch g := geom.(type) {
	case orb.Polygon:
		return g, nil
	case orb.MultiPolygon:
		if len(g) == 0 {
			return nil, &ParseError{Err: fmt.Errorf("empty multipolygon")}
		}
		return g[0], nil
	default:
		return nil, &ParseError{Err: fmt.Errorf("expected polygon, got %s", geom.GeoJSONType())}
	}
}

// ToWKT renders a geometry as WKT for storage in a PostGIS geometry column.
func ToWKT(geom orb.Geometry) string {
	return wkt.MarshalString(geom)
}

// FromWKT parses a WKT string back into an orb geometry.
func FromWKT(s string) (orb.Geometry, error) {
	geom, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return geom, nil
}
