package vegmap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"golang.org/x/time/rate"
)

// DefaultEndpoint is SANBI's vegetation-map identify service.
const DefaultEndpoint = "http://bgismaps.sanbi.org/arcgis/rest/services/2012VegMap/MapServer/identify"

// ZoneInfo describes one vegetation/administrative zone a polygon overlaps.
type ZoneInfo struct {
	Area   float64 `json:"area"`
	Status string  `json:"status"`
	Type   string  `json:"type"`
}

// LookupError reports a failed or malformed identify call. The caller
// decides whether to skip the record or abort the run.
type LookupError struct {
	Reason string
	Err    error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return "zone lookup: " + e.Reason + ": " + e.Err.Error()
	}
	return "zone lookup: " + e.Reason
}

func (e *LookupError) Unwrap() error { return e.Err }

// Client wraps the vegetation-map identify endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	backoff    time.Duration
}

// NewClient builds a client for the endpoint in VEGMAP_URL, falling back to
// the SANBI production service. The limiter keeps bulk imports from
// hammering a shared government server.
func NewClient() *Client {
	endpoint := os.Getenv("VEGMAP_URL")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter:    rate.NewLimiter(rate.Limit(2), 1),
		maxRetries: 3,
		backoff:    500 * time.Millisecond,
	}
}

// ringsPayload is the esri polygon geometry wire format: one coordinate
// ring per element, each ring a list of [x, y] pairs.
type ringsPayload struct {
	Rings [][][2]float64 `json:"rings"`
}

type identifyResponse struct {
	Results []identifyResult `json:"results"`
}

type identifyResult struct {
	Value     string `json:"value"`
	LayerName string `json:"layerName"`
}

// AreaInfo queries the identify service for every zone the polygon
// overlaps and returns a mapping from zone name to its descriptor.
func (c *Client) AreaInfo(ctx context.Context, polygon orb.Polygon) (map[string]ZoneInfo, error) {
	payload := ringsPayload{}
	for _, ring := range polygon {
		coords := make([][2]float64, len(ring))
		for i, pt := range ring {
			coords[i] = [2]float64{pt[0], pt[1]}
		}
		payload.Rings = append(payload.Rings, coords)
	}

	geomJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, &LookupError{Reason: "encoding rings", Err: err}
	}

	params := url.Values{
		"geometry":       {string(geomJSON)},
		"geometryType":   {"esriGeometryPolygon"},
		"tolerance":      {"0"},
		"mapExtent":      {"-104,35.6,-94.32,41"},
		"imageDisplay":   {"600,550,96"},
		"returnGeometry": {"false"},
		"returnZ":        {"false"},
		"returnM":        {"false"},
		"f":              {"json"},
	}

	body, err := c.post(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp identifyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &LookupError{Reason: "decoding response", Err: err}
	}
	if resp.Results == nil {
		return nil, &LookupError{Reason: "response has no results array"}
	}

	hectares := geo.Area(polygon) / 10_000

	info := make(map[string]ZoneInfo, len(resp.Results))
	for _, item := range resp.Results {
		if item.Value == "" || item.LayerName == "" {
			return nil, &LookupError{Reason: fmt.Sprintf("result missing value/layerName: %+v", item)}
		}
		info[item.Value] = ZoneInfo{
			Area:   hectares,
			Status: "to be retrieved",
			Type:   item.LayerName,
		}
	}
	return info, nil
}

// post issues the identify request with bounded retry. Network failures and
// 5xx responses are retried with doubling backoff; 4xx responses are not.
func (c *Client) post(ctx context.Context, params url.Values) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, &LookupError{Reason: "cancelled", Err: ctx.Err()}
			case <-time.After(c.backoff << (attempt - 1)):
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &LookupError{Reason: "rate limiter", Err: err}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint,
			strings.NewReader(params.Encode()))
		if err != nil {
			return nil, &LookupError{Reason: "creating request", Err: err}
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("identify service returned HTTP %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, &LookupError{Reason: fmt.Sprintf("identify service returned HTTP %d", resp.StatusCode)}
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		return body, nil
	}

	return nil, &LookupError{Reason: "request failed after retries", Err: lastErr}
}
