package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/thecatthatbarks/buzzbot/pkg/venues"
)

// DefaultEndpoint is the distance matrix service queried on cache misses.
const DefaultEndpoint = "https://api.distancematrix.ai/maps/api/distancematrix/json"

// RouteClient looks up the driving time between two coordinates. The remote
// service is an opaque, rate-limited oracle; implementations return an error
// for anything other than a usable duration.
type RouteClient interface {
	TravelSeconds(ctx context.Context, origin, destination venues.Coordinates) (int, error)
}

// DistanceMatrixClient queries the distancematrix.ai HTTP API for a single
// origin/destination pair per request.
type DistanceMatrixClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewDistanceMatrixClient creates a client for the given endpoint and key.
// An empty endpoint falls back to DefaultEndpoint.
func NewDistanceMatrixClient(endpoint, apiKey string, logger *zap.Logger) *DistanceMatrixClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &DistanceMatrixClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// distanceMatrixResponse mirrors the subset of the response body we consume:
// the first element of the first row carries the duration in seconds.
type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// TravelSeconds issues one request for the pair and parses the first
// result's duration. Any non-success status or malformed body is an error.
func (c *DistanceMatrixClient) TravelSeconds(ctx context.Context, origin, destination venues.Coordinates) (int, error) {
	reqURL := fmt.Sprintf("%s?origins=%s&destinations=%s&key=%s",
		c.endpoint,
		url.QueryEscape(coordString(origin)),
		url.QueryEscape(coordString(destination)),
		url.QueryEscape(c.apiKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build distance matrix request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("distance matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("distance matrix request returned status %d", resp.StatusCode)
	}

	var body distanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode distance matrix response: %w", err)
	}

	if body.Status != "" && body.Status != "OK" {
		return 0, fmt.Errorf("distance matrix response status %q", body.Status)
	}
	if len(body.Rows) == 0 || len(body.Rows[0].Elements) == 0 {
		return 0, fmt.Errorf("distance matrix response contained no elements")
	}

	element := body.Rows[0].Elements[0]
	if element.Status != "" && element.Status != "OK" {
		return 0, fmt.Errorf("distance matrix element status %q", element.Status)
	}

	c.logger.Debug("Resolved travel time from remote service",
		zap.String("origin", coordString(origin)),
		zap.String("destination", coordString(destination)),
		zap.Int("seconds", element.Duration.Value),
	)

	return element.Duration.Value, nil
}
