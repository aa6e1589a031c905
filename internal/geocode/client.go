package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/containerd/errdefs"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// UnknownLocality is returned when the reverse geocoder resolves the
// coordinate but reports no usable locality name.
const UnknownLocality = "Unknown"

const userAgent = "restaurantapp-backend/1.0"

// Client resolves coordinates to city names against a Nominatim-compatible
// reverse geocoding endpoint. Results are cached because ingestion resolves
// the same search point for every batch coming from the same map view.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
	logger     *zap.Logger
}

// NewClient creates a reverse geocoding client
func NewClient(baseURL string, cacheTTL time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache:  cache.New(cacheTTL, 2*cacheTTL),
		logger: logger,
	}
}

// reverseResponse is the subset of the Nominatim reverse payload we read
type reverseResponse struct {
	Address struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Municipality string `json:"municipality"`
	} `json:"address"`
}

// ResolveCity reverse-geocodes a coordinate into a city name. Nominatim
// labels localities differently by region, so town, village and
// municipality are accepted as fallbacks.
func (c *Client) ResolveCity(ctx context.Context, lat, lng float64) (string, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lng)
	if cached, found := c.cache.Get(key); found {
		return cached.(string), nil
	}

	endpoint := fmt.Sprintf("%s/reverse?format=json&lat=%s&lon=%s",
		c.baseURL,
		url.QueryEscape(fmt.Sprintf("%f", lat)),
		url.QueryEscape(fmt.Sprintf("%f", lng)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create reverse geocode request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: reverse geocode request failed: %v", errdefs.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: reverse geocode returned status %d", errdefs.ErrUnavailable, resp.StatusCode)
	}

	var payload reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: failed to decode reverse geocode response: %v", errdefs.ErrUnavailable, err)
	}

	city := firstNonEmpty(
		payload.Address.City,
		payload.Address.Town,
		payload.Address.Village,
		payload.Address.Municipality,
	)
	if city == "" {
		c.logger.Warn("reverse geocode returned no locality",
			zap.Float64("lat", lat),
			zap.Float64("lng", lng))
		city = UnknownLocality
	}

	c.cache.Set(key, city, cache.DefaultExpiration)
	return city, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
