// Package geocode resolves free-form place names to coordinates
// through the geocode.maps.co forward-geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the default geocoding API URL.
const DefaultBaseURL = "https://geocode.maps.co"

// ErrLookup indicates a geocoding lookup failure.
var ErrLookup = errors.New("geocode lookup failed")

// ErrMissingAPIKey indicates no geocoding API key was provided.
var ErrMissingAPIKey = errors.New("geocoding API key is required")

// Position is a resolved place.
type Position struct {
	// Lat and Lon are decimal degrees.
	Lat float64
	Lon float64

	// DisplayName is the provider's full name for the place.
	DisplayName string
}

// Client wraps the forward-geocoding API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config holds configuration for the geocoding client.
type Config struct {
	// BaseURL is the geocoding API URL. Defaults to DefaultBaseURL if empty.
	BaseURL string

	// APIKey authenticates requests. Required.
	APIKey string
}

// searchResult is one entry of the API's search response. The provider
// encodes coordinates as strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NewClient creates a geocoding client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Lookup resolves a place name to its best-matching position. The API
// orders results by relevance; the first one wins.
func (c *Client) Lookup(ctx context.Context, place string) (Position, error) {
	query := url.Values{}
	query.Set("q", place)
	query.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return Position{}, fmt.Errorf("%w: creating request: %v", ErrLookup, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Position{}, fmt.Errorf("%w: sending request: %v", ErrLookup, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Position{}, fmt.Errorf("%w: geocoder returned status %d: %s", ErrLookup, resp.StatusCode, string(body))
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Position{}, fmt.Errorf("%w: decoding response: %v", ErrLookup, err)
	}

	if len(results) == 0 {
		return Position{}, fmt.Errorf("%w: no results for %q", ErrLookup, place)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Position{}, fmt.Errorf("%w: parsing latitude %q: %v", ErrLookup, results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Position{}, fmt.Errorf("%w: parsing longitude %q: %v", ErrLookup, results[0].Lon, err)
	}

	return Position{
		Lat:         lat,
		Lon:         lon,
		DisplayName: results[0].DisplayName,
	}, nil
}
