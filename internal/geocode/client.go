// Package geocode backs the location autocomplete with a
// Nominatim-compatible geocoding service.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Place is one geocoder match. Lat/Lon arrive as strings on the wire.
type Place struct {
	DisplayName string  `json:"display_name"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Address     Address `json:"address"`
}

// Address is the structured part of a match.
type Address struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Client calls the geocoding service.
type Client struct {
	baseURL    string
	limit      int
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		limit:      5,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Search returns up to five places matching a free-text location.
func (c *Client) Search(ctx context.Context, query string) ([]Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", fmt.Sprintf("%d", c.limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geocode: build request: %w", err)
	}
	req.Header.Set("Accept-Language", "en")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode: search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: search returned status %d", resp.StatusCode)
	}
	var places []Place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("geocode: decode places: %w", err)
	}
	return places, nil
}
