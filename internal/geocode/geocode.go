// Package geocode turns raw coordinates into a human-readable address via
// the Nominatim reverse geocoding API, so the guide prompt can reference a
// place name when the client only sends latitude/longitude.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		userAgent: "wanderguide/1.0",
		client:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

// Reverse returns a display address for the coordinates, or an error the
// caller is expected to treat as non-fatal.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	endpoint := fmt.Sprintf("%s/reverse?lat=%f&lon=%f&format=jsonv2&zoom=16", c.baseURL, lat, lon)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	// Nominatim's usage policy requires an identifying user agent.
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode returned status %d", resp.StatusCode)
	}

	var rr reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return "", fmt.Errorf("decode reverse geocode response: %w", err)
	}
	if rr.DisplayName == "" {
		return "", fmt.Errorf("reverse geocode returned no result")
	}
	return rr.DisplayName, nil
}
