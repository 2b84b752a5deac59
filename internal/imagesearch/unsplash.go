// Package imagesearch resolves image-search hints from guide responses into
// displayable photo URLs using the Unsplash API.
package imagesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/multierr"
)

const defaultBaseURL = "https://api.unsplash.com"

type Client struct {
	accessKey string
	baseURL   string
	client    *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.client = c
	}
}

func WithBaseURL(u string) Option {
	return func(cl *Client) {
		cl.baseURL = u
	}
}

func NewClient(accessKey string, opts ...Option) *Client {
	c := &Client{
		accessKey: accessKey,
		baseURL:   defaultBaseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if an access key is set.
func (c *Client) Configured() bool {
	return c.accessKey != ""
}

type searchResponse struct {
	Results []struct {
		URLs struct {
			Small string `json:"small"`
		} `json:"urls"`
	} `json:"results"`
}

// Search returns up to perPage landscape photo URLs for a search term.
func (c *Client) Search(ctx context.Context, term string, perPage int) ([]string, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("unsplash client not configured: missing access key")
	}

	endpoint := fmt.Sprintf(
		"%s/search/photos?query=%s&per_page=%d&orientation=landscape",
		c.baseURL, url.QueryEscape(term), perPage,
	)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unsplash request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unsplash API returned status %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode unsplash response: %w", err)
	}

	urls := make([]string, 0, len(sr.Results))
	for _, r := range sr.Results {
		if r.URLs.Small != "" {
			urls = append(urls, r.URLs.Small)
		}
	}
	return urls, nil
}

// Resolve tries each search hint in order and returns the first non-empty
// result set. When every lookup fails or comes back empty, it falls back to
// keyless source URLs for the first term so the response still carries
// imagery. The combined lookup errors are returned alongside the fallback
// for the caller to log; Resolve itself never leaves the caller empty-handed.
func (c *Client) Resolve(ctx context.Context, terms []string, perPage int) ([]string, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	var errs error
	if c.Configured() {
		for _, term := range terms {
			urls, err := c.Search(ctx, term, perPage)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			if len(urls) > 0 {
				return urls, nil
			}
		}
	}

	return sourceFallback(terms[0]), errs
}

// sourceFallback builds source.unsplash.com URLs, which need no API key.
func sourceFallback(term string) []string {
	q := url.QueryEscape(term)
	return []string{
		"https://source.unsplash.com/800x400/?" + q,
		"https://source.unsplash.com/800x400/?" + q + ",travel",
	}
}
