// Package feed fetches and normalizes the external daily wealth feed.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
)

// Record is one entry in the external feed, parsed into an explicit shape
// before any domain logic touches it. Everything except the wealth figure,
// rank, and one of (URI, name) is optional.
type Record struct {
	URI        string   `json:"uri"`
	Name       string   `json:"personName"`
	ImageURL   string   `json:"squareImage"`
	Country    string   `json:"countryOfCitizenship"`
	Industries []string `json:"industries"`
	Worth      float64  `json:"finalWorth"` // millions of USD
	Rank       int      `json:"rank"`
	Gender     string   `json:"gender"`
	BirthDate  *int64   `json:"birthDate"` // epoch milliseconds, may predate 1970
	Bios       []string `json:"bios"`
	Source     string   `json:"source"`
}

// Fetcher fetches the latest feed records, bounded to the top limit by rank.
type Fetcher interface {
	FetchTop(ctx context.Context, limit int) ([]Record, error)
}

// Client is an HTTP Fetcher for the external feed endpoint, which returns a
// JSON array of records.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a feed client for the given endpoint URL.
func NewClient(url string, httpClient *http.Client) *Client {
	return &Client{url: url, httpClient: httpClient}
}

// FetchTop fetches the feed and returns at most limit records ordered by
// ascending rank. A network failure, non-2xx status, or empty payload is an
// error: the caller must abort its run before any writes.
func (c *Client) FetchTop(ctx context.Context, limit int) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching feed: unexpected status %d", resp.StatusCode)
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding feed response: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("feed returned an empty payload")
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].Rank < records[j].Rank })
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
