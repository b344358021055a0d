// Package listing is the consumer side of the item board: it fetches the
// display-normalized listing, submits reports in the legacy vocabulary, and
// filters and searches what it fetched.
package listing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/erazemk/najdeno/internal/model"
)

// Paths of the item endpoints, relative to the base URL.
const (
	ListPath   = "/api/items/get"
	ReportPath = "/api/items/add"
)

// Config configures a Client.
type Config struct {
	// BaseURL is the endpoint root, for example http://localhost:5000.
	BaseURL string
	// HTTPClient defaults to a client with a 10 second timeout.
	HTTPClient *http.Client
}

// Client talks to a najdeno server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for cfg.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: base, http: hc}, nil
}

// Report is a new item report in the vocabulary the report form sends.
type Report struct {
	Type               string `json:"Type"`
	Name               string `json:"Name,omitempty"`
	ItemName           string `json:"ItemName"`
	Description        string `json:"Description,omitempty"`
	Location           string `json:"Location"`
	ContactInformation string `json:"ContactInformation,omitempty"`
	Image              string `json:"image,omitempty"`
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Items fetches every listed item, newest first.
func (c *Client) Items(ctx context.Context) ([]model.Listing, error) {
	var items []model.Listing
	if err := c.do(ctx, http.MethodGet, ListPath, nil, &items); err != nil {
		return nil, fmt.Errorf("fetching items: %w", err)
	}
	return items, nil
}

// Report submits a new item and returns the stored record.
func (c *Client) Report(ctx context.Context, r Report) (*model.Item, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}
	var item model.Item
	if err := c.do(ctx, http.MethodPost, ReportPath, body, &item); err != nil {
		return nil, fmt.Errorf("reporting item: %w", err)
	}
	return &item, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&e)
		return &StatusError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
