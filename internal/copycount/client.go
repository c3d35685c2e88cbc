package copycount

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Ensure Client implements Fetcher and Recorder at compile time.
var (
	_ Fetcher  = (*Client)(nil)
	_ Recorder = (*Client)(nil)
)

const (
	defaultUserAgent = "showcase/0.1"
	requestTimeout   = 5 * time.Second
)

// Client talks to the copy count endpoints of a showcase server.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// envelope mirrors the server's response wrapper.
type envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

type countsPayload struct {
	Counts map[int]int `json:"counts"`
}

type recordPayload struct {
	ID    int `json:"id"`
	Count int `json:"count"`
}

// NewClient builds a Client for the server at baseURL, e.g. "http://localhost:8080".
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchAll retrieves every counter.
func (c *Client) FetchAll(ctx context.Context) (map[int]int, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload envelope[countsPayload]
	if err := c.do(ctx, http.MethodGet, "/api/v1/copy-counts", &payload); err != nil {
		return nil, err
	}
	if payload.Data.Counts == nil {
		return map[int]int{}, nil
	}
	return payload.Data.Counts, nil
}

// RecordCopy reports one copy of id and returns the stored count.
func (c *Client) RecordCopy(ctx context.Context, id int) (int, error) {
	if c == nil {
		return 0, fmt.Errorf("client is nil")
	}
	var payload envelope[recordPayload]
	path := "/api/v1/prompts/" + strconv.Itoa(id) + "/copy"
	if err := c.do(ctx, http.MethodPost, path, &payload); err != nil {
		return 0, err
	}
	return payload.Data.Count, nil
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("copy count service url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse copy count url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
