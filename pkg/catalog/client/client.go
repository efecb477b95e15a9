// Package client implements catalog.Store against the REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tendant/simple-catalog/pkg/catalog"
	"github.com/tendant/simple-catalog/pkg/catalog/wire"
)

const (
	// DefaultBaseURL is used when New is given an empty base URL
	DefaultBaseURL = "http://127.0.0.1:8000"

	// DefaultPageSize is the page size List uses; it matches the server maximum
	DefaultPageSize = 200

	backendName = "remote"
)

// Client talks to the /conteudos API
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	pageSize   int
}

// Option is a functional option for configuring a Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. A nil client keeps the default.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the request timeout. The client passed to WithHTTPClient
// is copied, not modified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithPageSize sets the page size used by List
func WithPageSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// New creates a client for the API at baseURL
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		pageSize:   DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

var _ catalog.Store = (*Client)(nil)

// List pages through the whole collection, newest first
func (c *Client) List(ctx context.Context) ([]catalog.ContentProject, error) {
	all := []catalog.ContentProject{}
	for offset := 0; ; offset += c.pageSize {
		page, err := c.Query(ctx, catalog.Filter{Limit: c.pageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < c.pageSize {
			return all, nil
		}
	}
}

// Query issues GET /conteudos with the filter as query parameters. A zero
// Limit leaves the page size to the server.
func (c *Client) Query(ctx context.Context, filter catalog.Filter) ([]catalog.ContentProject, error) {
	params := url.Values{}
	if filter.Channel != "" {
		params.Set("canal", string(filter.Channel))
	}
	if filter.Type != "" {
		params.Set("tipo", string(filter.Type))
	}
	if s := strings.TrimSpace(filter.SearchText); s != "" {
		params.Set("q", s)
	}
	if filter.Limit > 0 {
		params.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		params.Set("offset", strconv.Itoa(filter.Offset))
	}

	path := "/conteudos"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var body []wire.Conteudo
	if err := c.do(ctx, "query", http.MethodGet, path, nil, &body); err != nil {
		return nil, err
	}

	out := make([]catalog.ContentProject, len(body))
	for i, item := range body {
		out[i] = wire.FromAPI(item)
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id string) (*catalog.ContentProject, error) {
	var body wire.Conteudo
	if err := c.do(ctx, "get", http.MethodGet, "/conteudos/"+url.PathEscape(id), nil, &body); err != nil {
		return nil, err
	}
	p := wire.FromAPI(body)
	return &p, nil
}

// Create validates locally, then POSTs the normalized fields
func (c *Client) Create(ctx context.Context, draft catalog.ProjectDraft) (*catalog.ContentProject, error) {
	fields, err := catalog.Validate(draft)
	if err != nil {
		return nil, err
	}

	var body wire.Conteudo
	if err := c.do(ctx, "create", http.MethodPost, "/conteudos", wire.InputFromFields(fields), &body); err != nil {
		return nil, err
	}
	p := wire.FromAPI(body)
	return &p, nil
}

// Update validates locally, then PUTs the normalized fields
func (c *Client) Update(ctx context.Context, id string, draft catalog.ProjectDraft) (*catalog.ContentProject, error) {
	fields, err := catalog.Validate(draft)
	if err != nil {
		return nil, err
	}

	var body wire.Conteudo
	if err := c.do(ctx, "update", http.MethodPut, "/conteudos/"+url.PathEscape(id), wire.InputFromFields(fields), &body); err != nil {
		return nil, err
	}
	p := wire.FromAPI(body)
	return &p, nil
}

func (c *Client) Remove(ctx context.Context, id string) error {
	return c.do(ctx, "remove", http.MethodDelete, "/conteudos/"+url.PathEscape(id), nil, nil)
}

// do performs one request. Non-2xx replies become *catalog.StorageError
// carrying the status and body; 404 also wraps catalog.ErrProjectNotFound.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &catalog.StorageError{Backend: backendName, Op: op, Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &catalog.StorageError{Backend: backendName, Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &catalog.StorageError{Backend: backendName, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		cause := errors.New(resp.Status)
		if resp.StatusCode == http.StatusNotFound {
			cause = catalog.ErrProjectNotFound
		}
		return &catalog.StorageError{
			Backend: backendName,
			Op:      op,
			Status:  resp.StatusCode,
			Body:    strings.TrimSpace(string(text)),
			Err:     cause,
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &catalog.StorageError{Backend: backendName, Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
