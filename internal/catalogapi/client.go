// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package catalogapi is the HTTP client for the Felix Hub catalog REST API.
package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// UserAgent is sent with every request.
const UserAgent = "FelixHub-Admin/1.0"

// maxBodyLen caps how much of a response body is read.
const maxBodyLen = 4 << 20

// Options configures a Client.
type Options struct {
	BaseURL string
	// Token is sent as a bearer token when set.
	Token string
	// RateLimit caps outbound requests per second (0 = unlimited).
	RateLimit float64
	// HTTPClient overrides the default client. The default applies no timeout;
	// callers bound requests through their context.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the catalog REST API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// New creates a Client.
func New(opts Options) *Client {
	c := &Client{
		baseURL:    opts.BaseURL,
		token:      opts.Token,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return c
}

// do sends one request and decodes a JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s %s: rate limit: %w", method, path, err)
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("X-Request-ID", requestID(ctx))
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog api request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyLen))
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w: %w", method, path, ErrUnavailable, err)
	}

	c.logger.Debug("catalog api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: parseErrorMessage(respBody)}
	}
	if err := payloadError(resp.StatusCode, respBody); err != nil {
		return err
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%s %s: decode: %w", method, path, err)
		}
	}
	return nil
}

// requestID propagates the incoming request id, or creates a fresh one.
func requestID(ctx context.Context) string {
	if id := chimw.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

// ListCategories returns all categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCategory returns one category.
func (c *Client) GetCategory(ctx context.Context, id int64) (*Category, error) {
	var out Category
	if err := c.do(ctx, http.MethodGet, idPath("/api/admin/categories", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) error {
	return c.do(ctx, http.MethodPost, "/api/admin/categories", in, nil)
}

// UpdateCategory updates a category.
func (c *Client) UpdateCategory(ctx context.Context, id int64, in CategoryInput) error {
	return c.do(ctx, http.MethodPut, idPath("/api/admin/categories", id), in, nil)
}

// ToggleCategory flips a category's active flag.
func (c *Client) ToggleCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, idPath("/api/admin/categories", id)+"/toggle-active", nil, nil)
}

// DeleteCategory deletes a category. The server refuses while it owns parts.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/admin/categories", id), nil, nil)
}

// ListParts returns parts, optionally only active ones.
func (c *Client) ListParts(ctx context.Context, activeOnly bool) ([]Part, error) {
	q := url.Values{"active_only": {strconv.FormatBool(activeOnly)}}
	var out []Part
	if err := c.do(ctx, http.MethodGet, "/api/parts?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPart returns one part.
func (c *Client) GetPart(ctx context.Context, id int64) (*Part, error) {
	var out Part
	if err := c.do(ctx, http.MethodGet, idPath("/api/admin/parts", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePart creates a part.
func (c *Client) CreatePart(ctx context.Context, in PartInput) error {
	return c.do(ctx, http.MethodPost, "/api/admin/parts", in, nil)
}

// UpdatePart updates a part.
func (c *Client) UpdatePart(ctx context.Context, id int64, in PartInput) error {
	return c.do(ctx, http.MethodPut, idPath("/api/admin/parts", id), in, nil)
}

// TogglePart flips a part's active flag.
func (c *Client) TogglePart(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, idPath("/api/admin/parts", id)+"/toggle-active", nil, nil)
}

// DeletePart deletes a part.
func (c *Client) DeletePart(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/admin/parts", id), nil, nil)
}

// ImportDefault imports the server-defined default catalog without
// overwriting existing records.
func (c *Client) ImportDefault(ctx context.Context) (*ImportResult, error) {
	var out ImportResult
	if err := c.do(ctx, http.MethodPost, "/api/admin/parts/import-default", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetLanguage mirrors the language choice into the API session.
func (c *Client) SetLanguage(ctx context.Context, code string) error {
	return c.do(ctx, http.MethodPost, "/set_language/"+url.PathEscape(code), nil, nil)
}

// Ping checks that the API answers at all; any HTTP status counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	err := c.do(ctx, http.MethodGet, "/api/categories", nil, nil)
	var apiErr *APIError
	if err != nil && !errors.As(err, &apiErr) {
		return err
	}
	return nil
}
