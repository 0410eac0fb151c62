// Package apiclient is the HTTP client every backend call goes through.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"codebenders/internal/pkg/logger"
)

const logModule = "apiclient"

// TokenSource supplies the bearer token for outgoing requests. An empty token
// means the request is sent unauthenticated.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  logger.ILogger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func WithLogger(l logger.ILogger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

func New(baseURL string, timeout time.Duration, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get decodes the response into out. query may be nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// PostForm sends form as application/x-www-form-urlencoded.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, form, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return c.fail(&Error{Kind: KindLocal, Method: method, Path: path, Err: err})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(&Error{Kind: KindNetwork, Method: method, Path: path, Err: err})
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(&Error{Kind: KindNetwork, Method: method, Path: path, StatusCode: resp.StatusCode, Err: err})
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.fail(&Error{
			Kind:       KindResponse,
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       respBody,
		})
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return c.fail(&Error{
			Kind:       KindLocal,
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       respBody,
			Err:        fmt.Errorf("decode response: %w", err),
		})
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var (
		reader      io.Reader
		contentType = "application/json"
	)
	switch b := body.(type) {
	case nil:
	case url.Values:
		reader = strings.NewReader(b.Encode())
		contentType = "application/x-www-form-urlencoded"
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// fail logs the failure according to its kind and hands it back unchanged.
func (c *Client) fail(e *Error) error {
	details := map[string]interface{}{
		"method": e.Method,
		"path":   e.Path,
	}
	switch e.Kind {
	case KindResponse:
		details["status"] = e.StatusCode
		details["body"] = string(e.Body)
		c.logger.Warn(logModule, "API error response", details)
	case KindNetwork:
		details["error"] = e.Err.Error()
		c.logger.Error(logModule, "No response received", details)
	default:
		details["error"] = e.Err.Error()
		c.logger.Error(logModule, "Request setup error", details)
	}
	return e
}
