// Package remote talks to the hosted record store over its REST interface
// (PostgREST conventions: /rest/v1/<table>, eq. filters, apikey header).
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTable is the hosted table holding partner rows.
const DefaultTable = "design_partners"

// TokenSource returns the bearer token for the current session, or ""
// when nobody is signed in (the anon api key is used instead).
type TokenSource func() string

// Client is a thin REST client for one project of the hosted backend.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	token      TokenSource
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTokenSource sets where session tokens come from
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.token = ts
	}
}

// NewClient creates a client for the project at baseURL.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("backend url is required")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend url scheme %q", u.Scheme)
	}

	c := &Client{
		baseURL:    u,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// APIKey returns the project api key, shared with the auth provider.
func (c *Client) APIKey() string {
	return c.apiKey
}

// BaseURL returns the project url without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// apiError is the error body returned by the backend.
type apiError struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	ErrorDescription string `json:"error_description"`
	Hint             string `json:"hint"`
}

func (e apiError) text() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.ErrorDescription != "":
		return e.ErrorDescription
	default:
		return e.Msg
	}
}

// request is the resolved shape of one backend call.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	prefer string
	token  string // overrides the token source
}

// HTTPError is returned for non-2xx responses.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return e.Message
}

// do performs the request and returns the raw response body.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	u := *c.baseURL
	u.Path = u.Path + r.path
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		buf, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, err
	}
	requestID := uuid.NewString()
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.prefer != "" {
		req.Header.Set("Prefer", r.prefer)
	}
	bearer := c.apiKey
	if c.token != nil {
		if tok := c.token(); tok != "" {
			bearer = tok
		}
	}
	if r.token != "" {
		bearer = r.token
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ae apiError
		_ = json.Unmarshal(data, &ae)
		slog.Debug("backend request failed",
			"method", r.method,
			"path", r.path,
			"status", resp.StatusCode,
			"request_id", requestID)
		return nil, &HTTPError{Status: resp.StatusCode, Message: ae.text()}
	}
	return data, nil
}

// PostJSON posts body to path and decodes the response into out.
// Used by the auth provider, which shares the project url and key.
func (c *Client) PostJSON(ctx context.Context, path string, query url.Values, body, out any) error {
	data, err := c.do(ctx, request{method: http.MethodPost, path: path, query: query, body: body})
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// PostJSONWithToken posts body to path authenticated as token.
func (c *Client) PostJSONWithToken(ctx context.Context, path, token string, body any) error {
	_, err := c.do(ctx, request{method: http.MethodPost, path: path, body: body, token: token})
	return err
}
