// File: travelgo/api/client.go
package api

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

	"golang.org/x/time/rate"

	"travelgo/config"
)

// Client talks to the marketplace REST API. It carries no identity of
// its own: authenticated calls take the bearer credential explicitly,
// injected by the session manager, so there is no hidden storage read
// on the request path.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	limiter      *rate.Limiter
}

// NewClient builds a client for the given API base URL. reqsPerMin
// bounds outgoing traffic; zero or negative disables the limiter.
func NewClient(baseURL, clientID, clientSecret string, reqsPerMin int) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}
	if reqsPerMin > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(reqsPerMin)), reqsPerMin)
	}
	return c
}

// FromConfig builds a client from the loaded application config.
func FromConfig() *Client {
	cfg := config.AppConfig
	return NewClient(cfg.APIBaseURL, cfg.OAuthClientID, cfg.OAuthClientSecret, cfg.MaxRequestsPerMin)
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	return c.httpClient.Do(req)
}

// getJSON issues a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, token string, out any) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, token, nil, "")
	if err != nil {
		return err
	}
	return c.roundTrip(req, out)
}

// postJSON issues a POST with a JSON body and decodes the response into out.
func (c *Client) postJSON(ctx context.Context, path, token string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, token, bytes.NewReader(payload), "application/json")
	if err != nil {
		return err
	}
	return c.roundTrip(req, out)
}

func (c *Client) roundTrip(req *http.Request, out any) error {
	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

// unmarshalList accepts both the paginated envelope ({"results": [...]})
// and a bare JSON array, which is what the API serves depending on the
// endpoint and page size.
func unmarshalList[T any](data []byte) ([]T, error) {
	var envelope struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Results != nil {
		return envelope.Results, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}
	return items, nil
}

// getList issues a GET and decodes either list shape.
func getList[T any](c *Client, ctx context.Context, path string, query url.Values, token string) ([]T, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, path, query, token, &raw); err != nil {
		return nil, err
	}
	return unmarshalList[T](raw)
}
