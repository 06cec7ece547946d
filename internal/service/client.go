package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TokenSource supplies the bearer token attached to outgoing requests
type TokenSource interface {
	Token() string
}

// Endpoint identifies a backend service for diagnostics
type Endpoint struct {
	Name    string
	BaseURL string
}

// Port returns the port the service is expected to listen on
func (e Endpoint) Port() string {
	u, err := url.Parse(e.BaseURL)
	if err != nil {
		return ""
	}
	if p := u.Port(); p != "" {
		return p
	}
	if u.Scheme == "https" {
		return "443"
	}
	return "80"
}

// NewHTTPClient returns the instrumented client shared by all backend calls.
// No timeout is set; callers bound requests through their context.
func NewHTTPClient() *http.Client {
	return &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
}

// client performs JSON requests against one backend service
type client struct {
	endpoint   Endpoint
	httpClient *http.Client
	tokens     TokenSource
}

func newClient(name, baseURL string, tokens TokenSource, httpClient *http.Client) *client {
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}
	return &client{
		endpoint:   Endpoint{Name: name, BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")},
		httpClient: httpClient,
		tokens:     tokens,
	}
}

// do sends body as JSON and decodes a 2xx response into out. When out is a
// *json.RawMessage the body is returned undecoded.
func (c *client) do(ctx context.Context, method, path string, body, out any) error {
	target := c.endpoint.BaseURL + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", c.endpoint.Name, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", c.endpoint.Name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Endpoint: c.endpoint, Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Endpoint: c.endpoint, Method: method, URL: target, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(c.endpoint, method, target, resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], respBody...)
		return nil
	}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode %s response: %w", c.endpoint.Name, err)
	}
	return nil
}
