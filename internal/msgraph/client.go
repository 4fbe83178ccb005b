// Package msgraph is a thin Microsoft Graph v1.0 client plus the Teams
// and Outlook read operations built on it. Graph payloads are passed
// through as decoded JSON rather than modeled: the interesting shape
// varies per endpoint and the callers only reframe, never interpret.
package msgraph

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

	"github.com/golovatskygroup/mcp-userlink/internal/raw"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "mcp-userlink"

	// Graph caps $size for search/query requests.
	searchMaxSize = 25
)

// Client calls the Graph REST API with a caller-supplied bearer token.
// Build one per request; it is cheap and carries the token.
type Client struct {
	baseURL string
	token   string
	c       *http.Client
}

func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		c:       &http.Client{Timeout: timeout},
	}
}

// APIError is a non-2xx Graph response. The body is kept verbatim so
// Graph's own error messages reach the caller.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("microsoft graph api error (%d): %s", e.Status, e.Body)
}

// GetJSON issues a GET against a v1.0 path ("/me/messages", ...) and
// decodes the response.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values) (raw.Object, error) {
	u := c.baseURL + "/v1.0" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build graph request: %w", err)
	}
	return c.do(req)
}

// PostJSON issues a POST with a JSON body against a v1.0 path.
func (c *Client) PostJSON(ctx context.Context, path string, body any) (raw.Object, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode graph request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1.0"+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build graph request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (raw.Object, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("microsoft graph request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("read graph response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	return raw.Decode(data), nil
}
