// Package atlassian provides the HTTP client for the Atlassian cloud
// gateway (api.atlassian.com), which fronts both Jira and Confluence
// per tenant (cloud id).
//
// A client is built fresh for every tool invocation from that
// invocation's extracted credentials; no connection state carries
// caller identity across calls.
package atlassian

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golovatskygroup/mcp-userlink/internal/raw"
)

const userAgent = "mcp-userlink"

// Client is an authenticated gateway client for one (token, cloud id)
// pair.
type Client struct {
	baseURL string
	cloudID string
	token   string
	c       *http.Client
}

// New builds a client. baseURL is the gateway root without trailing
// slash (normally https://api.atlassian.com).
func New(baseURL, token, cloudID string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		cloudID: cloudID,
		token:   token,
		c:       &http.Client{Timeout: timeout},
	}
}

// JiraBaseURL returns the tenant-scoped Jira root, also used to build
// browse links on issue models.
func (c *Client) JiraBaseURL() string {
	return c.baseURL + "/ex/jira/" + url.PathEscape(c.cloudID)
}

// ConfluenceBaseURL returns the tenant-scoped Confluence root.
func (c *Client) ConfluenceBaseURL() string {
	return c.baseURL + "/ex/confluence/" + url.PathEscape(c.cloudID)
}

// APIError is a non-2xx response from the gateway.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("atlassian api error (%d): %s", e.Status, e.Body)
}

// GetJSON performs an authenticated GET against an absolute gateway URL
// and decodes the response object. The response body is surfaced in the
// error for non-2xx statuses; the token never is.
func (c *Client) GetJSON(ctx context.Context, u string, query url.Values) (raw.Object, error) {
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return raw.Decode(body), nil
}
