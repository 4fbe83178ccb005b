// Package auth extracts and validates the per-request provider
// credentials from the captured header map.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/golovatskygroup/mcp-userlink/internal/headers"
)

// Header names carrying provider credentials.
const (
	HeaderMicrosoftToken   = "x-microsoft-graph-token"
	HeaderAtlassianToken   = "x-atlassian-token"
	HeaderAtlassianCloudID = "x-atlassian-cloud-id"
)

const minTokenLen = 20

// lookup checks the header as given and upper-cased; header maps from
// some transports preserve original casing only.
func lookup(h map[string]string, key string) string {
	if v, ok := h[key]; ok {
		return v
	}
	return h[strings.ToUpper(key)]
}

// ExtractMicrosoftToken returns the Graph token header value, or "".
func ExtractMicrosoftToken(h map[string]string) string {
	return lookup(h, HeaderMicrosoftToken)
}

// ExtractAtlassianToken returns the Atlassian token header value, or "".
func ExtractAtlassianToken(h map[string]string) string {
	return lookup(h, HeaderAtlassianToken)
}

// ExtractAtlassianCloudID returns the cloud id header value, or "".
func ExtractAtlassianCloudID(h map[string]string) string {
	return lookup(h, HeaderAtlassianCloudID)
}

// ValidToken reports whether token looks like a real OAuth access token.
// Typical tokens are far longer than 20 characters; anything shorter is
// a copy/paste accident or a placeholder.
func ValidToken(token string) bool {
	return len(strings.TrimSpace(token)) >= minTokenLen
}

// ValidCloudID reports whether id is usable as an Atlassian cloud id.
func ValidCloudID(id string) bool {
	return strings.TrimSpace(id) != ""
}

// MicrosoftToken reads and validates the Graph token for the current
// invocation. The error names the header so the caller can self-correct.
func MicrosoftToken(ctx context.Context) (string, error) {
	token := ExtractMicrosoftToken(headers.FromContext(ctx))
	if !ValidToken(token) {
		return "", fmt.Errorf("invalid or missing Microsoft Graph token in request headers (%s)", HeaderMicrosoftToken)
	}
	return strings.TrimSpace(token), nil
}

// AtlassianToken reads and validates the Atlassian token for the
// current invocation.
func AtlassianToken(ctx context.Context) (string, error) {
	token := ExtractAtlassianToken(headers.FromContext(ctx))
	if !ValidToken(token) {
		return "", fmt.Errorf("invalid or missing Atlassian token in request headers (%s)", HeaderAtlassianToken)
	}
	return strings.TrimSpace(token), nil
}

// AtlassianCloudID reads and validates the Atlassian cloud id for the
// current invocation.
func AtlassianCloudID(ctx context.Context) (string, error) {
	id := ExtractAtlassianCloudID(headers.FromContext(ctx))
	if !ValidCloudID(id) {
		return "", fmt.Errorf("invalid or missing Atlassian cloud ID in request headers (%s)", HeaderAtlassianCloudID)
	}
	return strings.TrimSpace(id), nil
}
