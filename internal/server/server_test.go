package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golovatskygroup/mcp-userlink/internal/auth"
	"github.com/golovatskygroup/mcp-userlink/internal/config"
	"github.com/golovatskygroup/mcp-userlink/internal/headers"
)

const (
	testAtlassianToken = "atlassian-token-0123456789"
	testGraphToken     = "graph-token-0123456789abc"
)

func testServer(t *testing.T, upstream http.HandlerFunc) *Server {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)
	cfg := &config.Config{
		AtlassianBaseURL: srv.URL,
		GraphBaseURL:     srv.URL,
		HTTPTimeout:      5 * time.Second,
	}
	return New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func authedContext() context.Context {
	return headers.WithMap(context.Background(), map[string]string{
		auth.HeaderAtlassianToken:   testAtlassianToken,
		auth.HeaderAtlassianCloudID: "cloud-1",
		auth.HeaderMicrosoftToken:   testGraphToken,
	})
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is not text")
	return tc.Text
}

func TestJiraGetIssueHandler(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ex/jira/cloud-1/rest/api/3/issue/PROJ-7", r.URL.Path)
		assert.Equal(t, "Bearer "+testAtlassianToken, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"id":  "10001",
			"key": "PROJ-7",
			"fields": map[string]any{
				"summary": "Fix login",
				"status":  map[string]any{"name": "Open"},
			},
		})
	})

	res, err := srv.handleJiraGetIssue(authedContext(), callRequest("jira_get_issue", map[string]any{
		"issue_key": "PROJ-7",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, "PROJ-7", out["key"])
	assert.Equal(t, "Fix login", out["summary"])
}

func TestMissingCredentialNamesHeader(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called without credentials")
	})

	ctx := headers.WithMap(context.Background(), map[string]string{})
	res, err := srv.handleJiraGetIssue(ctx, callRequest("jira_get_issue", map[string]any{
		"issue_key": "PROJ-7",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), auth.HeaderAtlassianToken)
}

func TestGraphCredentialIndependentOfAtlassian(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+testGraphToken, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"value": []any{}})
	})

	// Only the Graph token is present; Atlassian tools would fail but
	// Teams tools must work.
	ctx := headers.WithMap(context.Background(), map[string]string{
		auth.HeaderMicrosoftToken: testGraphToken,
	})
	res, err := srv.handleTeamsGetJoinedTeams(ctx, callRequest("teams_get_joined_teams", nil))
	require.NoError(t, err)
	require.False(t, res.IsError)
}

func TestUpstreamErrorBecomesToolError(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errorMessages":["Issue does not exist"]}`, http.StatusNotFound)
	})

	res, err := srv.handleJiraGetIssue(authedContext(), callRequest("jira_get_issue", map[string]any{
		"issue_key": "PROJ-404",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "404")
	assert.NotContains(t, text, testAtlassianToken)
}

func TestInstrumentRejectsBadArguments(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for invalid arguments")
	})

	tool := mcp.NewTool("jira_get_issue",
		mcp.WithString("issue_key", mcp.Required()),
	)
	called := false
	h := srv.instrument(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("ok"), nil
	})

	res, err := h(authedContext(), callRequest("jira_get_issue", map[string]any{
		"issue_key": 42,
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	assert.False(t, called)
	assert.Contains(t, resultText(t, res), "invalid arguments")
}

func TestInstrumentPassesValidArguments(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {})

	tool := mcp.NewTool("jira_get_issue",
		mcp.WithString("issue_key", mcp.Required()),
	)
	h := srv.instrument(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	})

	res, err := h(authedContext(), callRequest("jira_get_issue", map[string]any{
		"issue_key": "PROJ-1",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, "ok", resultText(t, res))
}

func TestConfluenceSearchHandler(t *testing.T) {
	var gotCQL string
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotCQL = r.URL.Query().Get("cql")
		json.NewEncoder(w).Encode(map[string]any{
			"totalSize": 1,
			"results": []map[string]any{
				{"id": "1", "title": "Runbook", "type": "page"},
			},
		})
	})

	res, err := srv.handleConfluenceSearchContent(authedContext(), callRequest("confluence_search_content", map[string]any{
		"query": "deploy guide",
		"limit": float64(5),
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, `siteSearch ~ "deploy guide"`, gotCQL)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.EqualValues(t, 1, out["total"])
}

func TestOutlookGetEmailsHandlerBuildsFilter(t *testing.T) {
	var gotFilter string
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotFilter = r.URL.Query().Get("$filter")
		json.NewEncoder(w).Encode(map[string]any{"value": []any{}})
	})

	res, err := srv.handleOutlookGetEmails(authedContext(), callRequest("outlook_get_emails", map[string]any{
		"from":    "ada@example.com",
		"is_read": false,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.True(t, strings.Contains(gotFilter, "from/emailAddress/address eq 'ada@example.com'"), gotFilter)
	assert.True(t, strings.Contains(gotFilter, "isRead eq false"), gotFilter)
}
