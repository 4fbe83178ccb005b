// Package server wires the proxy tools into an MCP server. Tool
// handlers read per-request credentials from the context, build a
// short-lived upstream client, run exactly one service call and return
// the reduced record as pretty-printed JSON.
package server

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/golovatskygroup/mcp-userlink/internal/atlassian"
	"github.com/golovatskygroup/mcp-userlink/internal/atlassian/confluence"
	"github.com/golovatskygroup/mcp-userlink/internal/atlassian/jira"
	"github.com/golovatskygroup/mcp-userlink/internal/auth"
	"github.com/golovatskygroup/mcp-userlink/internal/config"
	"github.com/golovatskygroup/mcp-userlink/internal/msgraph"
)

// Server holds the MCP server and the static configuration shared by
// all tool handlers. Credentials are never stored here; they travel in
// the request context.
type Server struct {
	cfg *config.Config
	log *slog.Logger
	mcp *server.MCPServer
}

func New(cfg *config.Config, log *slog.Logger) *Server {
	s := &Server{
		cfg: cfg,
		log: log,
		mcp: server.NewMCPServer(
			"mcp-userlink",
			"1.0.0",
			server.WithToolCapabilities(true),
			server.WithRecovery(),
		),
	}
	s.registerJiraTools()
	s.registerConfluenceTools()
	s.registerGraphTools()
	return s
}

// MCP exposes the underlying server for transport binding.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// addTool registers a tool with logging and argument validation
// wrapped around the handler.
func (s *Server) addTool(t mcp.Tool, h server.ToolHandlerFunc) {
	s.mcp.AddTool(t, s.instrument(t, h))
}

func (s *Server) atlassianClient(ctx context.Context) (*atlassian.Client, error) {
	token, err := auth.AtlassianToken(ctx)
	if err != nil {
		return nil, err
	}
	cloudID, err := auth.AtlassianCloudID(ctx)
	if err != nil {
		return nil, err
	}
	return atlassian.New(s.cfg.AtlassianBaseURL, token, cloudID, s.cfg.HTTPTimeout), nil
}

// jiraService builds a request-scoped Jira service from the context
// credentials.
func (s *Server) jiraService(ctx context.Context) (*jira.Service, error) {
	client, err := s.atlassianClient(ctx)
	if err != nil {
		return nil, err
	}
	return jira.NewService(client), nil
}

// confluenceService builds a request-scoped Confluence service.
func (s *Server) confluenceService(ctx context.Context) (*confluence.Service, error) {
	client, err := s.atlassianClient(ctx)
	if err != nil {
		return nil, err
	}
	return confluence.NewService(client), nil
}

// graphService builds a request-scoped Microsoft Graph service.
func (s *Server) graphService(ctx context.Context) (*msgraph.Service, error) {
	token, err := auth.MicrosoftToken(ctx)
	if err != nil {
		return nil, err
	}
	return msgraph.NewService(msgraph.New(s.cfg.GraphBaseURL, token, s.cfg.HTTPTimeout)), nil
}

// jsonResult renders a tool payload as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("encode result: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
