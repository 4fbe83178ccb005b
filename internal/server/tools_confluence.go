package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

const defaultPageLimit = 25

func (s *Server) registerConfluenceTools() {
	s.addTool(mcp.NewTool("confluence_search_content",
		mcp.WithDescription("Search Confluence content. Accepts CQL or plain text; plain text runs as a site search."),
		mcp.WithString("query", mcp.Required(), mcp.Description("CQL query or free text.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results."), mcp.DefaultNumber(defaultPageLimit)),
	), s.handleConfluenceSearchContent)

	s.addTool(mcp.NewTool("confluence_get_page",
		mcp.WithDescription("Fetch a Confluence page with a plain-text excerpt of its body."),
		mcp.WithString("page_id", mcp.Required(), mcp.Description("Numeric page id.")),
	), s.handleConfluenceGetPage)

	s.addTool(mcp.NewTool("confluence_get_page_children",
		mcp.WithDescription("List the direct child pages of a page."),
		mcp.WithString("page_id", mcp.Required(), mcp.Description("Numeric page id.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of children."), mcp.DefaultNumber(defaultPageLimit)),
	), s.handleConfluenceGetPageChildren)

	s.addTool(mcp.NewTool("confluence_get_space",
		mcp.WithDescription("Fetch a Confluence space by key."),
		mcp.WithString("space_key", mcp.Required(), mcp.Description("Space key, e.g. ENG.")),
	), s.handleConfluenceGetSpace)

	s.addTool(mcp.NewTool("confluence_list_spaces",
		mcp.WithDescription("List the Confluence spaces visible to the caller."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of spaces."), mcp.DefaultNumber(defaultPageLimit)),
	), s.handleConfluenceListSpaces)
}

func (s *Server) handleConfluenceSearchContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.confluenceService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := svc.SearchContent(ctx, query, req.GetInt("limit", defaultPageLimit))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}

func (s *Server) handleConfluenceGetPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.confluenceService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pageID, err := req.RequireString("page_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := svc.GetPage(ctx, pageID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}

func (s *Server) handleConfluenceGetPageChildren(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.confluenceService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pageID, err := req.RequireString("page_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := svc.GetPageChildren(ctx, pageID, req.GetInt("limit", defaultPageLimit))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}

func (s *Server) handleConfluenceGetSpace(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.confluenceService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	spaceKey, err := req.RequireString("space_key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := svc.GetSpace(ctx, spaceKey)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}

func (s *Server) handleConfluenceListSpaces(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.confluenceService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := svc.ListSpaces(ctx, req.GetInt("limit", defaultPageLimit))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}
