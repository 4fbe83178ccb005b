package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/golovatskygroup/mcp-userlink/internal/msgraph"
)

const defaultGraphTop = 20

func (s *Server) registerGraphTools() {
	s.addTool(mcp.NewTool("teams_get_joined_teams",
		mcp.WithDescription("List the Microsoft Teams the caller is a member of."),
	), s.handleTeamsGetJoinedTeams)

	s.addTool(mcp.NewTool("teams_get_team_channels",
		mcp.WithDescription("List the channels of a team."),
		mcp.WithString("team_id", mcp.Required(), mcp.Description("Team id.")),
	), s.handleTeamsGetTeamChannels)

	s.addTool(mcp.NewTool("teams_get_channel_messages",
		mcp.WithDescription("Fetch the most recent messages of a channel."),
		mcp.WithString("team_id", mcp.Required(), mcp.Description("Team id.")),
		mcp.WithString("channel_id", mcp.Required(), mcp.Description("Channel id.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of messages."), mcp.DefaultNumber(defaultGraphTop)),
	), s.handleTeamsGetChannelMessages)

	s.addTool(mcp.NewTool("teams_search_messages",
		mcp.WithDescription("Search chat messages across Teams."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query.")),
		mcp.WithNumber("max_results", mcp.Description("Maximum number of hits (capped at 25)."), mcp.DefaultNumber(defaultGraphTop)),
	), s.handleTeamsSearchMessages)

	s.addTool(mcp.NewTool("teams_list_my_chats",
		mcp.WithDescription("List the caller's one-on-one and group chats."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of chats."), mcp.DefaultNumber(defaultGraphTop)),
	), s.handleTeamsListMyChats)

	s.addTool(mcp.NewTool("teams_list_chat_messages",
		mcp.WithDescription("Fetch the most recent messages of a chat."),
		mcp.WithString("chat_id", mcp.Required(), mcp.Description("Chat id.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of messages."), mcp.DefaultNumber(defaultGraphTop)),
	), s.handleTeamsListChatMessages)

	s.addTool(mcp.NewTool("outlook_get_emails",
		mcp.WithDescription("List mailbox messages, newest first, with optional filters."),
		mcp.WithString("folder", mcp.Description("Well-known folder name (inbox, sentitems, ...) or folder id. Omit for the whole mailbox.")),
		mcp.WithString("from", mcp.Description("Only messages from this sender address.")),
		mcp.WithString("subject_contains", mcp.Description("Only messages whose subject contains this text.")),
		mcp.WithString("since", mcp.Description("Only messages received at or after this RFC 3339 timestamp or YYYY-MM-DD date.")),
		mcp.WithBoolean("is_read", mcp.Description("Only read (true) or unread (false) messages.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of messages."), mcp.DefaultNumber(defaultGraphTop)),
	), s.handleOutlookGetEmails)

	s.addTool(mcp.NewTool("outlook_get_message",
		mcp.WithDescription("Fetch one mailbox message by id, body included."),
		mcp.WithString("message_id", mcp.Required(), mcp.Description("Message id.")),
	), s.handleOutlookGetMessage)

	s.addTool(mcp.NewTool("outlook_search_emails",
		mcp.WithDescription("Search the mailbox with a KQL query."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query, e.g. 'subject:report'.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (capped at 25)."), mcp.DefaultNumber(defaultGraphTop)),
	), s.handleOutlookSearchEmails)

	s.addTool(mcp.NewTool("outlook_get_calendar_events",
		mcp.WithDescription("List calendar occurrences inside a time window, recurring events expanded."),
		mcp.WithString("start", mcp.Required(), mcp.Description("Window start, RFC 3339.")),
		mcp.WithString("end", mcp.Required(), mcp.Description("Window end, RFC 3339.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of events."), mcp.DefaultNumber(defaultGraphTop)),
	), s.handleOutlookGetCalendarEvents)
}

func (s *Server) handleTeamsGetJoinedTeams(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.graphService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := svc.GetJoinedTeams(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}

func (s *Server) handleTeamsGetTeamChannels(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.graphService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	teamID, err := req.RequireString("team_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := svc.GetTeamChannels(ctx, teamID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}

func (s *Server) handleTeamsGetChannelMessages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.graphService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	teamID, err := req.RequireString("team_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	channelID, err := req.RequireString("channel_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := svc.GetChannelMessages(ctx, teamID, channelID, req.GetInt("limit", defaultGraphTop))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}

func (s *Server) handleTeamsSearchMessages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.graphService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := svc.SearchMessages(ctx, query, req.GetInt("max_results", defaultGraphTop))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}

func (s *Server) handleTeamsListMyChats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.graphService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := svc.ListMyChats(ctx, req.GetInt("limit", defaultGraphTop))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}

func (s *Server) handleTeamsListChatMessages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.graphService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	chatID, err := req.RequireString("chat_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := svc.ListChatMessages(ctx, chatID, req.GetInt("limit", defaultGraphTop))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}

func (s *Server) handleOutlookGetEmails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.graphService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	filter := msgraph.EmailFilter{
		Folder:          req.GetString("folder", ""),
		From:            req.GetString("from", ""),
		SubjectContains: req.GetString("subject_contains", ""),
		Since:           req.GetString("since", ""),
	}
	if args := req.GetArguments(); args != nil {
		if v, ok := args["is_read"].(bool); ok {
			filter.IsRead = &v
		}
	}
	out, err := svc.GetEmails(ctx, filter, req.GetInt("limit", defaultGraphTop))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}

func (s *Server) handleOutlookGetMessage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.graphService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	messageID, err := req.RequireString("message_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := svc.GetMessage(ctx, messageID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}

func (s *Server) handleOutlookSearchEmails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.graphService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := svc.SearchEmails(ctx, query, req.GetInt("limit", defaultGraphTop))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}

func (s *Server) handleOutlookGetCalendarEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.graphService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	start, err := req.RequireString("start")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	end, err := req.RequireString("end")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := svc.GetCalendarEvents(ctx, start, end, req.GetInt("limit", defaultGraphTop))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}
