package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/golovatskygroup/mcp-userlink/internal/fields"
)

const (
	defaultMaxResults = 50
	fieldsParamDesc   = "Comma-separated field names to include, or '*all' for every field. Omit for the default set."
)

func (s *Server) registerJiraTools() {
	s.addTool(mcp.NewTool("jira_search_issues",
		mcp.WithDescription("Search Jira issues by common filters (project, status, assignee, issue type)."),
		mcp.WithString("project", mcp.Description("Project key, e.g. PROJ.")),
		mcp.WithString("status", mcp.Description("Status name, e.g. 'In Progress'.")),
		mcp.WithString("assignee", mcp.Description("Assignee email or account id.")),
		mcp.WithString("issue_type", mcp.Description("Issue type name, e.g. Bug.")),
		mcp.WithNumber("max_results", mcp.Description("Maximum number of issues to return."), mcp.DefaultNumber(defaultMaxResults)),
	), s.handleJiraSearchIssues)

	s.addTool(mcp.NewTool("jira_search_issues_by_jql",
		mcp.WithDescription("Search Jira issues with a raw JQL query."),
		mcp.WithString("jql", mcp.Required(), mcp.Description("JQL query string.")),
		mcp.WithNumber("max_results", mcp.Description("Maximum number of issues to return."), mcp.DefaultNumber(defaultMaxResults)),
		mcp.WithString("fields", mcp.Description(fieldsParamDesc)),
	), s.handleJiraSearchIssuesByJQL)

	s.addTool(mcp.NewTool("jira_count_issues_by_jql",
		mcp.WithDescription("Count all issues matching a JQL query and list their keys."),
		mcp.WithString("jql", mcp.Required(), mcp.Description("JQL query string.")),
	), s.handleJiraCountIssuesByJQL)

	s.addTool(mcp.NewTool("jira_get_issue",
		mcp.WithDescription("Fetch a single Jira issue by key."),
		mcp.WithString("issue_key", mcp.Required(), mcp.Description("Issue key, e.g. PROJ-123.")),
		mcp.WithString("fields", mcp.Description(fieldsParamDesc)),
	), s.handleJiraGetIssue)

	s.addTool(mcp.NewTool("jira_get_all_projects",
		mcp.WithDescription("List the Jira projects visible to the caller."),
	), s.handleJiraGetAllProjects)

	s.addTool(mcp.NewTool("jira_get_project_issues",
		mcp.WithDescription("List the most recently created issues of a project."),
		mcp.WithString("project_key", mcp.Required(), mcp.Description("Project key, e.g. PROJ.")),
		mcp.WithNumber("max_results", mcp.Description("Maximum number of issues to return."), mcp.DefaultNumber(defaultMaxResults)),
	), s.handleJiraGetProjectIssues)

	s.addTool(mcp.NewTool("jira_get_sprint_issues",
		mcp.WithDescription("List the issues of a sprint in rank order."),
		mcp.WithString("sprint_id", mcp.Required(), mcp.Description("Numeric sprint id.")),
		mcp.WithNumber("max_results", mcp.Description("Maximum number of issues to return."), mcp.DefaultNumber(defaultMaxResults)),
	), s.handleJiraGetSprintIssues)

	s.addTool(mcp.NewTool("jira_get_issue_comments",
		mcp.WithDescription("List the comments of an issue."),
		mcp.WithString("issue_key", mcp.Required(), mcp.Description("Issue key, e.g. PROJ-123.")),
	), s.handleJiraGetIssueComments)

	s.addTool(mcp.NewTool("jira_get_issue_worklogs",
		mcp.WithDescription("List the worklog entries of an issue."),
		mcp.WithString("issue_key", mcp.Required(), mcp.Description("Issue key, e.g. PROJ-123.")),
	), s.handleJiraGetIssueWorklogs)
}

func (s *Server) handleJiraSearchIssues(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.jiraService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := svc.SearchIssues(ctx,
		req.GetString("project", ""),
		req.GetString("status", ""),
		req.GetString("assignee", ""),
		req.GetString("issue_type", ""),
		req.GetInt("max_results", defaultMaxResults),
	)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result.Simplified())
}

func (s *Server) handleJiraSearchIssuesByJQL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.jiraService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	jql, err := req.RequireString("jql")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := svc.SearchIssuesByJQL(ctx, jql,
		req.GetInt("max_results", defaultMaxResults),
		fields.Parse(req.GetString("fields", "")),
	)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result.Simplified())
}

func (s *Server) handleJiraCountIssuesByJQL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.jiraService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	jql, err := req.RequireString("jql")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := svc.CountIssuesByJQL(ctx, jql)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

func (s *Server) handleJiraGetIssue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.jiraService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	key, err := req.RequireString("issue_key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	issue, err := svc.GetIssue(ctx, key, fields.Parse(req.GetString("fields", "")))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(issue.Simplified())
}

func (s *Server) handleJiraGetAllProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.jiraService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := svc.ListProjects(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}

func (s *Server) handleJiraGetProjectIssues(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.jiraService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	key, err := req.RequireString("project_key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := svc.ProjectIssues(ctx, key, req.GetInt("max_results", defaultMaxResults))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result.Simplified())
}

func (s *Server) handleJiraGetSprintIssues(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.jiraService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sprintID, err := req.RequireString("sprint_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := svc.SprintIssues(ctx, sprintID, req.GetInt("max_results", defaultMaxResults))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result.Simplified())
}

func (s *Server) handleJiraGetIssueComments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.jiraService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	key, err := req.RequireString("issue_key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	comments, err := svc.IssueComments(ctx, key)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := make([]map[string]any, 0, len(comments))
	for _, c := range comments {
		out = append(out, c.Simplified())
	}
	return jsonResult(map[string]any{"issue_key": key, "count": len(out), "comments": out})
}

func (s *Server) handleJiraGetIssueWorklogs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := s.jiraService(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	key, err := req.RequireString("issue_key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	worklogs, err := svc.IssueWorklogs(ctx, key)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := make([]map[string]any, 0, len(worklogs))
	for _, w := range worklogs {
		out = append(out, w.Simplified())
	}
	return jsonResult(map[string]any{"issue_key": key, "count": len(out), "worklogs": out})
}
