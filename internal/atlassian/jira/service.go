package jira

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/golovatskygroup/mcp-userlink/internal/atlassian"
	"github.com/golovatskygroup/mcp-userlink/internal/fields"
)

// countPageSize is the fixed page size used by CountIssuesByJQL.
const countPageSize = 100

// countMaxPages bounds the count loop so it terminates even when the
// upstream reports inconsistent totals.
const countMaxPages = 50

// searchFields is the upstream field list for list-style searches.
var searchFields = []string{
	"summary", "status", "assignee", "created", "updated", "priority", "issuetype", "description",
}

// Service exposes Jira read operations on top of an authenticated
// gateway client.
type Service struct {
	client *atlassian.Client
}

func NewService(client *atlassian.Client) *Service {
	return &Service{client: client}
}

func (s *Service) api(path string) string {
	return s.client.JiraBaseURL() + "/rest/api/3" + path
}

func (s *Service) search(ctx context.Context, jql string, startAt, maxResults int, fieldsParam string, sel fields.Selection) (SearchResult, error) {
	q := url.Values{}
	q.Set("jql", jql)
	q.Set("startAt", strconv.Itoa(startAt))
	q.Set("maxResults", strconv.Itoa(maxResults))
	q.Set("fields", fieldsParam)

	data, err := s.client.GetJSON(ctx, s.api("/search"), q)
	if err != nil {
		return SearchResult{}, fmt.Errorf("jira search %q: %w", jql, err)
	}
	return SearchResultFromAPI(data, sel, s.client.JiraBaseURL()), nil
}

// SearchIssues searches by structured filters. Empty filters fall back
// to the newest issues across all projects.
func (s *Service) SearchIssues(ctx context.Context, project, status, assignee, issueType string, maxResults int) (SearchResult, error) {
	var parts []string
	if project != "" {
		parts = append(parts, fmt.Sprintf("project = %q", project))
	}
	if status != "" {
		parts = append(parts, fmt.Sprintf("status = %q", status))
	}
	if assignee != "" {
		parts = append(parts, fmt.Sprintf("assignee = %q", assignee))
	}
	if issueType != "" {
		parts = append(parts, fmt.Sprintf("issuetype = %q", issueType))
	}
	jql := "ORDER BY created DESC"
	if len(parts) > 0 {
		jql = strings.Join(parts, " AND ")
	}
	return s.search(ctx, jql, 0, maxResults, strings.Join(searchFields, ","), fields.Default)
}

// SearchIssuesByJQL runs a caller-provided JQL query. The selection
// decides both which fields are fetched and which survive projection.
func (s *Service) SearchIssuesByJQL(ctx context.Context, jql string, maxResults int, sel fields.Selection) (SearchResult, error) {
	return s.search(ctx, jql, 0, maxResults, sel.UpstreamFields(fields.MinimalFields), sel)
}

// CountResult is the outcome of a full count pass over a JQL query.
type CountResult struct {
	Count          int      `json:"count"`
	TotalAvailable int      `json:"total_available"`
	JQL            string   `json:"jql"`
	IssueKeys      []string `json:"issue_keys"`
}

// CountIssuesByJQL pages through every match of jql at a fixed page
// size and accumulates issue keys. Termination: an empty page, reaching
// the reported total, or the page cap — whichever comes first. The cap
// guards against upstreams whose total never converges.
func (s *Service) CountIssuesByJQL(ctx context.Context, jql string) (CountResult, error) {
	res := CountResult{JQL: jql, IssueKeys: []string{}}

	startAt := 0
	for page := 0; page < countMaxPages; page++ {
		pageRes, err := s.search(ctx, jql, startAt, countPageSize, "key", fields.Default)
		if err != nil {
			return CountResult{}, err
		}
		res.TotalAvailable = pageRes.Total
		if len(pageRes.Issues) == 0 {
			break
		}
		for _, iss := range pageRes.Issues {
			res.IssueKeys = append(res.IssueKeys, iss.Key)
		}
		startAt += len(pageRes.Issues)
		if startAt >= pageRes.Total {
			break
		}
	}

	res.Count = len(res.IssueKeys)
	return res, nil
}

// GetIssue fetches a single issue by key.
func (s *Service) GetIssue(ctx context.Context, issueKey string, sel fields.Selection) (Issue, error) {
	q := url.Values{}
	q.Set("fields", sel.UpstreamFields(fields.DefaultReadFields))

	data, err := s.client.GetJSON(ctx, s.api("/issue/"+url.PathEscape(issueKey)), q)
	if err != nil {
		return Issue{}, fmt.Errorf("jira issue %s: %w", issueKey, err)
	}
	return IssueFromAPI(data, sel, s.client.JiraBaseURL()), nil
}

// ListProjects returns every project visible to the caller, simplified.
func (s *Service) ListProjects(ctx context.Context) (map[string]any, error) {
	q := url.Values{}
	q.Set("maxResults", "100")

	data, err := s.client.GetJSON(ctx, s.api("/project/search"), q)
	if err != nil {
		return nil, fmt.Errorf("jira projects: %w", err)
	}

	projects := make([]map[string]any, 0)
	for _, p := range data.List("values") {
		projects = append(projects, projectFromAPI(p).Simplified())
	}
	return map[string]any{
		"total":    data.Int("total"),
		"projects": projects,
	}, nil
}

// ProjectIssues returns the newest issues of one project.
func (s *Service) ProjectIssues(ctx context.Context, projectKey string, maxResults int) (SearchResult, error) {
	jql := fmt.Sprintf("project = %q ORDER BY created DESC", projectKey)
	return s.search(ctx, jql, 0, maxResults, strings.Join(searchFields, ","), fields.Default)
}

// SprintIssues returns the issues of one sprint in rank order.
// customfield_10016 (story points on most cloud sites) is fetched
// alongside to keep the wire shape stable for downstream consumers.
func (s *Service) SprintIssues(ctx context.Context, sprintID string, maxResults int) (SearchResult, error) {
	jql := fmt.Sprintf("sprint = %s ORDER BY rank ASC", sprintID)
	fieldsParam := strings.Join(searchFields, ",") + ",customfield_10016"
	return s.search(ctx, jql, 0, maxResults, fieldsParam, fields.Default)
}

// IssueComments returns all comments of an issue.
func (s *Service) IssueComments(ctx context.Context, issueKey string) ([]Comment, error) {
	data, err := s.client.GetJSON(ctx, s.api("/issue/"+url.PathEscape(issueKey)+"/comment"), nil)
	if err != nil {
		return nil, fmt.Errorf("jira comments for %s: %w", issueKey, err)
	}
	var comments []Comment
	for _, c := range data.List("comments") {
		comments = append(comments, commentFromAPI(c))
	}
	return comments, nil
}

// IssueWorklogs returns all worklogs of an issue.
func (s *Service) IssueWorklogs(ctx context.Context, issueKey string) ([]Worklog, error) {
	data, err := s.client.GetJSON(ctx, s.api("/issue/"+url.PathEscape(issueKey)+"/worklog"), nil)
	if err != nil {
		return nil, fmt.Errorf("jira worklogs for %s: %w", issueKey, err)
	}
	var worklogs []Worklog
	for _, w := range data.List("worklogs") {
		worklogs = append(worklogs, worklogFromAPI(w))
	}
	return worklogs, nil
}
