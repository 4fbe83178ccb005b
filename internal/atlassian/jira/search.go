package jira

import (
	"github.com/golovatskygroup/mcp-userlink/internal/fields"
	"github.com/golovatskygroup/mcp-userlink/internal/raw"
)

// SearchResult wraps one page of a JQL search.
type SearchResult struct {
	Total      int
	StartAt    int
	MaxResults int
	Issues     []Issue
}

// SearchResultFromAPI decodes a /search response page. Pagination
// numbers are parsed defensively: non-numeric or absent values coerce
// to 0.
func SearchResultFromAPI(data raw.Object, sel fields.Selection, browseBase string) SearchResult {
	res := SearchResult{
		Total:      data.Int("total"),
		StartAt:    data.Int("startAt"),
		MaxResults: data.Int("maxResults"),
	}
	for _, issueData := range data.List("issues") {
		res.Issues = append(res.Issues, IssueFromAPI(issueData, sel, browseBase))
	}
	return res
}

// Simplified returns the projected search result page.
func (r SearchResult) Simplified() map[string]any {
	issues := make([]map[string]any, 0, len(r.Issues))
	for _, iss := range r.Issues {
		issues = append(issues, iss.Simplified())
	}
	return map[string]any{
		"total":       r.Total,
		"start_at":    r.StartAt,
		"max_results": r.MaxResults,
		"issues":      issues,
	}
}
