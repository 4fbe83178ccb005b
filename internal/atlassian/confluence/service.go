package confluence

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/golovatskygroup/mcp-userlink/internal/atlassian"
	"github.com/golovatskygroup/mcp-userlink/internal/raw"
)

// searchExpand pulls in everything a simplified search record needs in
// one round trip.
const searchExpand = "space,version,body.view"

// Service exposes Confluence read operations over a tenant-scoped
// client. Like the Jira service it is built per request and holds no
// state beyond the client.
type Service struct {
	client *atlassian.Client
}

func NewService(client *atlassian.Client) *Service {
	return &Service{client: client}
}

func (s *Service) api(path string) string {
	return s.client.ConfluenceBaseURL() + "/rest/api" + path
}

// hasCQLOperators reports whether the query already looks like CQL
// rather than free text.
func hasCQLOperators(query string) bool {
	for _, op := range []string{"=", "~", ">", "<", " AND ", " OR ", "currentUser()"} {
		if strings.Contains(query, op) {
			return true
		}
	}
	return false
}

// quoteCQL wraps a free-text value for embedding in a CQL clause.
func quoteCQL(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `"`, `\"`)
	return `"` + value + `"`
}

// Search runs a raw CQL query and decodes the result pages.
func (s *Service) Search(ctx context.Context, cql string, limit int) (raw.Object, []Page, error) {
	data, err := s.client.GetJSON(ctx, s.api("/content/search"), url.Values{
		"cql":    {cql},
		"limit":  {strconv.Itoa(limit)},
		"expand": {searchExpand},
	})
	if err != nil {
		return nil, nil, err
	}
	base := data.Obj("_links").Str("base")
	var pages []Page
	for _, entry := range data.List("results") {
		pages = append(pages, PageFromAPI(entry, base))
	}
	return data, pages, nil
}

// SearchContent accepts either CQL or free text. Free text is first
// issued as a site search; if the tenant rejects that form (not every
// deployment supports the siteSearch field) the same text is retried
// as a plain text match with the same limit.
func (s *Service) SearchContent(ctx context.Context, query string, limit int) (map[string]any, error) {
	cql := query
	if !hasCQLOperators(query) {
		cql = "siteSearch ~ " + quoteCQL(query)
	}

	data, pages, err := s.Search(ctx, cql, limit)
	if err != nil && cql != query {
		cql = "text ~ " + quoteCQL(query)
		data, pages, err = s.Search(ctx, cql, limit)
	}
	if err != nil {
		return nil, err
	}

	results := make([]map[string]any, 0, len(pages))
	for _, p := range pages {
		results = append(results, p.Simplified())
	}
	return map[string]any{
		"total":   data.Int("totalSize"),
		"query":   cql,
		"results": results,
	}, nil
}

// GetPage fetches a single page with its rendered body.
func (s *Service) GetPage(ctx context.Context, pageID string) (map[string]any, error) {
	data, err := s.client.GetJSON(ctx, s.api("/content/"+url.PathEscape(pageID)), url.Values{
		"expand": {searchExpand},
	})
	if err != nil {
		return nil, err
	}
	base := data.Obj("_links").Str("base")
	return PageFromAPI(data, base).Simplified(), nil
}

// GetPageChildren lists the direct child pages of a page.
func (s *Service) GetPageChildren(ctx context.Context, pageID string, limit int) (map[string]any, error) {
	data, err := s.client.GetJSON(ctx, s.api("/content/"+url.PathEscape(pageID)+"/child/page"), url.Values{
		"limit":  {strconv.Itoa(limit)},
		"expand": {"space,version"},
	})
	if err != nil {
		return nil, err
	}
	base := data.Obj("_links").Str("base")
	results := make([]map[string]any, 0)
	for _, entry := range data.List("results") {
		results = append(results, PageFromAPI(entry, base).Simplified())
	}
	return map[string]any{
		"parent_id": pageID,
		"count":     len(results),
		"results":   results,
	}, nil
}

// GetSpace fetches one space by key.
func (s *Service) GetSpace(ctx context.Context, spaceKey string) (map[string]any, error) {
	data, err := s.client.GetJSON(ctx, s.api("/space/"+url.PathEscape(spaceKey)), nil)
	if err != nil {
		return nil, err
	}
	out := spaceFromAPI(data).Simplified()
	if desc := data.Obj("description").Obj("plain").Str("value"); desc != "" {
		out["description"] = desc
	}
	return out, nil
}

// ListSpaces lists spaces visible to the caller.
func (s *Service) ListSpaces(ctx context.Context, limit int) (map[string]any, error) {
	data, err := s.client.GetJSON(ctx, s.api("/space"), url.Values{
		"limit": {strconv.Itoa(limit)},
	})
	if err != nil {
		return nil, err
	}
	results := make([]map[string]any, 0)
	for _, entry := range data.List("results") {
		results = append(results, spaceFromAPI(entry).Simplified())
	}
	return map[string]any{
		"count":   len(results),
		"results": results,
	}, nil
}
