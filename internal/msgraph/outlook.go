package msgraph

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// EmailFilter describes the optional predicates of a mailbox listing.
// Zero values mean "no constraint".
type EmailFilter struct {
	Folder          string
	From            string
	SubjectContains string
	Since           string // RFC 3339 timestamp or YYYY-MM-DD date
	IsRead          *bool
}

// odataQuote escapes a literal for an OData filter expression.
func odataQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// sinceTimestamp normalizes the Since value to the RFC 3339 form Graph
// expects. Unparseable input yields "", dropping the predicate rather
// than sending a filter Graph would reject whole.
func sinceTimestamp(since string) string {
	since = strings.TrimSpace(since)
	if since == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, since); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	if t, err := time.Parse("2006-01-02", since); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	return ""
}

// buildFilter assembles the $filter expression for an email listing.
func buildFilter(f EmailFilter) string {
	var clauses []string
	if f.From != "" {
		clauses = append(clauses, "from/emailAddress/address eq "+odataQuote(f.From))
	}
	if f.SubjectContains != "" {
		clauses = append(clauses, "contains(subject, "+odataQuote(f.SubjectContains)+")")
	}
	if ts := sinceTimestamp(f.Since); ts != "" {
		clauses = append(clauses, "receivedDateTime ge "+ts)
	}
	if f.IsRead != nil {
		clauses = append(clauses, "isRead eq "+strconv.FormatBool(*f.IsRead))
	}
	return strings.Join(clauses, " and ")
}

// GetEmails lists mailbox messages, optionally scoped to a folder and
// narrowed by filter predicates. Results come newest first.
func (s *Service) GetEmails(ctx context.Context, f EmailFilter, limit int) (map[string]any, error) {
	path := "/me/messages"
	if f.Folder != "" {
		path = "/me/mailFolders/" + url.PathEscape(f.Folder) + "/messages"
	}
	query := url.Values{
		"$top":     {strconv.Itoa(limit)},
		"$orderby": {"receivedDateTime desc"},
	}
	if filter := buildFilter(f); filter != "" {
		query.Set("$filter", filter)
	}
	data, err := s.client.GetJSON(ctx, path, query)
	if err != nil {
		return nil, err
	}
	return list(values(data), "messages"), nil
}

// GetMessage fetches one message by id, body included.
func (s *Service) GetMessage(ctx context.Context, messageID string) (map[string]any, error) {
	data, err := s.client.GetJSON(ctx, "/me/messages/"+url.PathEscape(messageID), nil)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// SearchEmails runs a KQL search over the mailbox. Graph caps $top at
// 25 when $search is present.
func (s *Service) SearchEmails(ctx context.Context, query string, limit int) (map[string]any, error) {
	if limit <= 0 || limit > searchMaxSize {
		limit = searchMaxSize
	}
	data, err := s.client.GetJSON(ctx, "/me/messages", url.Values{
		"$search": {`"` + strings.ReplaceAll(query, `"`, ``) + `"`},
		"$top":    {strconv.Itoa(limit)},
	})
	if err != nil {
		return nil, err
	}
	out := list(values(data), "messages")
	out["query"] = query
	return out, nil
}

// GetCalendarEvents lists calendar occurrences inside a time window,
// expanding recurring events the way the calendar view does.
func (s *Service) GetCalendarEvents(ctx context.Context, start, end string, limit int) (map[string]any, error) {
	data, err := s.client.GetJSON(ctx, "/me/calendar/calendarView", url.Values{
		"startDateTime": {start},
		"endDateTime":   {end},
		"$top":          {strconv.Itoa(limit)},
		"$orderby":      {"start/dateTime"},
	})
	if err != nil {
		return nil, err
	}
	out := list(values(data), "events")
	out["start"] = start
	out["end"] = end
	return out, nil
}
