package jira

import (
	"encoding/json"
	"testing"

	"github.com/golovatskygroup/mcp-userlink/internal/fields"
	"github.com/golovatskygroup/mcp-userlink/internal/raw"
)

const issueFixture = `{
	"id": 10001,
	"key": "PROJ-1",
	"fields": {
		"summary": "Fix the widget",
		"description": {
			"type": "doc",
			"version": 1,
			"content": [
				{"type": "paragraph", "content": [
					{"type": "text", "text": "Hello"},
					{"type": "text", "text": "world"}
				]}
			]
		},
		"created": "2026-01-02T03:04:05.000+0000",
		"updated": "2026-01-03T03:04:05.000+0000",
		"status": {"id": "3", "name": "In Progress", "statusCategory": {"name": "In Progress"}},
		"issuetype": {"id": "1", "name": "Bug", "subtask": false},
		"priority": {"id": "2", "name": "High"},
		"project": {"id": 10000, "key": "PROJ", "name": "Project"},
		"assignee": {"accountId": "acc-1", "displayName": "Ada", "emailAddress": "ada@example.com"},
		"reporter": {"accountId": "acc-2", "displayName": "Bob"},
		"labels": ["frontend", "urgent"],
		"components": [{"name": "ui"}, {"name": "api"}]
	}
}`

func issueFromFixture(t *testing.T, sel fields.Selection) Issue {
	t.Helper()
	return IssueFromAPI(raw.Decode([]byte(issueFixture)), sel, "https://api.atlassian.com/ex/jira/cloud-1")
}

func TestIssueRoundTripAllFields(t *testing.T) {
	out := issueFromFixture(t, fields.All).Simplified()

	for _, key := range []string{
		"id", "key", "summary", "description", "status", "issue_type",
		"priority", "project", "assignee", "reporter", "labels",
		"components", "created", "updated", "url",
	} {
		if _, ok := out[key]; !ok {
			t.Errorf("missing %q under *all selection", key)
		}
	}
	if out["id"] != "10001" {
		t.Errorf("numeric id not stringified: %v", out["id"])
	}
	if out["description"] != "Hello world" {
		t.Errorf("ADF description not flattened: %v", out["description"])
	}
	if out["url"] != "https://api.atlassian.com/ex/jira/cloud-1/browse/PROJ-1" {
		t.Errorf("browse url = %v", out["url"])
	}
}

func TestIssueProjectionIdentifierOnly(t *testing.T) {
	out := issueFromFixture(t, fields.Named([]string{"id"})).Simplified()

	if out["id"] != "10001" || out["key"] != "PROJ-1" {
		t.Fatalf("identifiers must survive any selection: %v", out)
	}
	for _, key := range []string{"summary", "description", "status", "assignee", "labels"} {
		if _, ok := out[key]; ok {
			t.Errorf("%q leaked through [\"id\"] selection", key)
		}
	}
}

func TestIssueCompositeSelectionEmitsAllSubFields(t *testing.T) {
	out := issueFromFixture(t, fields.Named([]string{"status", "assignee"})).Simplified()

	status, ok := out["status"].(map[string]any)
	if !ok {
		t.Fatalf("status missing: %v", out)
	}
	if status["name"] != "In Progress" || status["category"] != "In Progress" {
		t.Errorf("composite status narrowed: %v", status)
	}
	assignee := out["assignee"].(map[string]any)
	if assignee["email"] != "ada@example.com" {
		t.Errorf("composite assignee narrowed: %v", assignee)
	}
}

func TestIssueUnassignedPlaceholder(t *testing.T) {
	iss := IssueFromAPI(raw.Decode([]byte(`{"id":"1","key":"X-1","fields":{"assignee":null}}`)), fields.Default, "")
	out := iss.Simplified()
	assignee, ok := out["assignee"].(map[string]any)
	if !ok || assignee["display_name"] != "Unassigned" {
		t.Fatalf("absent assignee should become Unassigned placeholder: %v", out["assignee"])
	}
}

func TestIssueTotallyMalformedInput(t *testing.T) {
	for _, payload := range []string{`{}`, `{"fields":"nope"}`, `{"fields":{"status":"open","labels":"x"}}`} {
		iss := IssueFromAPI(raw.Decode([]byte(payload)), fields.All, "https://example.com")
		out := iss.Simplified()
		if out["id"] != defaultID {
			t.Errorf("%s: id default = %v", payload, out["id"])
		}
		if _, ok := out["url"]; ok {
			t.Errorf("%s: url emitted without a key", payload)
		}
	}
}

func TestCommentPlainAndADFBody(t *testing.T) {
	plain := commentFromAPI(raw.Decode([]byte(`{"id":"5","body":"just text","created":"2026-01-01"}`)))
	if plain.Body != "just text" {
		t.Errorf("plain body = %q", plain.Body)
	}

	structured := commentFromAPI(raw.Decode([]byte(`{
		"id": "6",
		"author": {"accountId": "a", "displayName": "Ada"},
		"body": {"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"from ADF"}]}]}
	}`)))
	if structured.Body != "from ADF" {
		t.Errorf("adf body = %q", structured.Body)
	}
	out := structured.Simplified()
	if out["author"].(map[string]any)["display_name"] != "Ada" {
		t.Errorf("author lost: %v", out)
	}
}

func TestSearchResultDefensiveNumerics(t *testing.T) {
	data := raw.Decode([]byte(`{"total":"garbage","startAt":null,"maxResults":"25","issues":[{"key":"A-1"}]}`))
	res := SearchResultFromAPI(data, fields.Default, "")
	if res.Total != 0 || res.StartAt != 0 || res.MaxResults != 25 {
		t.Fatalf("defensive parse failed: %+v", res)
	}
	if len(res.Issues) != 1 || res.Issues[0].Key != "A-1" {
		t.Fatalf("issues lost: %+v", res.Issues)
	}

	b, err := json.Marshal(res.Simplified())
	if err != nil {
		t.Fatalf("simplified result not serializable: %v", err)
	}
	if len(b) == 0 {
		t.Fatal("empty serialization")
	}
}

func TestWorklogSimplifiedOmitsEmptyComment(t *testing.T) {
	w := worklogFromAPI(raw.Decode([]byte(`{"id":"9","timeSpent":"2h","started":"2026-02-01","timeSpentSeconds":7200}`)))
	out := w.Simplified()
	if _, ok := out["comment"]; ok {
		t.Fatal("empty comment must be omitted")
	}
	if out["time_spent"] != "2h" {
		t.Fatalf("time_spent = %v", out["time_spent"])
	}
}
