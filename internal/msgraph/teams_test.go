package msgraph

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

func TestGetChannelMessagesPath(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1.0/teams/team-1/channels/chan-1/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("$top") != "20" {
			t.Errorf("$top = %s", r.URL.Query().Get("$top"))
		}
		json.NewEncoder(w).Encode(map[string]any{
			"value": []map[string]any{
				{"id": "msg-1", "body": map[string]any{"content": "hello"}},
			},
		})
	})

	out, err := svc.GetChannelMessages(context.Background(), "team-1", "chan-1", 20)
	if err != nil {
		t.Fatalf("GetChannelMessages: %v", err)
	}
	if out["team_id"] != "team-1" || out["channel_id"] != "chan-1" || out["count"] != 1 {
		t.Errorf("out = %v", out)
	}
}

func TestGetJoinedTeamsEmptyValue(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1.0/me/joinedTeams" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{})
	})

	out, err := svc.GetJoinedTeams(context.Background())
	if err != nil {
		t.Fatalf("GetJoinedTeams: %v", err)
	}
	if out["count"] != 0 {
		t.Errorf("count = %v, want 0 for missing value", out["count"])
	}
	if teams, ok := out["teams"].([]any); !ok || teams == nil {
		t.Errorf("teams = %v, want empty slice", out["teams"])
	}
}

func TestSearchMessagesRequestShape(t *testing.T) {
	var gotBody map[string]any
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1.0/search/query" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"value": []map[string]any{{
				"hitsContainers": []map[string]any{{
					"total": 2,
					"hits": []map[string]any{
						{"hitId": "h1"},
						{"hitId": "h2"},
					},
				}},
			}},
		})
	})

	out, err := svc.SearchMessages(context.Background(), "standup notes", 100)
	if err != nil {
		t.Fatalf("SearchMessages: %v", err)
	}

	reqs := gotBody["requests"].([]any)
	req := reqs[0].(map[string]any)
	if req["size"] != float64(25) {
		t.Errorf("size = %v, want clamped to 25", req["size"])
	}
	if types := req["entityTypes"].([]any); types[0] != "chatMessage" {
		t.Errorf("entityTypes = %v", types)
	}
	if q := req["query"].(map[string]any); q["queryString"] != "standup notes" {
		t.Errorf("query = %v", q)
	}

	if out["total"] != 2 {
		t.Errorf("total = %v", out["total"])
	}
	if hits := out["hits"].([]any); len(hits) != 2 {
		t.Errorf("hits = %v", hits)
	}
}

func TestListChatMessages(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1.0/me/chats/chat-9/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"value": []map[string]any{{"id": "m1"}, {"id": "m2"}, {"id": "m3"}},
		})
	})

	out, err := svc.ListChatMessages(context.Background(), "chat-9", 50)
	if err != nil {
		t.Fatalf("ListChatMessages: %v", err)
	}
	if out["chat_id"] != "chat-9" || out["count"] != 3 {
		t.Errorf("out = %v", out)
	}
}
