package msgraph

import (
	"context"
	"net/url"
	"strconv"
)

// Service exposes the Teams and Outlook operations. One instance per
// request, like the Atlassian services.
type Service struct {
	client *Client
}

func NewService(client *Client) *Service {
	return &Service{client: client}
}

// list wraps a Graph collection response without reshaping the
// individual records.
func list(items []any, key string) map[string]any {
	return map[string]any{
		"count": len(items),
		key:     items,
	}
}

// values extracts the "value" collection from a Graph response as-is.
func values(o map[string]any) []any {
	v, _ := o["value"].([]any)
	if v == nil {
		v = []any{}
	}
	return v
}

// GetJoinedTeams lists the teams the caller is a member of.
func (s *Service) GetJoinedTeams(ctx context.Context) (map[string]any, error) {
	data, err := s.client.GetJSON(ctx, "/me/joinedTeams", nil)
	if err != nil {
		return nil, err
	}
	return list(values(data), "teams"), nil
}

// GetTeamChannels lists the channels of one team.
func (s *Service) GetTeamChannels(ctx context.Context, teamID string) (map[string]any, error) {
	data, err := s.client.GetJSON(ctx, "/teams/"+url.PathEscape(teamID)+"/channels", nil)
	if err != nil {
		return nil, err
	}
	out := list(values(data), "channels")
	out["team_id"] = teamID
	return out, nil
}

// GetChannelMessages fetches the most recent messages of a channel.
func (s *Service) GetChannelMessages(ctx context.Context, teamID, channelID string, limit int) (map[string]any, error) {
	path := "/teams/" + url.PathEscape(teamID) + "/channels/" + url.PathEscape(channelID) + "/messages"
	data, err := s.client.GetJSON(ctx, path, url.Values{
		"$top": {strconv.Itoa(limit)},
	})
	if err != nil {
		return nil, err
	}
	out := list(values(data), "messages")
	out["team_id"] = teamID
	out["channel_id"] = channelID
	return out, nil
}

// SearchMessages runs a Graph search over chat messages. Graph rejects
// page sizes above 25 for this entity type, so larger requests are
// clamped.
func (s *Service) SearchMessages(ctx context.Context, query string, maxResults int) (map[string]any, error) {
	size := maxResults
	if size <= 0 || size > searchMaxSize {
		size = searchMaxSize
	}
	data, err := s.client.PostJSON(ctx, "/search/query", map[string]any{
		"requests": []map[string]any{{
			"entityTypes": []string{"chatMessage"},
			"query":       map[string]any{"queryString": query},
			"from":        0,
			"size":        size,
		}},
	})
	if err != nil {
		return nil, err
	}

	// Unwrap value[0].hitsContainers[0]; search responses nest a single
	// container for a single request.
	hits := []any{}
	total := 0
	for _, v := range data.List("value") {
		for _, hc := range v.List("hitsContainers") {
			total = hc.Int("total")
			if h, ok := hc["hits"].([]any); ok {
				hits = h
			}
		}
	}
	return map[string]any{
		"query": query,
		"total": total,
		"hits":  hits,
	}, nil
}

// ListMyChats lists the caller's one-on-one and group chats.
func (s *Service) ListMyChats(ctx context.Context, limit int) (map[string]any, error) {
	data, err := s.client.GetJSON(ctx, "/me/chats", url.Values{
		"$top": {strconv.Itoa(limit)},
	})
	if err != nil {
		return nil, err
	}
	return list(values(data), "chats"), nil
}

// ListChatMessages fetches the most recent messages of one chat.
func (s *Service) ListChatMessages(ctx context.Context, chatID string, limit int) (map[string]any, error) {
	data, err := s.client.GetJSON(ctx, "/me/chats/"+url.PathEscape(chatID)+"/messages", url.Values{
		"$top": {strconv.Itoa(limit)},
	})
	if err != nil {
		return nil, err
	}
	out := list(values(data), "messages")
	out["chat_id"] = chatID
	return out, nil
}
