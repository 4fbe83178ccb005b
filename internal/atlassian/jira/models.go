// Package jira holds the Jira response models and the service that
// drives the tenant gateway. Models decode tolerantly: a missing, null
// or wrong-typed upstream field becomes a documented default, never an
// error. Serialization projects through a field selection into the
// simplified shape returned to callers.
package jira

import (
	"github.com/golovatskygroup/mcp-userlink/internal/adf"
	"github.com/golovatskygroup/mcp-userlink/internal/raw"
)

const defaultID = "0"

func idOrDefault(o raw.Object, key string) string {
	if id := o.ID(key); id != "" {
		return id
	}
	return defaultID
}

// richText accepts either a plain string or a structured ADF document
// and returns plain text in both cases.
func richText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return adf.Text(v)
}

// User is a Jira account reference (assignee, reporter, author).
type User struct {
	AccountID   string
	DisplayName string
	Email       string
	Active      bool
	AvatarURL   string
}

func userFromAPI(o raw.Object) *User {
	return &User{
		AccountID:   o.Str("accountId"),
		DisplayName: o.Str("displayName"),
		Email:       o.Str("emailAddress"),
		Active:      o.Bool("active", true),
		AvatarURL:   o.Obj("avatarUrls").Str("48x48"),
	}
}

// Simplified returns the reduced user record. Once a user field is
// selected on the parent, all of its sub-fields are emitted.
func (u *User) Simplified() map[string]any {
	out := map[string]any{
		"account_id":   u.AccountID,
		"display_name": u.DisplayName,
	}
	if u.Email != "" {
		out["email"] = u.Email
	}
	return out
}

// Status is a workflow status.
type Status struct {
	ID       string
	Name     string
	Category string
}

func statusFromAPI(o raw.Object) *Status {
	return &Status{
		ID:       idOrDefault(o, "id"),
		Name:     o.Str("name"),
		Category: o.Obj("statusCategory").Str("name"),
	}
}

func (s *Status) Simplified() map[string]any {
	out := map[string]any{"name": s.Name}
	if s.Category != "" {
		out["category"] = s.Category
	}
	return out
}

// IssueType is an issue type (Epic, Story, Bug, ...).
type IssueType struct {
	ID      string
	Name    string
	Subtask bool
}

func issueTypeFromAPI(o raw.Object) *IssueType {
	return &IssueType{
		ID:      idOrDefault(o, "id"),
		Name:    o.Str("name"),
		Subtask: o.Bool("subtask", false),
	}
}

func (it *IssueType) Simplified() map[string]any {
	return map[string]any{"name": it.Name, "subtask": it.Subtask}
}

// Priority is an issue priority.
type Priority struct {
	ID   string
	Name string
}

func priorityFromAPI(o raw.Object) *Priority {
	return &Priority{ID: idOrDefault(o, "id"), Name: o.Str("name")}
}

func (p *Priority) Simplified() map[string]any {
	return map[string]any{"name": p.Name}
}

// Project is a Jira project reference.
type Project struct {
	ID   string
	Key  string
	Name string
}

func projectFromAPI(o raw.Object) *Project {
	return &Project{
		ID:   idOrDefault(o, "id"),
		Key:  o.Str("key"),
		Name: o.Str("name"),
	}
}

func (p *Project) Simplified() map[string]any {
	return map[string]any{"key": p.Key, "name": p.Name}
}

// Comment is one issue comment. Body arrives either as ADF or plain
// text depending on the API version; both flatten to a string here.
type Comment struct {
	ID      string
	Author  *User
	Body    string
	Created string
	Updated string
}

func commentFromAPI(o raw.Object) Comment {
	c := Comment{
		ID:      idOrDefault(o, "id"),
		Body:    richText(o["body"]),
		Created: o.Str("created"),
		Updated: o.Str("updated"),
	}
	if o.Has("author") {
		c.Author = userFromAPI(o.Obj("author"))
	}
	return c
}

func (c Comment) Simplified() map[string]any {
	out := map[string]any{
		"id":      c.ID,
		"body":    c.Body,
		"created": c.Created,
	}
	if c.Author != nil {
		out["author"] = c.Author.Simplified()
	}
	return out
}

// Worklog is one time-tracking entry.
type Worklog struct {
	ID               string
	Author           *User
	Comment          string
	TimeSpent        string
	TimeSpentSeconds int
	Created          string
	Started          string
}

func worklogFromAPI(o raw.Object) Worklog {
	w := Worklog{
		ID:               idOrDefault(o, "id"),
		Comment:          richText(o["comment"]),
		TimeSpent:        o.Str("timeSpent"),
		TimeSpentSeconds: o.Int("timeSpentSeconds"),
		Created:          o.Str("created"),
		Started:          o.Str("started"),
	}
	if o.Has("author") {
		w.Author = userFromAPI(o.Obj("author"))
	}
	return w
}

func (w Worklog) Simplified() map[string]any {
	out := map[string]any{
		"id":         w.ID,
		"time_spent": w.TimeSpent,
		"started":    w.Started,
	}
	if w.Author != nil {
		out["author"] = w.Author.Simplified()
	}
	if w.Comment != "" {
		out["comment"] = w.Comment
	}
	return out
}
