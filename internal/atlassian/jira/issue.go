package jira

import (
	"github.com/golovatskygroup/mcp-userlink/internal/fields"
	"github.com/golovatskygroup/mcp-userlink/internal/raw"
)

// Issue is the simplified Jira issue model. The field selection is
// captured at construction and drives Simplified; it never changes for
// the life of the value.
type Issue struct {
	ID             string
	Key            string
	Summary        string
	Description    string
	Created        string
	Updated        string
	Status         *Status
	IssueType      *IssueType
	Priority       *Priority
	Assignee       *User
	Reporter       *User
	Labels         []string
	Components     []string
	Comments       []Comment
	Worklogs       []Worklog
	URL            string
	Project        *Project
	DueDate        string
	ResolutionDate string
	Parent         raw.Object
	Subtasks       []raw.Object

	sel fields.Selection
}

// IssueFromAPI builds an Issue from a raw /issue or /search entry.
// browseBase, when non-empty, is the site root used to derive the
// browse URL ({browseBase}/browse/{key}); no key means no URL.
func IssueFromAPI(data raw.Object, sel fields.Selection, browseBase string) Issue {
	f := data.Obj("fields")

	iss := Issue{
		ID:             idOrDefault(data, "id"),
		Key:            data.Str("key"),
		Summary:        f.Str("summary"),
		Description:    richText(f["description"]),
		Created:        f.Str("created"),
		Updated:        f.Str("updated"),
		Labels:         f.Strings("labels"),
		DueDate:        f.Str("duedate"),
		ResolutionDate: f.Str("resolutiondate"),
		sel:            sel,
	}

	if f.Has("assignee") {
		iss.Assignee = userFromAPI(f.Obj("assignee"))
	}
	if f.Has("reporter") {
		iss.Reporter = userFromAPI(f.Obj("reporter"))
	}
	if f.Has("status") {
		iss.Status = statusFromAPI(f.Obj("status"))
	}
	if f.Has("issuetype") {
		iss.IssueType = issueTypeFromAPI(f.Obj("issuetype"))
	}
	if f.Has("priority") {
		iss.Priority = priorityFromAPI(f.Obj("priority"))
	}
	if f.Has("project") {
		iss.Project = projectFromAPI(f.Obj("project"))
	}

	for _, comp := range f.List("components") {
		if name := comp.Str("name"); name != "" {
			iss.Components = append(iss.Components, name)
		}
	}
	for _, c := range f.Obj("comment").List("comments") {
		iss.Comments = append(iss.Comments, commentFromAPI(c))
	}
	for _, w := range f.Obj("worklog").List("worklogs") {
		iss.Worklogs = append(iss.Worklogs, worklogFromAPI(w))
	}

	if f.Has("parent") {
		iss.Parent = f.Obj("parent")
	}
	iss.Subtasks = f.List("subtasks")

	if iss.Key != "" && browseBase != "" {
		iss.URL = browseBase + "/browse/" + iss.Key
	}

	return iss
}

// Simplified projects the issue through its field selection. The
// identifier fields are always present; everything else is emitted only
// when selected and non-empty — selection controls eligibility, not
// forced inclusion of empty data.
func (i Issue) Simplified() map[string]any {
	out := map[string]any{
		"id":  i.ID,
		"key": i.Key,
	}

	inc := i.sel.Include

	if inc("summary") {
		out["summary"] = i.Summary
	}
	if i.URL != "" && inc("url") {
		out["url"] = i.URL
	}
	if i.Description != "" && inc("description") {
		out["description"] = i.Description
	}
	if i.Status != nil && inc("status") {
		out["status"] = i.Status.Simplified()
	}
	if i.IssueType != nil && inc("issuetype") {
		out["issue_type"] = i.IssueType.Simplified()
	}
	if i.Priority != nil && inc("priority") {
		out["priority"] = i.Priority.Simplified()
	}
	if i.Project != nil && inc("project") {
		out["project"] = i.Project.Simplified()
	}
	if i.DueDate != "" && inc("duedate") {
		out["duedate"] = i.DueDate
	}
	if i.ResolutionDate != "" && inc("resolutiondate") {
		out["resolutiondate"] = i.ResolutionDate
	}
	if inc("assignee") {
		if i.Assignee != nil {
			out["assignee"] = i.Assignee.Simplified()
		} else {
			out["assignee"] = map[string]any{"display_name": "Unassigned"}
		}
	}
	if i.Reporter != nil && inc("reporter") {
		out["reporter"] = i.Reporter.Simplified()
	}
	if len(i.Labels) > 0 && inc("labels") {
		out["labels"] = i.Labels
	}
	if len(i.Components) > 0 && inc("components") {
		out["components"] = i.Components
	}
	if i.Created != "" && inc("created") {
		out["created"] = i.Created
	}
	if i.Updated != "" && inc("updated") {
		out["updated"] = i.Updated
	}
	if len(i.Comments) > 0 && inc("comment") {
		comments := make([]map[string]any, 0, len(i.Comments))
		for _, c := range i.Comments {
			comments = append(comments, c.Simplified())
		}
		out["comments"] = comments
	}
	if len(i.Worklogs) > 0 && inc("worklog") {
		worklogs := make([]map[string]any, 0, len(i.Worklogs))
		for _, w := range i.Worklogs {
			worklogs = append(worklogs, w.Simplified())
		}
		out["worklogs"] = worklogs
	}
	if len(i.Parent) > 0 && inc("parent") {
		out["parent"] = map[string]any(i.Parent)
	}
	if len(i.Subtasks) > 0 && inc("subtasks") {
		subtasks := make([]map[string]any, 0, len(i.Subtasks))
		for _, st := range i.Subtasks {
			subtasks = append(subtasks, map[string]any(st))
		}
		out["subtasks"] = subtasks
	}

	return out
}
