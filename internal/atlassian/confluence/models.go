// Package confluence holds the Confluence content models and read
// operations. Decoding follows the same tolerance rules as the Jira
// models: absent or mistyped upstream fields degrade to defaults.
package confluence

import (
	"github.com/golovatskygroup/mcp-userlink/internal/raw"
)

// excerptMaxChars bounds the plain-text excerpt derived from a page
// body so search results stay readable.
const excerptMaxChars = 2000

// User is a Confluence account reference.
type User struct {
	AccountID   string
	DisplayName string
	Email       string
}

func userFromAPI(o raw.Object) *User {
	return &User{
		AccountID:   o.Str("accountId"),
		DisplayName: o.Str("displayName"),
		Email:       o.Str("email"),
	}
}

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

// Version is one content version.
type Version struct {
	Number int
	When   string
	Author *User
}

func versionFromAPI(o raw.Object) *Version {
	v := &Version{
		Number: o.Int("number"),
		When:   o.Str("when"),
	}
	if o.Has("by") {
		v.Author = userFromAPI(o.Obj("by"))
	}
	return v
}

func (v *Version) Simplified() map[string]any {
	out := map[string]any{"number": v.Number}
	if v.When != "" {
		out["when"] = v.When
	}
	if v.Author != nil {
		out["by"] = v.Author.Simplified()
	}
	return out
}

// Space is a Confluence space.
type Space struct {
	ID   string
	Key  string
	Name string
	Type string
}

func spaceFromAPI(o raw.Object) *Space {
	return &Space{
		ID:   o.ID("id"),
		Key:  o.Str("key"),
		Name: o.Str("name"),
		Type: o.Str("type"),
	}
}

func (s *Space) Simplified() map[string]any {
	out := map[string]any{"key": s.Key, "name": s.Name}
	if s.Type != "" {
		out["type"] = s.Type
	}
	return out
}

// Page is a content record (page or blog post) with a plain-text
// excerpt derived once, at construction, from the rendered HTML body.
type Page struct {
	ID      string
	Title   string
	Type    string
	Status  string
	Space   *Space
	Version *Version
	URL     string
	Excerpt string
}

// PageFromAPI decodes a content entry. linkBase prefixes the relative
// webui link when both are present; no link means no URL.
func PageFromAPI(o raw.Object, linkBase string) Page {
	p := Page{
		ID:     o.ID("id"),
		Title:  o.Str("title"),
		Type:   o.Str("type"),
		Status: o.Str("status"),
	}
	if o.Has("space") {
		p.Space = spaceFromAPI(o.Obj("space"))
	}
	if o.Has("version") {
		p.Version = versionFromAPI(o.Obj("version"))
	}
	if webui := o.Obj("_links").Str("webui"); webui != "" && linkBase != "" {
		p.URL = linkBase + webui
	}
	if body := o.Obj("body").Obj("view").Str("value"); body != "" {
		p.Excerpt = htmlToText(body, excerptMaxChars)
	}
	return p
}

// Simplified returns the reduced page record. The identifier is always
// present; empty fields are omitted.
func (p Page) Simplified() map[string]any {
	out := map[string]any{
		"id":    p.ID,
		"title": p.Title,
	}
	if p.Type != "" {
		out["type"] = p.Type
	}
	if p.Status != "" {
		out["status"] = p.Status
	}
	if p.Space != nil {
		out["space"] = p.Space.Simplified()
	}
	if p.Version != nil {
		out["version"] = p.Version.Simplified()
	}
	if p.URL != "" {
		out["url"] = p.URL
	}
	if p.Excerpt != "" {
		out["excerpt"] = p.Excerpt
	}
	return out
}
