// Package fields models the caller's field-selection parameter and the
// projection decision derived from it.
package fields

import "strings"

// AllMarker requests every field the model offers.
const AllMarker = "*all"

type kind int

const (
	kindDefault kind = iota // parameter absent: provider default field set
	kindAll
	kindNamed
)

// Selection is the resolved form of a field-selection parameter. It is
// built once at the tool boundary and immutable afterwards.
type Selection struct {
	k     kind
	names []string
}

// Default is the absent-parameter selection.
var Default = Selection{k: kindDefault}

// All selects every field.
var All = Selection{k: kindAll}

// Named builds a selection from an explicit list of field names.
func Named(names []string) Selection {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			out = append(out, n)
		}
	}
	return Selection{k: kindNamed, names: out}
}

// Parse resolves a raw fields parameter: "" means absent, "*all" means
// everything, anything else is a comma-separated name list.
func Parse(s string) Selection {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return Default
	case AllMarker:
		return All
	}
	return Named(strings.Split(s, ","))
}

// IsDefault reports whether the parameter was absent.
func (s Selection) IsDefault() bool { return s.k == kindDefault }

// IsAll reports whether every field was requested explicitly.
func (s Selection) IsAll() bool { return s.k == kindAll }

// Names returns the explicit name list, or nil for All/Default.
func (s Selection) Names() []string {
	if s.k != kindNamed {
		return nil
	}
	return append([]string(nil), s.names...)
}

// Include reports whether a field named name survives projection.
// Note the asymmetry: an absent selection includes everything, like
// AllMarker. Default-field narrowing happens earlier, when the upstream
// fetch decides which fields to request at all.
func (s Selection) Include(name string) bool {
	if s.k != kindNamed {
		return true
	}
	for _, n := range s.names {
		if n == name {
			return true
		}
	}
	return false
}

// Default field sets requested from Jira when the caller omits fields.
var (
	// DefaultReadFields is used for single-issue reads.
	DefaultReadFields = []string{
		"summary", "description", "status", "assignee", "reporter",
		"labels", "priority", "created", "updated", "issuetype",
	}
	// MinimalFields is used for list/search operations.
	MinimalFields = []string{
		"summary", "status", "assignee", "issuetype", "priority", "created", "updated",
	}
)

// UpstreamFields converts a selection into the fields= query parameter
// value, falling back to def when the parameter was absent.
func (s Selection) UpstreamFields(def []string) string {
	switch s.k {
	case kindAll:
		return AllMarker
	case kindNamed:
		return strings.Join(s.names, ",")
	default:
		return strings.Join(def, ",")
	}
}
