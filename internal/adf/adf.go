// Package adf extracts plain text from Atlassian Document Format trees.
//
// ADF is the structured JSON representation Jira uses for rich-text
// fields (descriptions, comment bodies, worklog comments). We only ever
// need the text, so the tree is flattened once at model-construction
// time and never retained.
package adf

import "strings"

// Text flattens an ADF node (a decoded JSON value) into plain text.
// The root's own type is ignored; its content is walked depth-first.
// Text runs contribute their text, paragraphs a trailing newline
// fragment, list containers recurse transparently, and unrecognized
// node types are skipped. Malformed input yields "". Fragments are
// joined by single spaces and the result is trimmed.
func Text(node any) string {
	doc, ok := node.(map[string]any)
	if !ok {
		return ""
	}
	frags := collectContent(doc)
	return strings.TrimSpace(strings.Join(frags, " "))
}

func collect(node map[string]any) []string {
	typ, _ := node["type"].(string)

	switch typ {
	case "text":
		if s, _ := node["text"].(string); s != "" {
			return []string{s}
		}
		return nil
	case "paragraph":
		return append(collectContent(node), "\n")
	case "listItem", "orderedList", "bulletList":
		return collectContent(node)
	default:
		return nil
	}
}

func collectContent(node map[string]any) []string {
	content, ok := node["content"].([]any)
	if !ok {
		return nil
	}
	var frags []string
	for _, item := range content {
		child, ok := item.(map[string]any)
		if !ok {
			continue
		}
		frags = append(frags, collect(child)...)
	}
	return frags
}
