package confluence

import (
	"html"
	"strings"
	"unicode"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// htmlToText flattens rendered Confluence HTML (body.view) into plain
// text. Block elements become line breaks, list items get a dash
// marker, consecutive whitespace collapses to one space. The result is
// truncated to maxChars runes on a best-effort boundary; maxChars <= 0
// disables truncation.
func htmlToText(input string, maxChars int) string {
	nodes, err := xhtml.ParseFragment(strings.NewReader(input),
		&xhtml.Node{Type: xhtml.ElementNode, DataAtom: atom.Div, Data: "div"})
	if err != nil {
		// The tokenizer is lenient; a hard parse failure means the
		// body was not HTML at all. Return it collapsed instead.
		return strings.Join(strings.Fields(input), " ")
	}

	w := &excerptWriter{}
	for _, n := range nodes {
		w.walk(n)
	}
	out := strings.TrimSpace(w.sb.String())

	if maxChars > 0 {
		if r := []rune(out); len(r) > maxChars {
			out = strings.TrimSpace(string(r[:maxChars]))
		}
	}
	return out
}

type excerptWriter struct {
	sb        strings.Builder
	listDepth int
	needSpace bool
	lastNL    bool
}

func (w *excerptWriter) walk(n *xhtml.Node) {
	switch n.Type {
	case xhtml.TextNode:
		w.writeText(n.Data)
	case xhtml.ElementNode:
		tag := strings.ToLower(n.Data)

		switch tag {
		case "script", "style":
			return
		case "br":
			w.newline()
			return
		case "ul", "ol":
			w.listDepth++
			w.walkChildren(n)
			w.listDepth--
			w.newline()
			return
		case "li":
			w.newline()
			if w.listDepth > 1 {
				w.sb.WriteString(strings.Repeat("  ", w.listDepth-1))
			}
			w.sb.WriteString("- ")
			w.needSpace = false
			w.lastNL = false
			w.walkChildren(n)
			w.newline()
			return
		}

		block := isBlockElement(tag)
		if block {
			w.newline()
		}
		w.walkChildren(n)
		if block {
			w.newline()
		}
	}
}

func (w *excerptWriter) walkChildren(n *xhtml.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func isBlockElement(tag string) bool {
	switch tag {
	case "p", "div", "section", "article",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"pre", "blockquote",
		"table", "thead", "tbody", "tr", "th", "td":
		return true
	}
	return false
}

func (w *excerptWriter) writeText(s string) {
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, " ", " ")
	for _, r := range s {
		if unicode.IsSpace(r) {
			w.needSpace = true
			continue
		}
		if w.needSpace && w.sb.Len() > 0 && !w.lastNL {
			w.sb.WriteByte(' ')
		}
		w.needSpace = false
		w.lastNL = false
		w.sb.WriteRune(r)
	}
}

func (w *excerptWriter) newline() {
	w.needSpace = false
	if w.sb.Len() == 0 || w.lastNL {
		w.lastNL = true
		return
	}
	w.sb.WriteByte('\n')
	w.lastNL = true
}
