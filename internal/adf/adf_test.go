package adf

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return v
}

func TestTextParagraph(t *testing.T) {
	doc := decode(t, `{"type":"paragraph","content":[
		{"type":"text","text":"Hello"},
		{"type":"text","text":"world"}
	]}`)
	if got := Text(doc); got != "Hello world" {
		t.Fatalf("Text = %q, want %q", got, "Hello world")
	}
}

func TestTextDocWithList(t *testing.T) {
	doc := decode(t, `{"type":"doc","version":1,"content":[
		{"type":"paragraph","content":[{"type":"text","text":"Intro"}]},
		{"type":"bulletList","content":[
			{"type":"listItem","content":[
				{"type":"paragraph","content":[{"type":"text","text":"one"}]}
			]},
			{"type":"listItem","content":[
				{"type":"paragraph","content":[{"type":"text","text":"two"}]}
			]}
		]}
	]}`)
	if got := Text(doc); got != "Intro \n one \n two" {
		t.Fatalf("Text = %q", got)
	}
}

func TestTextDegenerateInput(t *testing.T) {
	cases := []any{
		nil,
		"just a string",
		42.0,
		map[string]any{},
		map[string]any{"type": "doc", "content": "not a list"},
		decode(t, `{"type":"doc","content":[{"type":"mediaGroup","content":[{"type":"media"}]}]}`),
	}
	for _, c := range cases {
		if got := Text(c); got != "" {
			t.Errorf("Text(%v) = %q, want empty", c, got)
		}
	}
}

func TestTextIdempotent(t *testing.T) {
	doc := decode(t, `{"type":"paragraph","content":[{"type":"text","text":"stable"}]}`)
	first := Text(doc)
	for i := 0; i < 3; i++ {
		if got := Text(doc); got != first {
			t.Fatalf("re-extraction changed output: %q vs %q", got, first)
		}
	}
}
