package fields

import (
	"strings"
	"testing"
)

func TestIncludeNamedSubset(t *testing.T) {
	sel := Named([]string{"a", "b"})
	if !sel.Include("a") || !sel.Include("b") {
		t.Fatal("listed names must be included")
	}
	if sel.Include("c") {
		t.Fatal("unlisted name must be excluded")
	}
}

func TestIncludeAllAndDefault(t *testing.T) {
	for _, name := range []string{"summary", "anything", ""} {
		if !All.Include(name) {
			t.Fatalf("All must include %q", name)
		}
		if !Default.Include(name) {
			t.Fatalf("Default must include %q", name)
		}
	}
}

func TestParse(t *testing.T) {
	if !Parse("").IsDefault() {
		t.Fatal("empty input must parse as Default")
	}
	all := Parse("  *all ")
	if !all.IsAll() {
		t.Fatal("*all must parse as All")
	}
	if all.Names() != nil || !all.Include("anything") {
		t.Fatal("*all selection must carry no name list and include everything")
	}

	sel := Parse("summary, status ,assignee")
	if sel.IsDefault() || sel.IsAll() {
		t.Fatal("name list parsed as Default/All")
	}
	got := sel.Names()
	want := []string{"summary", "status", "assignee"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("parsed names = %v, want %v", got, want)
	}
}

func TestUpstreamFields(t *testing.T) {
	def := []string{"summary", "status"}
	if got := Default.UpstreamFields(def); got != "summary,status" {
		t.Fatalf("Default upstream fields = %q", got)
	}
	if got := All.UpstreamFields(def); got != AllMarker {
		t.Fatalf("All upstream fields = %q", got)
	}
	if got := Named([]string{"id", "key"}).UpstreamFields(def); got != "id,key" {
		t.Fatalf("Named upstream fields = %q", got)
	}
}
