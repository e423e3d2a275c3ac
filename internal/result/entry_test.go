package result

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		line     string
		expected Entry
	}{
		{
			"/home/user/doc.txt",
			Entry{Name: "doc.txt", Parent: "/home/user", Path: "/home/user/doc.txt", IsDir: false},
		},
		{
			"/home/user/Photos/",
			Entry{Name: "Photos", Parent: "/home/user", Path: "/home/user/Photos", IsDir: true},
		},
		{
			"/",
			Entry{Name: "/", Parent: "/", Path: "/", IsDir: true},
		},
		{
			"/etc",
			Entry{Name: "etc", Parent: "/", Path: "/etc", IsDir: false},
		},
		{
			"/srv/",
			Entry{Name: "srv", Parent: "/", Path: "/srv", IsDir: true},
		},
	}

	for _, tc := range testCases {
		got := Classify(tc.line)
		if got != tc.expected {
			t.Errorf("Classify(%q): expected %+v, got %+v", tc.line, tc.expected, got)
		}
	}
}

func TestClassify_ParentNeverEmpty(t *testing.T) {
	for _, line := range []string{"/", "/a", "/a/", "/a/b", "/a/b/c.txt"} {
		e := Classify(line)
		if e.Parent == "" {
			t.Errorf("Classify(%q) produced an empty parent", line)
		}
		if e.Name == "" {
			t.Errorf("Classify(%q) produced an empty name", line)
		}
	}
}

func TestClassifyAll_SkipsBlankLines(t *testing.T) {
	entries := ClassifyAll([]string{"/a/x.txt", "", "  ", "/b/"})
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "x.txt" || entries[1].Name != "b" {
		t.Errorf("unexpected entries %+v", entries)
	}
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder("No results found")
	if !p.IsPlaceholder() {
		t.Error("placeholder should report IsPlaceholder")
	}
	if Classify("/home/user/doc.txt").IsPlaceholder() {
		t.Error("a real entry must never look like the placeholder")
	}
}

func TestSetEmpty(t *testing.T) {
	var s *Set
	if !s.Empty() {
		t.Error("nil set should be empty")
	}
	s = &Set{Term: "x"}
	if !s.Empty() {
		t.Error("set without entries should be empty")
	}
	s.Entries = []Entry{Classify("/a/b")}
	if s.Empty() {
		t.Error("populated set should not be empty")
	}
}

func TestClassifyAll_PreservesOrder(t *testing.T) {
	lines := []string{"/z/last", "/a/first", "/m/middle"}
	entries := ClassifyAll(lines)
	var got []string
	for _, e := range entries {
		got = append(got, e.Path)
	}
	if !reflect.DeepEqual(got, []string{"/z/last", "/a/first", "/m/middle"}) {
		t.Errorf("classification must not reorder lines, got %v", got)
	}
}
