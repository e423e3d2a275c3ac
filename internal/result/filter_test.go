package result

import (
	"fmt"
	"reflect"
	"testing"

	"glocate/internal/category"
)

func testEntries() []Entry {
	lines := []string{
		"/home/user/report.pdf",
		"/home/user/Photos/",
		"/home/user/Photos/photo.JPG",
		"/home/user/notes.txt",
		"/var/log/syslog",
		"/home/user/projects/app/main.go",
	}
	return ClassifyAll(lines)
}

func TestFilter_IdentityLaw(t *testing.T) {
	raw := testEntries()
	got := Filter(raw, category.MatcherFor(category.All), nil, true)

	if !reflect.DeepEqual(got, raw) {
		t.Error("match-all category with no tokens must return the input unchanged")
	}
	// Same backing slice, not a copy: callers rely on this to short-circuit.
	if len(got) > 0 && &got[0] != &raw[0] {
		t.Error("identity filter should return the input slice itself")
	}
}

func TestFilter_Category(t *testing.T) {
	raw := testEntries()

	imgs := Filter(raw, category.MatcherFor(category.Images), nil, true)
	if len(imgs) != 1 || imgs[0].Name != "photo.JPG" {
		t.Errorf("Images filter: expected [photo.JPG], got %+v", imgs)
	}

	dirs := Filter(raw, category.MatcherFor(category.Directories), nil, true)
	if len(dirs) != 1 || dirs[0].Name != "Photos" {
		t.Errorf("Directories filter: expected [Photos], got %+v", dirs)
	}
}

func TestFilter_TokensAreANDed(t *testing.T) {
	raw := testEntries()

	got := Filter(raw, category.MatcherFor(category.All), []string{"user", "photo"}, true)
	// Case-insensitive: matches the Photos dir and the JPG inside it.
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(got), got)
	}

	got = Filter(raw, category.MatcherFor(category.All), []string{"user", "syslog"}, true)
	if len(got) != 0 {
		t.Errorf("tokens from different paths must AND to nothing, got %+v", got)
	}
}

func TestFilter_CasePolicy(t *testing.T) {
	raw := testEntries()

	ci := Filter(raw, category.MatcherFor(category.All), []string{"photos"}, true)
	if len(ci) != 2 {
		t.Errorf("case-insensitive 'photos': expected 2, got %d", len(ci))
	}

	cs := Filter(raw, category.MatcherFor(category.All), []string{"photos"}, false)
	if len(cs) != 0 {
		t.Errorf("case-sensitive 'photos': expected 0, got %d", len(cs))
	}

	cs = Filter(raw, category.MatcherFor(category.All), []string{"Photos"}, false)
	if len(cs) != 2 {
		t.Errorf("case-sensitive 'Photos': expected 2, got %d", len(cs))
	}
}

func TestFilter_Composability(t *testing.T) {
	raw := testEntries()
	m := category.MatcherFor(category.All)
	t1 := []string{"home"}
	t2 := []string{"photo"}

	chained := Filter(Filter(raw, m, t1, true), m, t2, true)
	merged := Filter(raw, m, append(append([]string{}, t1...), t2...), true)

	if !reflect.DeepEqual(chained, merged) {
		t.Errorf("refinement must compose: chained %+v, merged %+v", chained, merged)
	}
}

func TestFilter_InputNotMutated(t *testing.T) {
	raw := testEntries()
	before := make([]Entry, len(raw))
	copy(before, raw)

	Filter(raw, category.MatcherFor(category.Code), []string{"main"}, true)

	if !reflect.DeepEqual(raw, before) {
		t.Error("Filter must not mutate its input")
	}
}

func BenchmarkFilter20k(b *testing.B) {
	raw := make([]Entry, 0, 20000)
	for i := 0; i < 20000; i++ {
		raw = append(raw, Classify(fmt.Sprintf("/home/user/projects/dir%04d/file%04d.txt", i%100, i)))
	}
	m := category.MatcherFor(category.Text)
	tokens := []string{"projects", "file"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Filter(raw, m, tokens, true)
	}
}
