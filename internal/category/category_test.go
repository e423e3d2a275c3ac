package category

import "testing"

func TestFromShortcut(t *testing.T) {
	testCases := []struct {
		name     string
		expected ID
		ok       bool
	}{
		{"doc", Documents, true},
		{"DOC", Documents, true},
		{"img", Images, true},
		{"image", Images, true},
		{"dir", Directories, true},
		{"all", All, true},
		{"archive", Archives, true},
		{"bogus", All, false},
		{"", All, false},
	}

	for _, tc := range testCases {
		id, ok := FromShortcut(tc.name)
		if ok != tc.ok {
			t.Errorf("FromShortcut(%q): expected ok=%v, got %v", tc.name, tc.ok, ok)
			continue
		}
		if ok && id != tc.expected {
			t.Errorf("FromShortcut(%q): expected %v, got %v", tc.name, tc.expected, id)
		}
	}
}

func TestMatcherFor_Images(t *testing.T) {
	m := MatcherFor(Images)

	if !m.Match("/x/y/photo.JPG", false) {
		t.Error("Images matcher should match /x/y/photo.JPG case-insensitively")
	}
	if !m.Match("/x/y/photo.jpeg", false) {
		t.Error("Images matcher should match .jpeg")
	}
	if m.Match("/x/y/notes.txt", false) {
		t.Error("Images matcher should not match /x/y/notes.txt")
	}
	if m.Match("/x/y/jpg", false) {
		t.Error("Images matcher should not match a bare name without a dot")
	}
}

func TestMatcherFor_Directories(t *testing.T) {
	m := MatcherFor(Directories)

	if !m.DirsOnly() {
		t.Error("Directories matcher should report DirsOnly")
	}
	if !m.Match("/home/user/Photos", true) {
		t.Error("Directories matcher should match a directory")
	}
	if m.Match("/home/user/photo.jpg", false) {
		t.Error("Directories matcher should not match a file")
	}
}

func TestMatcherFor_All(t *testing.T) {
	m := MatcherFor(All)

	if !m.MatchesAll() {
		t.Error("All matcher should report MatchesAll")
	}
	if !m.Match("/anything/at.all", false) || !m.Match("/any/dir", true) {
		t.Error("All matcher should match everything")
	}
}

func TestMatcherFor_Reproducible(t *testing.T) {
	// A matcher derived from a shortcut and one derived from a direct ID
	// must behave identically for every category.
	for _, id := range IDs() {
		short, ok := FromShortcut(id.String())
		if !ok {
			t.Fatalf("shortcut %q did not resolve", id.String())
		}
		if short != id {
			t.Errorf("shortcut %q resolved to %v, want %v", id.String(), short, id)
		}

		a := MatcherFor(id)
		b := MatcherFor(short)
		for _, probe := range []struct {
			path  string
			isDir bool
		}{
			{"/x/report.pdf", false},
			{"/x/photo.png", false},
			{"/x/song.flac", false},
			{"/x/clip.mkv", false},
			{"/x/main.go", false},
			{"/x/backup.tar.gz", false},
			{"/x/notes.txt", false},
			{"/x/tool.AppImage", false},
			{"/x/somedir", true},
		} {
			if a.Match(probe.path, probe.isDir) != b.Match(probe.path, probe.isDir) {
				t.Errorf("category %v: matchers disagree on %q", id, probe.path)
			}
		}
	}
}

func TestExtensions_CaseFolded(t *testing.T) {
	for _, id := range IDs() {
		for _, ext := range Extensions(id) {
			for _, r := range ext {
				if r >= 'A' && r <= 'Z' {
					t.Errorf("category %v: extension %q is not case-folded", id, ext)
				}
			}
		}
	}
}

func TestDisplayName(t *testing.T) {
	if DisplayName(Documents) != "Documents" {
		t.Errorf("unexpected display name %q", DisplayName(Documents))
	}
	if DisplayName(ID(999)) != "All categories" {
		t.Errorf("unknown ID should fall back to the All label, got %q", DisplayName(ID(999)))
	}
}
