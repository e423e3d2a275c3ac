// Package result models lookup results and the in-memory operations over
// them: classification of raw output lines, filtering, and sorting.
package result

import "strings"

const sep = "/"

// Entry is one matched filesystem path, split for display. Immutable after
// classification; the whole set is discarded on every new lookup.
type Entry struct {
	Name   string
	Parent string
	Path   string // full path, no trailing separator; precomputed for filtering
	IsDir  bool
}

// Classify converts one output line of the lookup tool into an Entry. The
// caller skips blank lines; Classify never sees them. A trailing separator
// marks a directory; "/" alone maps to name "/", parent "/".
func Classify(rawLine string) Entry {
	if rawLine == sep {
		return Entry{Name: sep, Parent: sep, Path: sep, IsDir: true}
	}

	isDir := strings.HasSuffix(rawLine, sep)
	trimmed := strings.TrimRight(rawLine, sep)

	idx := strings.LastIndex(trimmed, sep)
	if idx < 0 {
		// The lookup tool emits absolute paths; a relative line still gets a
		// usable split.
		return Entry{Name: trimmed, Parent: sep, Path: trimmed, IsDir: isDir}
	}
	parent := trimmed[:idx]
	name := trimmed[idx+1:]
	if parent == "" {
		// Direct child of the root.
		parent = sep
	}

	return Entry{Name: name, Parent: parent, Path: trimmed, IsDir: isDir}
}

// ClassifyAll classifies every non-blank line.
func ClassifyAll(lines []string) []Entry {
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, Classify(line))
	}
	return entries
}

// Placeholder is the single synthetic entry a view shows when a lookup
// matched nothing. Its empty parent distinguishes it from real entries;
// commands acting on the selection must check IsPlaceholder first.
func Placeholder(label string) Entry {
	return Entry{Name: label}
}

// IsPlaceholder reports whether the entry is the display-only "no results"
// row. Real entries always carry a non-empty parent.
func (e Entry) IsPlaceholder() bool {
	return e.Parent == ""
}
