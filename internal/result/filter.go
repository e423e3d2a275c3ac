package result

import (
	"strings"

	"glocate/internal/category"
)

// Filter returns the subset of raw entries matching the category and every
// token. The category predicate runs first; tokens are AND-ed substrings
// against the full path, case-insensitively when ci is set.
//
// Pure and synchronous: no I/O, input never mutated. With no tokens and a
// match-everything category the input slice is returned unchanged, which
// callers use to skip recomputation. Entries carry their joined path, so no
// per-entry joining happens here, and tokens are folded once up front so the
// per-entry work is plain substring scans.
func Filter(raw []Entry, m category.Matcher, tokens []string, ci bool) []Entry {
	if len(tokens) == 0 && m.MatchesAll() {
		return raw
	}

	needles := tokens
	if ci && len(tokens) > 0 {
		needles = make([]string, len(tokens))
		for i, tok := range tokens {
			needles[i] = strings.ToLower(tok)
		}
	}

	out := make([]Entry, 0, len(raw))
entries:
	for _, e := range raw {
		if !m.Match(e.Path, e.IsDir) {
			continue
		}
		haystack := e.Path
		if ci {
			haystack = strings.ToLower(haystack)
		}
		for _, needle := range needles {
			if !strings.Contains(haystack, needle) {
				continue entries
			}
		}
		out = append(out, e)
	}
	return out
}
