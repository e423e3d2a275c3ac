package result

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Column selects what Sort orders by.
type Column int

const (
	ByName Column = iota
	ByPath
)

// Sort orders entries in place: stable, case-insensitive, numeric-aware
// (report2 before report10). Ties on the chosen column fall back to the
// full path so the order is total.
func Sort(entries []Entry, col Column, asc bool) {
	// Collators are not safe for concurrent use; build one per call. Sorting
	// happens once per render cycle, never per keystroke per entry.
	c := collate.New(language.Und, collate.IgnoreCase, collate.Numeric)

	key := func(e Entry) string {
		if col == ByPath {
			return e.Parent
		}
		return e.Name
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		cmp := c.CompareString(key(a), key(b))
		if cmp == 0 {
			cmp = c.CompareString(a.Path, b.Path)
		}
		if asc {
			return cmp < 0
		}
		return cmp > 0
	})
}
