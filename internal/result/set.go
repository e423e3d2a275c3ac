package result

// Set is the cached output of the most recent successful lookup: the
// classified entries plus the exact term that produced them. The session
// controller owns exactly one Set and replaces it wholesale on every new
// lookup; the only in-place mutation is the display sort.
type Set struct {
	Term    string
	Entries []Entry
}

// Empty reports whether the set holds no entries.
func (s *Set) Empty() bool {
	return s == nil || len(s.Entries) == 0
}
