package app

import (
	"strings"
	"sync"

	"glocate/internal/category"
	"glocate/internal/query"
	"glocate/internal/result"
)

// noResultsLabel is shown in place of an empty result list.
const noResultsLabel = "No results found"

// SessionState is the single source of truth for the query session. It
// holds the raw result set from the last completed lookup plus every
// knob that shapes the visible view: category, refinement tokens, case
// policy, and sort order.
//
// All mutations go through SessionState methods which hold the mutex.
// Readers use Snapshot() which returns copies.
type SessionState struct {
	mu sync.RWMutex

	// Lookup generation. A reset or cancel advances it; a completed
	// lookup installs its results only while the generation it was
	// submitted under is still current.
	gen int64

	// Raw entries from the last completed lookup, before any filtering.
	raw result.Set

	// Derived view the UI displays.
	visible []result.Entry

	mainText   string
	refineText string
	cat        category.ID
	caseMode   query.CaseMode
	sortColumn result.Column
	sortAsc    bool

	selected result.Entry
	hasSel   bool
}

// Snapshot is an immutable view of the session for rendering.
type Snapshot struct {
	Entries      []result.Entry
	Term         string
	RawCount     int
	Category     category.ID
	CaseMode     query.CaseMode
	SortColumn   result.Column
	SortAsc      bool
	Selected     result.Entry
	HasSelection bool
}

// NewSessionState returns a session with default view settings.
func NewSessionState(col result.Column, asc bool) *SessionState {
	return &SessionState{
		cat:        category.All,
		caseMode:   query.CaseAuto,
		sortColumn: col,
		sortAsc:    asc,
	}
}

// Snapshot returns copies so callers can't mutate session state.
func (s *SessionState) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]result.Entry, len(s.visible))
	copy(entries, s.visible)

	return Snapshot{
		Entries:      entries,
		Term:         s.raw.Term,
		RawCount:     len(s.raw.Entries),
		Category:     s.cat,
		CaseMode:     s.caseMode,
		SortColumn:   s.sortColumn,
		SortAsc:      s.sortAsc,
		Selected:     s.selected,
		HasSelection: s.hasSel,
	}
}

// IntentFor builds the lookup intent for candidate query text without
// committing the text to the session.
func (s *SessionState) IntentFor(text string) query.Intent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return query.BuildIntent(text, s.refineText, s.caseMode)
}

// Generation returns the current lookup generation.
func (s *SessionState) Generation() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// AdvanceGeneration invalidates any lookup still in flight. Called on
// query reset and on cancel.
func (s *SessionState) AdvanceGeneration() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// SetQuery records the main query text and rebuilds the view. Clearing
// the query also clears any manual case override so automatic
// detection resumes.
func (s *SessionState) SetQuery(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mainText = text
	if strings.TrimSpace(text) == "" {
		s.caseMode = query.CaseAuto
	}
	s.rebuildLocked()
}

// SetRefine records the refinement box text.
func (s *SessionState) SetRefine(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refineText = text
}

// SetCategory records the active category.
func (s *SessionState) SetCategory(id category.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cat = id
}

// SetCaseMode records a manual case override. It stays in force until
// the main query is cleared.
func (s *SessionState) SetCaseMode(mode query.CaseMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.caseMode = mode
}

// SetSort records the sort preference and re-sorts the visible view.
func (s *SessionState) SetSort(col result.Column, asc bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortColumn = col
	s.sortAsc = asc
	s.rebuildLocked()
}

// SetResults replaces the raw result set and rebuilds the view,
// provided gen is still the current generation. A stale set is refused
// and the session left untouched. The selection is cleared on install:
// it referred to the old set.
func (s *SessionState) SetResults(gen int64, set result.Set) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.raw = set
	s.selected = result.Entry{}
	s.hasSel = false
	s.rebuildLocked()
	return true
}

// Clear drops the raw set and the view.
func (s *SessionState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// ClearIfCurrent clears the session only when gen is still current, so
// a superseded lookup's failure cannot wipe newer results.
func (s *SessionState) ClearIfCurrent(gen int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.clearLocked()
	return true
}

func (s *SessionState) clearLocked() {
	s.raw = result.Set{}
	s.visible = nil
	s.selected = result.Entry{}
	s.hasSel = false
}

// Rebuild recomputes the visible view from the raw set.
func (s *SessionState) Rebuild() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebuildLocked()
}

// Select records the selected entry. Placeholders are not selectable.
func (s *SessionState) Select(e result.Entry) bool {
	if e.IsPlaceholder() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = e
	s.hasSel = true
	return true
}

// Selected returns the current selection, if any.
func (s *SessionState) Selected() (result.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected, s.hasSel
}

func (s *SessionState) rebuildLocked() {
	if s.raw.Empty() {
		s.visible = nil
		if s.raw.Term != "" {
			s.visible = []result.Entry{result.Placeholder(noResultsLabel)}
		}
		return
	}

	in := query.BuildIntent(s.mainText, s.refineText, s.caseMode)
	// An inline shortcut in the query wins over the selected category.
	cat := s.cat
	if in.HasCategory {
		cat = in.Category
	}
	filtered := result.Filter(s.raw.Entries, category.MatcherFor(cat), in.FilterTokens, in.CaseInsensitive)

	if len(filtered) == 0 {
		s.visible = []result.Entry{result.Placeholder(noResultsLabel)}
		return
	}

	// Filter may return the raw backing slice; sort on a copy.
	view := make([]result.Entry, len(filtered))
	copy(view, filtered)
	result.Sort(view, s.sortColumn, s.sortAsc)
	s.visible = view
}
