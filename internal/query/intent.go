package query

import (
	"strings"

	"glocate/internal/category"
)

// CaseMode is the user-facing case-sensitivity setting.
type CaseMode int

const (
	// CaseAuto derives sensitivity from the query text: any upper-case rune
	// means case-sensitive, otherwise case-insensitive.
	CaseAuto CaseMode = iota
	// CaseSensitive and CaseInsensitive are manual overrides. An override
	// wins over CaseAuto until the main query is cleared.
	CaseSensitive
	CaseInsensitive
)

func (m CaseMode) String() string {
	switch m {
	case CaseSensitive:
		return "sensitive"
	case CaseInsensitive:
		return "insensitive"
	default:
		return "auto"
	}
}

// Intent is the structured form of one lookup: the single term handed to
// the lookup tool plus everything applied in memory afterwards. Built fresh
// per invocation, never persisted.
type Intent struct {
	PrimaryTerm     string
	FilterTokens    []string
	Category        category.ID
	HasCategory     bool
	CaseInsensitive bool
}

// Empty reports whether the intent carries nothing to look up.
func (in Intent) Empty() bool {
	return in.PrimaryTerm == ""
}

// CaseInsensitive resolves the effective case policy for the given query
// text under a mode. Only CaseAuto consults the text.
func (m CaseMode) CaseInsensitive(text string) bool {
	switch m {
	case CaseSensitive:
		return false
	case CaseInsensitive:
		return true
	default:
		return !HasUpper(text)
	}
}

// BuildIntent combines the main query text and the refine-filter text into
// one Intent. The first main-query token becomes the primary term sent to
// the lookup tool; every token from both boxes is applied as an in-memory
// substring filter. A category shortcut may appear in either box; the main
// query wins when both carry one.
func BuildIntent(mainText, refineText string, mode CaseMode) Intent {
	mainTokens, cat, hasCat := Tokenize(mainText)
	refineTokens, refineCat, refineHas := Tokenize(refineText)
	if !hasCat && refineHas {
		cat, hasCat = refineCat, true
	}

	in := Intent{
		Category:        cat,
		HasCategory:     hasCat,
		CaseInsensitive: mode.CaseInsensitive(mainText + refineText),
	}
	if len(mainTokens) == 0 {
		return in
	}

	in.PrimaryTerm = mainTokens[0]
	in.FilterTokens = append(in.FilterTokens, mainTokens...)
	in.FilterTokens = append(in.FilterTokens, refineTokens...)
	return in
}

// Describe renders an intent for diagnostics.
func (in Intent) Describe() string {
	var b strings.Builder
	b.WriteString(in.PrimaryTerm)
	if in.HasCategory {
		b.WriteString(" [")
		b.WriteString(in.Category.String())
		b.WriteString("]")
	}
	if in.CaseInsensitive {
		b.WriteString(" (ci)")
	}
	return b.String()
}
