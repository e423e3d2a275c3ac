// Package query turns raw search text into structured intent: filter
// tokens, an optional category shortcut, and the case policy the filter
// engine applies.
package query

import (
	"regexp"
	"strings"
	"unicode"

	"glocate/internal/category"
)

// ShortcutPrefix introduces an inline category shortcut, e.g. "::doc".
const ShortcutPrefix = "::"

// shortcutRe matches the prefix plus an alphanumeric identifier bounded by
// start-of-string/whitespace on the left and whitespace/end-of-string on the
// right. Only the first occurrence is considered.
var shortcutRe = regexp.MustCompile(`(^|\s)` + ShortcutPrefix + `([A-Za-z0-9]+)(\s|$)`)

// phraseRe matches a double-quoted phrase. The phrase body is taken
// verbatim, quotes stripped.
var phraseRe = regexp.MustCompile(`"([^"]*)"`)

// Tokenize splits raw query text into filter tokens and resolves an inline
// category shortcut.
//
// The first recognized shortcut is removed from the working text; a shortcut
// with an unknown identifier is left in place and ends up as a literal
// token. Quoted phrases become single tokens and precede the remaining
// whitespace-separated words. Blank input yields (nil, All, false).
func Tokenize(raw string) (tokens []string, cat category.ID, ok bool) {
	text := raw
	cat = category.All

	// Extract the first recognized shortcut; unknown identifiers are skipped
	// and survive as literal tokens.
	for start := 0; start < len(text); {
		loc := shortcutRe.FindStringSubmatchIndex(text[start:])
		if loc == nil {
			break
		}
		name := text[start+loc[4] : start+loc[5]]
		if id, known := category.FromShortcut(name); known {
			cat = id
			ok = true
			// Drop the shortcut but keep the surrounding whitespace so the
			// neighbors still split.
			text = text[:start+loc[2]] + " " + text[start+loc[6]:]
			break
		}
		start += loc[5]
	}

	// Quoted phrases first, verbatim.
	for _, m := range phraseRe.FindAllStringSubmatch(text, -1) {
		if m[1] != "" {
			tokens = append(tokens, m[1])
		}
	}
	text = phraseRe.ReplaceAllString(text, " ")

	for _, f := range strings.Fields(text) {
		tokens = append(tokens, f)
	}

	return tokens, cat, ok
}

// HasUpper reports whether any rune in s is upper-case. The controller uses
// it to auto-select case sensitivity: a query containing upper-case letters
// is assumed to be deliberate about case.
func HasUpper(s string) bool {
	return strings.ContainsFunc(s, unicode.IsUpper)
}
