// Package category defines the fixed file-type groupings a query can be
// narrowed to, and builds the matchers used to classify result paths.
package category

import (
	"regexp"
	"sort"
	"strings"
)

// ID identifies a file-type grouping. The set is fixed at process start;
// matchers derived from an ID are reproducible so that a matcher built from
// a query shortcut and one built from a UI selection always agree.
type ID int

const (
	All ID = iota
	Directories
	Documents
	Images
	Videos
	Audio
	Apps
	Code
	Archives
	Text
)

func (id ID) String() string {
	switch id {
	case All:
		return "all"
	case Directories:
		return "dir"
	case Documents:
		return "doc"
	case Images:
		return "img"
	case Videos:
		return "video"
	case Audio:
		return "audio"
	case Apps:
		return "app"
	case Code:
		return "code"
	case Archives:
		return "archive"
	case Text:
		return "text"
	default:
		return "all"
	}
}

// extensions maps each category to its filename suffixes. Entries are kept
// lower-case; matching is case-insensitive.
var extensions = map[ID][]string{
	Documents: {
		"pdf", "doc", "docx", "odt", "ods", "odp", "xls", "xlsx",
		"ppt", "pptx", "rtf", "epub", "djvu", "csv",
	},
	Images: {
		"jpg", "jpeg", "png", "gif", "bmp", "webp", "svg", "tif",
		"tiff", "ico", "heic", "raw", "xcf",
	},
	Videos: {
		"mp4", "mkv", "avi", "mov", "wmv", "webm", "flv", "mpg",
		"mpeg", "m4v", "ogv", "3gp",
	},
	Audio: {
		"mp3", "flac", "ogg", "oga", "wav", "m4a", "aac", "wma",
		"opus", "mid", "midi",
	},
	Apps: {
		"desktop", "appimage", "deb", "rpm", "flatpakref", "snap",
		"run", "bin",
	},
	Code: {
		"c", "h", "cpp", "hpp", "cc", "go", "rs", "py", "rb", "js",
		"ts", "java", "kt", "cs", "sh", "bash", "pl", "lua", "php",
		"html", "css", "sql", "swift",
	},
	Archives: {
		"zip", "tar", "gz", "bz2", "xz", "zst", "7z", "rar", "tgz",
		"tbz2", "iso", "cab",
	},
	Text: {
		"txt", "md", "rst", "log", "ini", "cfg", "conf", "json",
		"yaml", "yml", "toml", "xml",
	},
}

// shortcuts maps query shortcut identifiers to IDs. Identifiers are matched
// lower-case; a few aliases are accepted per category.
var shortcuts = map[string]ID{
	"all":      All,
	"dir":      Directories,
	"dirs":     Directories,
	"folder":   Directories,
	"doc":      Documents,
	"docs":     Documents,
	"img":      Images,
	"image":    Images,
	"pic":      Images,
	"video":    Videos,
	"vid":      Videos,
	"audio":    Audio,
	"music":    Audio,
	"app":      Apps,
	"apps":     Apps,
	"code":     Code,
	"src":      Code,
	"archive":  Archives,
	"archives": Archives,
	"zip":      Archives,
	"text":     Text,
	"txt":      Text,
}

// FromShortcut resolves a query shortcut identifier to a category ID.
// Unknown identifiers report ok=false; the caller treats the shortcut text
// as a literal token in that case.
func FromShortcut(name string) (ID, bool) {
	id, ok := shortcuts[strings.ToLower(name)]
	return id, ok
}

// IDs returns every category in display order.
func IDs() []ID {
	return []ID{All, Directories, Documents, Images, Videos, Audio, Apps, Code, Archives, Text}
}

// Extensions returns the suffix list for a category, sorted, or nil for the
// special categories All and Directories.
func Extensions(id ID) []string {
	exts := extensions[id]
	if exts == nil {
		return nil
	}
	out := make([]string, len(exts))
	copy(out, exts)
	sort.Strings(out)
	return out
}

// Matcher is the predicate a category induces over a candidate path.
// The zero Matcher matches everything.
type Matcher struct {
	dirsOnly bool
	re       *regexp.Regexp
}

// MatchesAll reports whether the matcher accepts every entry. Callers use
// this to short-circuit filtering.
func (m Matcher) MatchesAll() bool {
	return !m.dirsOnly && m.re == nil
}

// DirsOnly reports whether the matcher accepts directories exclusively.
func (m Matcher) DirsOnly() bool {
	return m.dirsOnly
}

// Match reports whether a path with the given directory flag belongs to the
// category.
func (m Matcher) Match(path string, isDir bool) bool {
	if m.dirsOnly {
		return isDir
	}
	if m.re == nil {
		return true
	}
	return m.re.MatchString(path)
}

// matchers holds one compiled matcher per category. Built once at init so
// repeated filtering never recompiles a pattern.
var matchers = buildMatchers()

func buildMatchers() map[ID]Matcher {
	out := make(map[ID]Matcher, len(extensions)+2)
	out[All] = Matcher{}
	out[Directories] = Matcher{dirsOnly: true}
	for id := range extensions {
		// Sorted so the pattern is identical across runs.
		exts := Extensions(id)
		pattern := `(?i)\.(` + strings.Join(exts, "|") + `)$`
		out[id] = Matcher{re: regexp.MustCompile(pattern)}
	}
	return out
}

// MatcherFor returns the compiled matcher for a category. Unknown IDs fall
// back to the match-everything matcher.
func MatcherFor(id ID) Matcher {
	return matchers[id]
}
