package category

// displayNames is presentational only; nothing in the pipeline keys off
// these strings.
var displayNames = map[ID]string{
	All:         "All categories",
	Directories: "Directories",
	Documents:   "Documents",
	Images:      "Images",
	Videos:      "Videos",
	Audio:       "Audio",
	Apps:        "Applications",
	Code:        "Code",
	Archives:    "Archives",
	Text:        "Plain text",
}

// DisplayName returns the label a UI shows for a category.
func DisplayName(id ID) string {
	if name, ok := displayNames[id]; ok {
		return name
	}
	return displayNames[All]
}
