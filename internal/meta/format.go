package meta

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

var sizeUnits = []string{"KB", "MB", "GB", "TB", "PB"}

// FormatSize renders a byte count with 1024-based units and two decimals,
// e.g. "1.18 MB". Counts under a kilobyte stay exact.
func FormatSize(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n)
	unit := ""
	for _, u := range sizeUnits {
		v /= 1024
		unit = u
		if v < 1024 {
			break
		}
	}
	return fmt.Sprintf("%.2f %s", v, unit)
}

// Describe renders one Info for the detail pane.
func Describe(info Info) string {
	if !info.Accessible {
		return "not accessible"
	}
	mod := fmt.Sprintf("modified %s (%s)",
		info.ModifiedAt.Format("Jan 2, 2006 15:04"), humanize.Time(info.ModifiedAt))
	if info.IsDir {
		item := "items"
		if info.Items == 1 {
			item = "item"
		}
		return fmt.Sprintf("%s %s, %s", humanize.Comma(int64(info.Items)), item, mod)
	}
	return fmt.Sprintf("%s, %s", FormatSize(info.SizeBytes), mod)
}

// StatusLine renders the result-count summary shown after a lookup.
func StatusLine(count int, elapsed time.Duration) string {
	word := "results"
	if count == 1 {
		word = "result"
	}
	return fmt.Sprintf("%s %s in %s", humanize.Comma(int64(count)), word, elapsed.Round(time.Millisecond))
}
