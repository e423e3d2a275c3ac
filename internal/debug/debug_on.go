//go:build debug

// Package debug provides a centralized, categorized debug logging system.
// Build with -tags debug to enable logging.
package debug

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Enabled indicates whether debug logging is active
const Enabled = true

// Category represents a debug logging category
type Category string

const (
	APP    Category = "APP"    // Session control, command dispatch, state
	QUERY  Category = "QUERY"  // Tokenizing, intent building, case policy
	LOCATE Category = "LOCATE" // Lookup and rebuild invocations
	TASK   Category = "TASK"   // Supervisor slots, cancellation, chains
	META   Category = "META"   // Metadata fetches and staleness drops
	STORE  Category = "STORE"  // Database operations, history, settings
	WATCH  Category = "WATCH"  // Index database watching
)

var (
	// enabledCategories controls which categories are active
	enabledCategories = map[Category]bool{
		APP:    true,
		QUERY:  true,
		LOCATE: true,
		TASK:   true,
		META:   true,
		STORE:  true,
		WATCH:  true,
	}
	categoryMu sync.RWMutex

	logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
)

func init() {
	// Check environment variable for category overrides
	// Format: GLOCATE_DEBUG=APP,LOCATE,TASK or GLOCATE_DEBUG=all or GLOCATE_DEBUG=none
	if env := os.Getenv("GLOCATE_DEBUG"); env != "" {
		categoryMu.Lock()
		defer categoryMu.Unlock()

		env = strings.ToUpper(env)
		switch env {
		case "ALL":
			for cat := range enabledCategories {
				enabledCategories[cat] = true
			}
		case "NONE":
			for cat := range enabledCategories {
				enabledCategories[cat] = false
			}
		default:
			for cat := range enabledCategories {
				enabledCategories[cat] = false
			}
			for _, cat := range strings.Split(env, ",") {
				cat = strings.TrimSpace(cat)
				enabledCategories[Category(cat)] = true
			}
		}
	}
}

// Log logs a debug message for the specified category
func Log(cat Category, format string, args ...interface{}) {
	categoryMu.RLock()
	enabled := enabledCategories[cat]
	categoryMu.RUnlock()

	if !enabled {
		return
	}

	msg := fmt.Sprintf(format, args...)
	logger.Printf("[%s] %s", cat, msg)
}

// Enable enables a debug category
func Enable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = true
	categoryMu.Unlock()
}

// Disable disables a debug category
func Disable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = false
	categoryMu.Unlock()
}

// IsEnabled returns whether a category is enabled
func IsEnabled(cat Category) bool {
	categoryMu.RLock()
	defer categoryMu.RUnlock()
	return enabledCategories[cat]
}
