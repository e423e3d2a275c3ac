//go:build !debug

// Package debug provides a centralized, categorized debug logging system.
// Without the debug build tag every call compiles to a no-op.
package debug

// Enabled indicates whether debug logging is active
const Enabled = false

// Category represents a debug logging category
type Category string

const (
	APP    Category = "APP"
	QUERY  Category = "QUERY"
	LOCATE Category = "LOCATE"
	TASK   Category = "TASK"
	META   Category = "META"
	STORE  Category = "STORE"
	WATCH  Category = "WATCH"
)

// Log is a no-op without the debug build tag
func Log(cat Category, format string, args ...interface{}) {}

// Enable is a no-op without the debug build tag
func Enable(cat Category) {}

// Disable is a no-op without the debug build tag
func Disable(cat Category) {}

// IsEnabled always reports false without the debug build tag
func IsEnabled(cat Category) bool { return false }
