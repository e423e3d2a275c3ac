//go:build linux

package app

import "os/exec"

// platformOpen opens the path with the user's default application.
func platformOpen(path string) error {
	return exec.Command("xdg-open", path).Start()
}
