//go:build darwin

package app

import "os/exec"

// platformOpen opens the path with the user's default application.
func platformOpen(path string) error {
	return exec.Command("open", path).Start()
}
