//go:build !linux && !darwin

package app

import "errors"

func platformOpen(path string) error {
	return errors.New("opening entries is not supported on this platform")
}
