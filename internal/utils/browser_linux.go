//go:build linux

package utils

import "os/exec"

// OpenBrowser opens url with xdg-open
func OpenBrowser(url string) error {
	return exec.Command("xdg-open", url).Start()
}
