//go:build windows

package utils

import "os/exec"

// OpenBrowser opens url in the default browser
func OpenBrowser(url string) error {
	return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
}
