//go:build darwin

package summary

import (
	"os"
	"os/exec"
	"strings"
)

// detectSystemLocale returns the system locale string on macOS.
// Environment variables win (terminal overrides), then the AppleLocale preference.
func detectSystemLocale() string {
	for _, envVar := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		locale := os.Getenv(envVar)
		if locale != "" && locale != "C" && locale != "POSIX" {
			return locale
		}
	}

	out, err := exec.Command("defaults", "read", "-g", "AppleLocale").Output()
	if err != nil {
		return ""
	}

	// AppleLocale looks like "en_US" or "sv_SE"
	return strings.TrimSpace(string(out))
}
