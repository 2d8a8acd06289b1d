//go:build !windows && !darwin

package summary

import "os"

// detectSystemLocale returns the system locale string on Unix-like systems.
// For timestamps, priority is: LC_ALL (overrides everything), LC_TIME, LANG.
// Returns empty string if no valid locale is found.
func detectSystemLocale() string {
	for _, envVar := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		locale := os.Getenv(envVar)
		if locale != "" && locale != "C" && locale != "POSIX" {
			return locale
		}
	}
	return ""
}
