//go:build windows

package summary

import (
	"os"
	"syscall"
	"unsafe"
)

var (
	kernel32                 = syscall.NewLazyDLL("kernel32.dll")
	procGetUserDefaultLocale = kernel32.NewProc("GetUserDefaultLocaleName")
)

// detectSystemLocale returns the system locale string on Windows.
// Environment variables are checked first for WSL and test consistency,
// then GetUserDefaultLocaleName.
func detectSystemLocale() string {
	for _, envVar := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		locale := os.Getenv(envVar)
		if locale != "" && locale != "C" && locale != "POSIX" {
			return locale
		}
	}

	const maxLen = 85 // LOCALE_NAME_MAX_LENGTH

	buf := make([]uint16, maxLen)
	ret, _, _ := procGetUserDefaultLocale.Call(
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(maxLen),
	)
	if ret == 0 {
		return ""
	}
	return syscall.UTF16ToString(buf)
}
