package cca

import (
	"os"
	"strings"
)

// UsernameFunc reports the invoking user's login name when the platform can
// determine it.
type UsernameFunc func() (string, bool)

// CurrentUsername resolves the login name of the invoking user. It returns
// false on platforms without login names or when no lookup succeeds.
func CurrentUsername() (string, bool) {
	if !supportsLoginNames {
		return "", false
	}
	if name, ok := platformUsername(); ok {
		return name, true
	}
	for _, key := range []string{"LOGNAME", "USER"} {
		if name := strings.TrimSpace(os.Getenv(key)); name != "" {
			return name, true
		}
	}
	return "", false
}

// NoUsername is a UsernameFunc for hosts or tests without login names.
func NoUsername() (string, bool) { return "", false }
