//go:build unix

package cca

import (
	"os/user"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

const supportsLoginNames = true

func platformUsername() (string, bool) {
	u, err := user.LookupId(strconv.Itoa(unix.Getuid()))
	if err != nil {
		return "", false
	}
	name := strings.TrimSpace(u.Username)
	return name, name != ""
}
