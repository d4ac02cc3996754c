//go:build !unix

package cca

const supportsLoginNames = false

func platformUsername() (string, bool) { return "", false }
