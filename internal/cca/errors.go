package cca

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUsage        = errors.New("usage error")
	ErrNotCCAFile   = errors.New("this file is not a CCA archive")
	ErrFileNotFound = errors.New("unable to find CCA archive")
	ErrInvalidMagic = errors.New("invalid CCA archive header")
	ErrOutputCreate = errors.New("unable to create a text output of the CCA archive")
	ErrDebugCreate  = errors.New("unable to create debug infos file")
)

// Wrap tags err with marker so callers can classify it with errors.Is while
// the message keeps the path and underlying cause.
func Wrap(marker error, subject string, err error) error {
	if marker == nil {
		marker = ErrUsage
	}
	subject = strings.TrimSpace(subject)
	switch {
	case subject != "" && err != nil:
		return fmt.Errorf("%w: %s: %w", marker, subject, err)
	case subject != "":
		return fmt.Errorf("%w: %s", marker, subject)
	case err != nil:
		return fmt.Errorf("%w: %w", marker, err)
	default:
		return marker
	}
}
