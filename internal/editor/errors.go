package editor

import "errors"

var (
	ErrEmptySearch         = errors.New("search text must not be empty")
	ErrTextNotFound        = errors.New("the text to be replaced does not exist in the CCA archive")
	ErrReplacementTooLong  = errors.New("replacement text cannot be longer than the original text")
	ErrOffsetOutOfRange    = errors.New("offset out of bounds")
	ErrInvalidHex          = errors.New("invalid hexadecimal input")
	ErrLocked              = errors.New("archive is locked by another process")
	ErrConcurrentlyChanged = errors.New("archive changed on disk since it was opened")
)
