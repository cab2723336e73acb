package util

import (
	"errors"
)

type Temporary interface {
	Temporary() bool
}

func IsTemporaryError(err error) bool {
	for err := err; err != nil; err = errors.Unwrap(err) {
		if err, ok := err.(Temporary); ok && err.Temporary() {
			return true
		}
	}
	return false
}

const (
	StatusSuccess     = "success"
	StatusUnavailable = "unavailable"
	StatusError       = "error"
)

// ErrorStatus classifies an operation result for logs and metrics.
func ErrorStatus(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case IsTemporaryError(err):
		return StatusUnavailable
	default:
		return StatusError
	}
}
