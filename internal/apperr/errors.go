// Package apperr defines the error kinds the core exposes to callers.
// Lower components wrap the most specific kind; the boundary layer maps
// kinds to HTTP statuses and never sees backend-specific errors.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a project, chapter, or file is absent.
	ErrNotFound = errors.New("not found")
	// ErrIndexBackend is returned on embedding or vector-store faults.
	ErrIndexBackend = errors.New("index backend error")
	// ErrGeneration is returned when a model call fails, returns an empty
	// reply, or returns a reply that itself signals failure.
	ErrGeneration = errors.New("generation error")
	// ErrParse is returned when structured extraction fails where a
	// structured result is mandatory.
	ErrParse = errors.New("parse error")
)

// ErrModelTimeout marks a model call that exceeded its deadline. It is a
// generation-kind error: errors.Is(err, ErrGeneration) also holds, so the
// four-kind contract stays intact for callers that don't care about
// timeouts specifically.
var ErrModelTimeout = &timeoutError{}

type timeoutError struct{}

func (*timeoutError) Error() string { return "model call timed out" }

func (*timeoutError) Is(target error) bool { return target == ErrGeneration }

// Wrap attaches kind to err, keeping the original cause in the chain.
func Wrap(kind error, err error, msg string) error {
	if err == nil {
		return fmt.Errorf("%s: %w", msg, kind)
	}
	return fmt.Errorf("%s: %w: %w", msg, kind, err)
}

// NotFoundf returns a formatted ErrNotFound.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}
