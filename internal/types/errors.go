package types

import (
	"errors"
	"fmt"
)

// ErrUserBack is returned when the user explicitly requests to go to the previous step.
var ErrUserBack = errors.New("user navigated back")

// ErrConfigNotFound is returned when an explicitly requested config file does not exist
type ErrConfigNotFound struct {
	Path string
}

func (e ErrConfigNotFound) Error() string {
	return fmt.Sprintf("config file not found: %s", e.Path)
}

// ErrInvalidScheme reports a folder or filename scheme that cannot be evaluated cleanly
type ErrInvalidScheme struct {
	Scheme string
	Reason string
}

func (e ErrInvalidScheme) Error() string {
	return fmt.Sprintf("invalid scheme %q: %s", e.Scheme, e.Reason)
}

// ErrNoDate is returned for files whose show date could not be inferred
type ErrNoDate struct {
	Path string
}

func (e ErrNoDate) Error() string {
	return fmt.Sprintf("no show date found for %s", e.Path)
}
