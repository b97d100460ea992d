package artifact

import "errors"

var (
	// ErrNotFound is returned by Read when the artifact does not exist.
	ErrNotFound = errors.New("artifact not found")

	// ErrInvalidDomain is returned when a domain cannot be used as a
	// directory name: empty, "." or "..", or containing a path separator.
	ErrInvalidDomain = errors.New("invalid domain for output directory")

	// ErrInvalidName is returned when an artifact name is empty or contains
	// a path separator.
	ErrInvalidName = errors.New("invalid artifact name")
)
