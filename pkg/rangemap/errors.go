package rangemap

import "errors"

var (
	// ErrNotFound is returned by Get when the key falls in an unmapped span.
	ErrNotFound = errors.New("no mapping for key")
	// ErrInvalidRange is returned when stop <= start.
	ErrInvalidRange = errors.New("stop must be greater than start")
	// ErrPartialCoverage is returned by Delete when part of the requested
	// span is not mapped. The map is left unmodified.
	ErrPartialCoverage = errors.New("range not fully mapped")
	// ErrUnorderable is returned when keys cannot be compared, i.e. the
	// map was built with NewFunc and a nil compare function.
	ErrUnorderable = errors.New("keys are not orderable")
)
