package config

import "errors"

var (
	// ErrNilPointer is returned when a nil target is passed to Load.
	ErrNilPointer = errors.New("config: nil pointer passed to Load")
	// ErrParsingConfig is returned when environment parsing fails.
	ErrParsingConfig = errors.New("config: failed to parse environment variables")
)
