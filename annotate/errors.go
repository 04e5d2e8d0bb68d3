package annotate

import "errors"

var (
	// ErrConfig is returned for invalid build options, before any markup is
	// read.
	ErrConfig = errors.New("invalid configuration")

	// ErrMalformed is returned when the markup or the feed lacks required
	// structure or holds values that cannot be interpreted.
	ErrMalformed = errors.New("malformed input")
)
