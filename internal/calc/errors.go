package calc

import "errors"

// ErrInvalidInput is returned when a caller-supplied quantity is outside
// the physical domain (negative mass, negative speed, non-finite values).
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidConfig is returned when a constant set is unusable: an unknown
// activity, or an efficiency outside (0, 1].
var ErrInvalidConfig = errors.New("invalid configuration")
