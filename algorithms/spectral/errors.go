package spectral

import "errors"

var (
	ErrEmptySignal        = errors.New("empty signal")
	ErrSignalTooShort     = errors.New("signal shorter than one analysis window")
	ErrInvalidWindow      = errors.New("window size must be positive")
	ErrInvalidHop         = errors.New("hop size must be positive")
	ErrWindowSizeMismatch = errors.New("window function size does not match analysis window")
)
