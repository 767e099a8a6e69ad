package frames

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTimeRange is returned when crop boundaries fall outside the
	// source duration or start >= end.
	ErrInvalidTimeRange = errors.New("invalid time range")
	// ErrInvalidSegment is returned when the cropped segment is empty or
	// shorter than one transform window.
	ErrInvalidSegment = errors.New("invalid segment")
	// ErrEmptyBand is returned when no frequency row falls inside the band.
	ErrEmptyBand = errors.New("empty frequency band")
	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// EmptyBandError reports the requested band together with the frequency
// range the transform actually produced. It matches ErrEmptyBand with
// errors.Is.
type EmptyBandError struct {
	Low     float64
	High    float64
	AxisMin float64
	AxisMax float64
}

func (e *EmptyBandError) Error() string {
	return fmt.Sprintf("%s: no rows in [%g, %g] Hz, axis covers [%g, %g] Hz",
		ErrEmptyBand, e.Low, e.High, e.AxisMin, e.AxisMax)
}

func (e *EmptyBandError) Is(target error) bool {
	return target == ErrEmptyBand
}
