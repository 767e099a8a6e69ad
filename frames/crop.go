package frames

import (
	"fmt"
	"math"
)

// Crop returns the part of samples between start and end seconds,
// [int(start*sampleRate), int(end*sampleRate)). The returned slice shares
// memory with samples but has its capacity clipped, so appending to it never
// writes into the source.
func Crop(samples []float64, sampleRate int, start, end float64) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be > 0, got %d", ErrInvalidTimeRange, sampleRate)
	}
	if math.IsNaN(start) || math.IsNaN(end) {
		return nil, fmt.Errorf("%w: start and end must be numbers", ErrInvalidTimeRange)
	}

	duration := Duration(len(samples), sampleRate)

	if start < 0 {
		return nil, fmt.Errorf("%w: start %gs is negative", ErrInvalidTimeRange, start)
	}
	if start >= duration || end > duration {
		return nil, fmt.Errorf("%w: [%gs, %gs) outside source duration %gs", ErrInvalidTimeRange, start, end, duration)
	}
	if start >= end {
		return nil, fmt.Errorf("%w: start %gs must be before end %gs", ErrInvalidTimeRange, start, end)
	}

	startSample := int(start * float64(sampleRate))
	endSample := min(int(end*float64(sampleRate)), len(samples))

	return samples[startSample:endSample:endSample], nil
}

// Duration returns the length in seconds of n samples at sampleRate.
func Duration(n, sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return float64(n) / float64(sampleRate)
}
