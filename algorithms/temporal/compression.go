package temporal

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidCompression = errors.New("invalid compression parameters")

// CompressionParams configures the point-wise soft-knee compressor applied to
// raw samples before spectral analysis.
type CompressionParams struct {
	Threshold float64 `json:"threshold" yaml:"threshold"` // amplitude above which compression starts
	Ratio     float64 `json:"ratio" yaml:"ratio"`         // input:output slope above the threshold
	Gain      float64 `json:"gain" yaml:"gain"`           // output multiplier applied after compression
}

// DefaultCompressionParams returns threshold 0.1, ratio 4:1, unity gain.
func DefaultCompressionParams() CompressionParams {
	return CompressionParams{
		Threshold: 0.1,
		Ratio:     4.0,
		Gain:      1.0,
	}
}

// Validate checks that the parameters describe a usable compressor.
func (p CompressionParams) Validate() error {
	if p.Threshold < 0 || math.IsNaN(p.Threshold) || math.IsInf(p.Threshold, 0) {
		return fmt.Errorf("%w: threshold must be >= 0, got %v", ErrInvalidCompression, p.Threshold)
	}
	if p.Ratio <= 0 || math.IsNaN(p.Ratio) || math.IsInf(p.Ratio, 0) {
		return fmt.Errorf("%w: ratio must be > 0, got %v", ErrInvalidCompression, p.Ratio)
	}
	if math.IsNaN(p.Gain) || math.IsInf(p.Gain, 0) {
		return fmt.Errorf("%w: gain must be finite, got %v", ErrInvalidCompression, p.Gain)
	}
	return nil
}

// Compress returns a new slice where every sample whose magnitude exceeds the
// threshold is pulled towards it:
//
//	|y| = threshold + (|x| - threshold) / ratio
//
// with the sign preserved, then every sample is multiplied by gain.
func Compress(samples []float64, params CompressionParams) ([]float64, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	out := make([]float64, len(samples))
	for i, x := range samples {
		if abs := math.Abs(x); abs > params.Threshold {
			x = math.Copysign(params.Threshold+(abs-params.Threshold)/params.Ratio, x)
		}
		out[i] = x * params.Gain
	}

	return out, nil
}
