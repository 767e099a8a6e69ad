package frames

import (
	"fmt"
	"math"
	"strings"

	"github.com/RyanBlaney/sonido-frames/algorithms/temporal"
	"github.com/RyanBlaney/sonido-frames/algorithms/windowing"
)

// NormalizationMode selects how the smoothed matrix is scaled toward [0, 1].
type NormalizationMode string

const (
	// NormalizeNone passes values through unchanged.
	NormalizeNone NormalizationMode = "none"
	// NormalizeGlobal divides by the matrix-wide maximum plus GlobalEpsilon.
	NormalizeGlobal NormalizationMode = "global"
	// NormalizePerBin divides each bin row by its own maximum plus PerBinEpsilon.
	NormalizePerBin NormalizationMode = "per_bin"
)

const (
	GlobalEpsilon = 1e-3
	PerBinEpsilon = 1e-8

	maxRoundDecimals = 15
)

// ParseNormalizationMode resolves a mode name; "per-bin" and "perbin" are
// accepted as aliases of per_bin.
func ParseNormalizationMode(name string) (NormalizationMode, error) {
	switch m := strings.ToLower(strings.TrimSpace(name)); m {
	case "none", "":
		return NormalizeNone, nil
	case "global":
		return NormalizeGlobal, nil
	case "per_bin", "per-bin", "perbin":
		return NormalizePerBin, nil
	default:
		return "", fmt.Errorf("%w: unknown normalization mode %q", ErrInvalidConfig, name)
	}
}

// Config holds every option of the frame extraction pipeline.
type Config struct {
	// Frequency band kept after the transform, inclusive on both ends (Hz).
	LowCutFreq  float64 `json:"low_cut_freq" yaml:"low_cut_freq"`
	HighCutFreq float64 `json:"high_cut_freq" yaml:"high_cut_freq"`

	// Number of values per output frame.
	NumFrequencyBins int `json:"num_frequency_bins" yaml:"num_frequency_bins"`

	// Transform parameters, in samples.
	HopLength       int    `json:"hop_length" yaml:"hop_length"`
	TransformWindow int    `json:"transform_window" yaml:"transform_window"`
	Window          string `json:"window" yaml:"window"`
	Center          bool   `json:"center" yaml:"center"`

	NormalizationMode NormalizationMode `json:"normalization_mode" yaml:"normalization_mode"`

	// Gaussian smoothing width along the bin axis; <= 0 disables smoothing.
	Sigma float64 `json:"sigma" yaml:"sigma"`

	// Logarithmically spaced bin edges instead of linear ones.
	LogFrequency bool `json:"log_frequency" yaml:"log_frequency"`

	ScalingFactor float64 `json:"scaling_factor" yaml:"scaling_factor"`
	RoundDecimals int     `json:"round_decimals" yaml:"round_decimals"`

	// Optional dynamic-range compression of the raw segment.
	Compression *temporal.CompressionParams `json:"compression,omitempty" yaml:"compression,omitempty"`
}

// DefaultConfig returns the default pipeline configuration. The band and bin
// count are those the reference frame sets were rendered with.
func DefaultConfig() Config {
	return Config{
		LowCutFreq:        600,
		HighCutFreq:       16000,
		NumFrequencyBins:  180,
		HopLength:         512,
		TransformWindow:   2048,
		Window:            string(windowing.TypeHann),
		Center:            true,
		NormalizationMode: NormalizeGlobal,
		Sigma:             2.0,
		LogFrequency:      false,
		ScalingFactor:     5.0,
		RoundDecimals:     2,
	}
}

// Validate checks the configuration. A band that contains no frequency rows
// is not a configuration error here; it surfaces as ErrEmptyBand once the
// frequency axis is known.
func (c Config) Validate() error {
	if !finite(c.LowCutFreq) || !finite(c.HighCutFreq) {
		return fmt.Errorf("%w: band edges must be finite", ErrInvalidConfig)
	}
	if c.LowCutFreq < 0 || c.HighCutFreq < 0 {
		return fmt.Errorf("%w: band edges must be >= 0, got [%g, %g]", ErrInvalidConfig, c.LowCutFreq, c.HighCutFreq)
	}
	if c.NumFrequencyBins <= 0 {
		return fmt.Errorf("%w: num_frequency_bins must be > 0, got %d", ErrInvalidConfig, c.NumFrequencyBins)
	}
	if c.HopLength <= 0 {
		return fmt.Errorf("%w: hop_length must be > 0, got %d", ErrInvalidConfig, c.HopLength)
	}
	if c.TransformWindow <= 0 {
		return fmt.Errorf("%w: transform_window must be > 0, got %d", ErrInvalidConfig, c.TransformWindow)
	}
	if _, err := windowing.ParseType(c.Window); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := ParseNormalizationMode(string(c.NormalizationMode)); err != nil {
		return err
	}
	if !finite(c.Sigma) {
		return fmt.Errorf("%w: sigma must be finite", ErrInvalidConfig)
	}
	if c.ScalingFactor < 0 || !finite(c.ScalingFactor) {
		return fmt.Errorf("%w: scaling_factor must be a finite value >= 0, got %v", ErrInvalidConfig, c.ScalingFactor)
	}
	if c.RoundDecimals < 0 || c.RoundDecimals > maxRoundDecimals {
		return fmt.Errorf("%w: round_decimals must be in [0, %d], got %d", ErrInvalidConfig, maxRoundDecimals, c.RoundDecimals)
	}
	if c.Compression != nil {
		if err := c.Compression.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
