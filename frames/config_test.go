package frames

import (
	"math"
	"testing"

	"github.com/RyanBlaney/sonido-frames/algorithms/temporal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 600.0, cfg.LowCutFreq)
	assert.Equal(t, 16000.0, cfg.HighCutFreq)
	assert.Equal(t, 180, cfg.NumFrequencyBins)
	assert.Equal(t, NormalizeGlobal, cfg.NormalizationMode)
	assert.Nil(t, cfg.Compression)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero bins", func(c *Config) { c.NumFrequencyBins = 0 }},
		{"zero hop", func(c *Config) { c.HopLength = 0 }},
		{"negative window", func(c *Config) { c.TransformWindow = -2048 }},
		{"unknown window", func(c *Config) { c.Window = "kaiser" }},
		{"unknown mode", func(c *Config) { c.NormalizationMode = "loudness" }},
		{"negative band", func(c *Config) { c.LowCutFreq = -1 }},
		{"infinite band", func(c *Config) { c.HighCutFreq = math.Inf(1) }},
		{"nan sigma", func(c *Config) { c.Sigma = math.NaN() }},
		{"negative scale", func(c *Config) { c.ScalingFactor = -1 }},
		{"too many decimals", func(c *Config) { c.RoundDecimals = 16 }},
		{"negative decimals", func(c *Config) { c.RoundDecimals = -1 }},
		{"bad compression", func(c *Config) {
			c.Compression = &temporal.CompressionParams{Threshold: 0.1, Ratio: 0, Gain: 1}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfigValidateAllowsEmptyBand(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LowCutFreq, cfg.HighCutFreq = 0, 0
	assert.NoError(t, cfg.Validate())
}

func TestParseNormalizationMode(t *testing.T) {
	for name, want := range map[string]NormalizationMode{
		"":        NormalizeNone,
		"none":    NormalizeNone,
		"Global":  NormalizeGlobal,
		"per_bin": NormalizePerBin,
		"per-bin": NormalizePerBin,
	} {
		got, err := ParseNormalizationMode(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseNormalizationMode("max")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "transformed", StageTransformed.String())
	assert.Equal(t, "finalized", StageFinalized.String())
	assert.Equal(t, "unknown", Stage(42).String())
}
