package frames

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RyanBlaney/sonido-frames/algorithms/common"
	"github.com/RyanBlaney/sonido-frames/algorithms/spectral"
	"github.com/RyanBlaney/sonido-frames/algorithms/temporal"
	"github.com/RyanBlaney/sonido-frames/algorithms/windowing"
	"github.com/RyanBlaney/sonido-frames/logging"
)

// Extractor turns waveform segments into normalized frame matrices. It holds
// only immutable configuration and may be shared between goroutines.
type Extractor struct {
	config  Config
	window  *windowing.Window
	logger  logging.Logger
	workers int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used to report stage transitions.
func WithLogger(logger logging.Logger) Option {
	return func(e *Extractor) { e.logger = logging.OrNoOp(logger) }
}

// WithWorkers bounds the goroutines used by the transform and smoothing
// stages. n <= 0 selects a count from runtime.NumCPU.
func WithWorkers(n int) Option {
	return func(e *Extractor) { e.workers = n }
}

// NewExtractor validates cfg and builds an Extractor.
func NewExtractor(cfg Config, opts ...Option) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	windowType, err := windowing.ParseType(cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	window, err := windowing.New(windowType, cfg.TransformWindow, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	e := &Extractor{
		config: cfg,
		window: window,
		logger: &logging.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithFields(logging.Fields{
		"component": "frame_extractor",
	})

	return e, nil
}

// Config returns the configuration the extractor was built with.
func (e *Extractor) Config() Config {
	return e.config
}

// Run crops samples to [start, end) seconds and processes the segment.
func (e *Extractor) Run(ctx context.Context, samples []float64, sampleRate int, start, end float64) (OutputMatrix, error) {
	logger := e.logger.WithContext(ctx).WithFields(logging.Fields{
		"function":    "Run",
		"start_time":  start,
		"end_time":    end,
		"sample_rate": sampleRate,
	})

	segment, err := Crop(samples, sampleRate, start, end)
	if err != nil {
		logger.Error(err, "Failed to crop waveform", logging.Fields{
			"source_duration": Duration(len(samples), sampleRate),
		})
		return nil, err
	}
	logger.Debug("Stage complete", logging.Fields{
		"stage":   StageCropped.String(),
		"samples": len(segment),
	})

	return e.Process(ctx, segment, sampleRate)
}

// Process runs the pipeline on an already cropped segment: transform,
// restrict and bin, smooth, normalize and scale, finalize. The context is
// checked between stages; a cancelled context aborts without partial output.
func (e *Extractor) Process(ctx context.Context, segment []float64, sampleRate int) (OutputMatrix, error) {
	cfg := e.config
	began := time.Now()

	logger := e.logger.WithContext(ctx).WithFields(logging.Fields{
		"function":    "Process",
		"sample_rate": sampleRate,
	})

	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be > 0, got %d", ErrInvalidSegment, sampleRate)
	}
	if len(segment) == 0 {
		return nil, fmt.Errorf("%w: segment is empty", ErrInvalidSegment)
	}
	if len(segment) < cfg.TransformWindow {
		return nil, fmt.Errorf("%w: %d samples is shorter than one %d-sample window",
			ErrInvalidSegment, len(segment), cfg.TransformWindow)
	}

	if cfg.Compression != nil {
		compressed, err := temporal.Compress(segment, *cfg.Compression)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		segment = compressed
		logger.Debug("Applied dynamic range compression", logging.Fields{
			"threshold": cfg.Compression.Threshold,
			"ratio":     cfg.Compression.Ratio,
			"gain":      cfg.Compression.Gain,
		})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Transform
	stft := spectral.NewSTFT(
		spectral.WithCenter(cfg.Center),
		spectral.WithWorkers(e.workers),
		spectral.WithLogger(logger),
	)
	spectrum, err := stft.Compute(segment, cfg.TransformWindow, cfg.HopLength, sampleRate, e.window)
	if err != nil {
		if errors.Is(err, spectral.ErrSignalTooShort) || errors.Is(err, spectral.ErrEmptySignal) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSegment, err)
		}
		return nil, fmt.Errorf("transform failed: %w", err)
	}
	logger.Debug("Stage complete", logging.Fields{
		"stage":       StageTransformed.String(),
		"freq_rows":   spectrum.FreqBins,
		"time_frames": spectrum.TimeFrames,
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Restrict + Bin
	mask, err := Restrict(spectrum.Frequencies(), cfg.LowCutFreq, cfg.HighCutFreq)
	if err != nil {
		logger.Error(err, "Frequency band selects no rows")
		return nil, err
	}
	edges := BinEdges(len(mask), cfg.NumFrequencyBins, cfg.LogFrequency)
	binned := Bin(spectrum.Magnitude, mask, edges)

	fields := logging.Fields{
		"stage":         StageBinned.String(),
		"band_rows":     len(mask),
		"bins":          cfg.NumFrequencyBins,
		"log_frequency": cfg.LogFrequency,
	}
	if empty := countEmptyBins(edges); empty > 0 {
		fields["empty_bins"] = empty
		logger.Warn("Some frequency bins cover no rows and will be zero", fields)
	} else {
		logger.Debug("Stage complete", fields)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Smooth
	smoothed, err := Smooth(binned, cfg.Sigma, e.workers)
	if err != nil {
		return nil, fmt.Errorf("smoothing failed: %w", err)
	}
	logger.Debug("Stage complete", logging.Fields{
		"stage": StageSmoothed.String(),
		"sigma": cfg.Sigma,
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Normalize/Scale
	normalized, err := Normalize(smoothed, cfg.NormalizationMode)
	if err != nil {
		return nil, err
	}
	ClipScale(normalized, cfg.ScalingFactor)
	logger.Debug("Stage complete", logging.Fields{
		"stage":          StageNormalized.String(),
		"mode":           string(cfg.NormalizationMode),
		"scaling_factor": cfg.ScalingFactor,
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Finalize
	output := Finalize(normalized, cfg.RoundDecimals)
	for _, frame := range output {
		if !common.IsFinite(frame) {
			return nil, fmt.Errorf("non-finite value in output frame")
		}
	}

	logger.Info("Frames extracted", logging.Fields{
		"stage":    StageFinalized.String(),
		"frames":   output.Frames(),
		"bins":     output.Bins(),
		"duration": time.Since(began).String(),
	})

	return output, nil
}

// Process is a convenience wrapper building a one-off Extractor for cfg.
func Process(ctx context.Context, segment []float64, sampleRate int, cfg Config, opts ...Option) (OutputMatrix, error) {
	e, err := NewExtractor(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return e.Process(ctx, segment, sampleRate)
}

func countEmptyBins(edges []int) int {
	n := 0
	for i := 1; i < len(edges); i++ {
		if edges[i] == edges[i-1] {
			n++
		}
	}
	return n
}
