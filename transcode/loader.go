package transcode

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/RyanBlaney/sonido-frames/logging"
)

// LoaderConfig controls how input files are decoded.
type LoaderConfig struct {
	// TargetSampleRate resamples decoded audio when > 0; 0 keeps the
	// native rate.
	TargetSampleRate int `json:"target_sample_rate" yaml:"target_sample_rate"`
	// FFmpegPath enables the ffmpeg fallback for extensions without a
	// built-in decoder. Empty disables it.
	FFmpegPath  string        `json:"ffmpeg_path" yaml:"ffmpeg_path"`
	FFprobePath string        `json:"ffprobe_path" yaml:"ffprobe_path"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
}

// DefaultLoaderConfig keeps the native sample rate and falls back to
// ffmpeg/ffprobe from PATH.
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		TargetSampleRate: 0,
		FFmpegPath:       "ffmpeg",
		FFprobePath:      "ffprobe",
		Timeout:          30 * time.Second,
	}
}

// Loader reads audio files into mono waveforms.
type Loader struct {
	config   LoaderConfig
	registry *Registry
	logger   logging.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the loader's logger.
func WithLogger(logger logging.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logging.OrNoOp(logger) }
}

// WithRegistry replaces the built-in decoder registry.
func WithRegistry(r *Registry) LoaderOption {
	return func(l *Loader) { l.registry = r }
}

// NewLoader creates a Loader using the built-in decoders.
func NewLoader(config LoaderConfig, opts ...LoaderOption) *Loader {
	l := &Loader{
		config:   config,
		registry: DefaultRegistry(),
		logger:   &logging.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load decodes path, mixes it down to mono and resamples it when a target
// rate is configured. Every failure matches ErrUnreadableAudio.
func (l *Loader) Load(ctx context.Context, path string) (*AudioData, error) {
	logger := l.logger.WithContext(ctx).WithFields(logging.Fields{
		"component": "audio_loader",
		"function":  "Load",
		"path":      path,
	})

	data, err := l.decode(ctx, path)
	if err != nil {
		logger.Error(err, "Failed to decode audio file")
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadableAudio, path, err)
	}
	if data.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %s: invalid sample rate %d", ErrUnreadableAudio, path, data.SampleRate)
	}
	if len(data.PCM) == 0 {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadableAudio, path, ErrNoSamples)
	}

	logger.Debug("Audio decoded", logging.Fields{
		"format":      data.Format,
		"sample_rate": data.SampleRate,
		"channels":    data.Channels,
		"samples":     len(data.PCM),
	})

	mono, err := MixToMono(data.PCM, data.Channels)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadableAudio, path, err)
	}
	data.PCM = mono
	data.Channels = 1

	if target := l.config.TargetSampleRate; target > 0 && target != data.SampleRate {
		resampled, err := Resample(data.PCM, data.SampleRate, target)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrUnreadableAudio, path, err)
		}
		logger.Debug("Audio resampled", logging.Fields{
			"from_rate": data.SampleRate,
			"to_rate":   target,
			"samples":   len(resampled),
		})
		data.PCM = resampled
		data.SampleRate = target
	}

	data.Source = path
	data.updateDuration()

	logger.Info("Audio loaded", logging.Fields{
		"sample_rate": data.SampleRate,
		"duration":    data.Duration.Seconds(),
	})

	return data, nil
}

func (l *Loader) decode(ctx context.Context, path string) (*AudioData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if dec, ok := l.registry.Lookup(path); ok {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return dec.Decode(f)
	}

	ff := &FFmpegDecoder{
		FFmpegPath:  l.config.FFmpegPath,
		FFprobePath: l.config.FFprobePath,
		Timeout:     l.config.Timeout,
		logger:      l.logger,
	}
	if !ff.Available() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return ff.DecodeFile(ctx, path)
}
