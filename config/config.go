// Package config loads extraction jobs from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/RyanBlaney/sonido-frames/algorithms/temporal"
	"github.com/RyanBlaney/sonido-frames/frames"
	"github.com/RyanBlaney/sonido-frames/logging"
	"github.com/RyanBlaney/sonido-frames/sink"
	"github.com/RyanBlaney/sonido-frames/transcode"
)

// ErrInvalidJob is returned by Job.Validate.
var ErrInvalidJob = errors.New("invalid job")

// Job describes one extraction run: where to read audio, which part of it,
// how to process it and where to write the frames.
type Job struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Format string `yaml:"format,omitempty"`

	// Seconds into the input. EndTime <= 0 means the end of the file.
	StartTime float64 `yaml:"start_time"`
	EndTime   float64 `yaml:"end_time"`

	TargetSampleRate int    `yaml:"target_sample_rate,omitempty"`
	FFmpegPath       string `yaml:"ffmpeg_path,omitempty"`
	FFprobePath      string `yaml:"ffprobe_path,omitempty"`
	LogLevel         string `yaml:"log_level,omitempty"`

	Pipeline    frames.Config               `yaml:"pipeline"`
	Compression *temporal.CompressionParams `yaml:"compression,omitempty"`
}

// Default returns a job with the default pipeline writing JSON to stdout.
func Default() *Job {
	loader := transcode.DefaultLoaderConfig()
	return &Job{
		Output:      sink.Stdout,
		FFmpegPath:  loader.FFmpegPath,
		FFprobePath: loader.FFprobePath,
		LogLevel:    "info",
		Pipeline:    frames.DefaultConfig(),
	}
}

// Load reads a YAML job file. Keys absent from the file keep their
// defaults.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML job data over the defaults.
func Parse(data []byte) (*Job, error) {
	job := Default()
	if err := yaml.Unmarshal(data, job); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}
	return job, nil
}

// Save writes the job as YAML.
func (j *Job) Save(path string) error {
	data, err := yaml.Marshal(j)
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write job file: %w", err)
	}
	return nil
}

// Validate checks everything that can be checked before the input is read.
func (j *Job) Validate() error {
	if j.Input == "" {
		return fmt.Errorf("%w: input is required", ErrInvalidJob)
	}
	if j.Output == "" {
		return fmt.Errorf("%w: output is required", ErrInvalidJob)
	}
	if j.Format != "" {
		if _, err := sink.ParseFormat(j.Format); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidJob, err)
		}
	}
	if j.StartTime < 0 {
		return fmt.Errorf("%w: start_time must be >= 0, got %g", ErrInvalidJob, j.StartTime)
	}
	if j.EndTime > 0 && j.EndTime <= j.StartTime {
		return fmt.Errorf("%w: end_time %g must be after start_time %g", ErrInvalidJob, j.EndTime, j.StartTime)
	}
	if j.TargetSampleRate < 0 {
		return fmt.Errorf("%w: target_sample_rate must be >= 0, got %d", ErrInvalidJob, j.TargetSampleRate)
	}
	if _, err := logging.ParseLevel(j.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJob, err)
	}
	if err := j.FramesConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJob, err)
	}
	return nil
}

// FramesConfig returns the pipeline configuration with the job's
// compression settings attached.
func (j *Job) FramesConfig() frames.Config {
	cfg := j.Pipeline
	if j.Compression != nil {
		c := *j.Compression
		cfg.Compression = &c
	}
	return cfg
}

// LoaderConfig returns the audio loader configuration.
func (j *Job) LoaderConfig() transcode.LoaderConfig {
	cfg := transcode.DefaultLoaderConfig()
	cfg.TargetSampleRate = j.TargetSampleRate
	cfg.FFmpegPath = j.FFmpegPath
	cfg.FFprobePath = j.FFprobePath
	return cfg
}

// TimeRange resolves the crop boundaries against the source duration in
// seconds.
func (j *Job) TimeRange(duration float64) (start, end float64) {
	end = j.EndTime
	if end <= 0 {
		end = duration
	}
	return j.StartTime, end
}
