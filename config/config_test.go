package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/RyanBlaney/sonido-frames/frames"
	"github.com/RyanBlaney/sonido-frames/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobYAML = `
input: song.wav
output: out/frames.json
start_time: 30
end_time: 37
target_sample_rate: 22050
log_level: debug
pipeline:
  low_cut_freq: 300
  num_frequency_bins: 64
  normalization_mode: per_bin
  log_frequency: true
compression:
  threshold: 0.05
  ratio: 3
  gain: 2
`

func TestParseOverlaysDefaults(t *testing.T) {
	job, err := Parse([]byte(jobYAML))
	require.NoError(t, err)

	assert.Equal(t, "song.wav", job.Input)
	assert.Equal(t, "out/frames.json", job.Output)
	assert.Equal(t, 30.0, job.StartTime)
	assert.Equal(t, 37.0, job.EndTime)
	assert.Equal(t, 22050, job.TargetSampleRate)
	assert.Equal(t, "ffmpeg", job.FFmpegPath)

	defaults := frames.DefaultConfig()
	assert.Equal(t, 300.0, job.Pipeline.LowCutFreq)
	assert.Equal(t, defaults.HighCutFreq, job.Pipeline.HighCutFreq)
	assert.Equal(t, 64, job.Pipeline.NumFrequencyBins)
	assert.Equal(t, frames.NormalizePerBin, job.Pipeline.NormalizationMode)
	assert.True(t, job.Pipeline.LogFrequency)
	assert.Equal(t, defaults.HopLength, job.Pipeline.HopLength)
	assert.Equal(t, defaults.Sigma, job.Pipeline.Sigma)

	require.NoError(t, job.Validate())

	cfg := job.FramesConfig()
	require.NotNil(t, cfg.Compression)
	assert.Equal(t, 0.05, cfg.Compression.Threshold)
	assert.Equal(t, 3.0, cfg.Compression.Ratio)
	assert.Equal(t, 2.0, cfg.Compression.Gain)
	assert.Nil(t, job.Pipeline.Compression, "FramesConfig must not alias the job")

	loader := job.LoaderConfig()
	assert.Equal(t, 22050, loader.TargetSampleRate)
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(jobYAML), 0o644))

	job, err := Load(path)
	require.NoError(t, err)

	copyPath := filepath.Join(dir, "copy.yaml")
	require.NoError(t, job.Save(copyPath))

	again, err := Load(copyPath)
	require.NoError(t, err)
	assert.Equal(t, job, again)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("pipeline: [1, 2"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	job := Default()
	assert.Equal(t, sink.Stdout, job.Output)
	assert.Equal(t, frames.DefaultConfig(), job.Pipeline)
	assert.ErrorIs(t, job.Validate(), ErrInvalidJob, "input is required")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Job)
	}{
		{"no output", func(j *Job) { j.Output = "" }},
		{"bad format", func(j *Job) { j.Format = "csv" }},
		{"negative start", func(j *Job) { j.StartTime = -1 }},
		{"end before start", func(j *Job) { j.StartTime, j.EndTime = 5, 2 }},
		{"end equals start", func(j *Job) { j.StartTime, j.EndTime = 5, 5 }},
		{"negative rate", func(j *Job) { j.TargetSampleRate = -8000 }},
		{"bad log level", func(j *Job) { j.LogLevel = "loud" }},
		{"bad pipeline", func(j *Job) { j.Pipeline.NumFrequencyBins = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := Default()
			job.Input = "in.wav"
			tt.mutate(job)
			assert.ErrorIs(t, job.Validate(), ErrInvalidJob)
		})
	}

	job := Default()
	job.Input = "in.wav"
	job.Pipeline.NumFrequencyBins = 0
	assert.ErrorIs(t, job.Validate(), frames.ErrInvalidConfig)
}

func TestTimeRange(t *testing.T) {
	job := Default()
	job.StartTime = 2

	start, end := job.TimeRange(10)
	assert.Equal(t, 2.0, start)
	assert.Equal(t, 10.0, end)

	job.EndTime = 7
	_, end = job.TimeRange(10)
	assert.Equal(t, 7.0, end)
}
