package transcode

import (
	"time"
)

// AudioData is a decoded waveform. PCM holds Channels interleaved channels
// of samples in [-1, 1]; after Loader.Load it is always mono.
type AudioData struct {
	PCM        []float64     `json:"-"`
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"`
	Duration   time.Duration `json:"duration"`
	Format     string        `json:"format"`
	Source     string        `json:"source,omitempty"`
}

// Frames returns the number of samples per channel.
func (a *AudioData) Frames() int {
	if a.Channels <= 0 {
		return 0
	}
	return len(a.PCM) / a.Channels
}

func (a *AudioData) updateDuration() {
	if a.SampleRate <= 0 {
		a.Duration = 0
		return
	}
	a.Duration = time.Duration(a.Frames()) * time.Second / time.Duration(a.SampleRate)
}
