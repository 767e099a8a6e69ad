package spectral

import (
	"github.com/mjibson/go-dsp/fft"
)

// FFT provides Fast Fourier Transform functionality backed by mjibson/go-dsp.
type FFT struct{}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes the FFT of a real signal and returns the full complex
// spectrum (len(x) bins). go-dsp handles non-power-of-two sizes.
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fft.FFTReal(x)
}

// FrequencyAxis returns the center frequency in Hz of each one-sided FFT bin,
// k * sampleRate / windowSize for k = 0..windowSize/2.
func FrequencyAxis(sampleRate, windowSize int) []float64 {
	if windowSize <= 0 || sampleRate <= 0 {
		return nil
	}

	bins := windowSize/2 + 1
	freqs := make([]float64, bins)
	for k := range bins {
		freqs[k] = float64(k) * float64(sampleRate) / float64(windowSize)
	}
	return freqs
}
