package spectral

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/RyanBlaney/sonido-frames/logging"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"
)

// STFT provides Short-Time Fourier Transform functionality.
//
// With centering enabled (the default) the signal is zero-padded by
// windowSize/2 on both sides before framing, so frame t is centered on
// sample t*hopSize. This matches librosa.stft(center=True, pad_mode="constant").
type STFT struct {
	fft     *FFT
	logger  logging.Logger
	center  bool
	workers int
}

// STFTOption configures an STFT.
type STFTOption func(*STFT)

// WithCenter toggles centered framing.
func WithCenter(center bool) STFTOption {
	return func(s *STFT) { s.center = center }
}

// WithWorkers fixes the number of FFT workers. Values below 1 select an
// automatic count based on the workload.
func WithWorkers(n int) STFTOption {
	return func(s *STFT) { s.workers = n }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger logging.Logger) STFTOption {
	return func(s *STFT) { s.logger = logging.OrNoOp(logger) }
}

// STFTResult holds the magnitude spectrogram of an STFT analysis.
type STFTResult struct {
	// Magnitude is indexed (frequency bin, time frame).
	Magnitude      *mat.Dense `json:"-"`
	TimeFrames     int        `json:"time_frames"`
	FreqBins       int        `json:"freq_bins"`
	SampleRate     int        `json:"sample_rate"`
	WindowSize     int        `json:"window_size"`
	HopSize        int        `json:"hop_size"`
	Centered       bool       `json:"centered"`
	FreqResolution float64    `json:"freq_resolution"` // Hz per bin
	TimeResolution float64    `json:"time_resolution"` // seconds per frame
}

// Frequencies returns the frequency axis matching the rows of Magnitude.
func (r *STFTResult) Frequencies() []float64 {
	return FrequencyAxis(r.SampleRate, r.WindowSize)
}

// Window interface for windowing functions
type Window interface {
	ApplyInPlace(signal []float64) error
	Size() int
}

// NewSTFT creates a new STFT calculator
func NewSTFT(opts ...STFTOption) *STFT {
	s := &STFT{
		fft:    NewFFT(),
		logger: &logging.NoOpLogger{},
		center: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FrameCount returns the number of analysis frames produced for a signal of
// the given length, or 0 if the signal is shorter than one window.
func (s *STFT) FrameCount(signalLength, windowSize, hopSize int) int {
	if windowSize <= 0 || hopSize <= 0 || signalLength < windowSize {
		return 0
	}
	if s.center {
		signalLength += 2 * (windowSize / 2)
	}
	return (signalLength-windowSize)/hopSize + 1
}

// Compute computes the magnitude STFT with parallel processing.
// window may be nil for a rectangular window.
func (s *STFT) Compute(signal []float64, windowSize, hopSize, sampleRate int, window Window) (*STFTResult, error) {
	if len(signal) == 0 {
		return nil, ErrEmptySignal
	}

	if windowSize <= 0 {
		return nil, ErrInvalidWindow
	}

	if hopSize <= 0 {
		return nil, ErrInvalidHop
	}

	if len(signal) < windowSize {
		return nil, fmt.Errorf("%w: %d samples, window %d", ErrSignalTooShort, len(signal), windowSize)
	}

	if window != nil && window.Size() != windowSize {
		return nil, fmt.Errorf("%w: %d != %d", ErrWindowSizeMismatch, window.Size(), windowSize)
	}

	framed := signal
	if s.center {
		pad := windowSize / 2
		framed = make([]float64, len(signal)+2*pad)
		copy(framed[pad:], signal)
	}

	numFrames := s.FrameCount(len(signal), windowSize, hopSize)

	// positive frequencies only, DC through Nyquist
	freqBins := windowSize/2 + 1

	// row-major (freq, time); each frame owns one column
	data := make([]float64, freqBins*numFrames)

	numWorkers := s.workerCount(numFrames)

	logger := s.logger.WithFields(logging.Fields{
		"function":    "STFT.Compute",
		"window_size": windowSize,
		"hop_size":    hopSize,
	})
	logger.Debug("Computing STFT", logging.Fields{
		"signal_length": len(signal),
		"frames":        numFrames,
		"workers":       numWorkers,
		"centered":      s.center,
	})

	jobs := make(chan int, numFrames)
	errs := make(chan error, numWorkers)

	var wg sync.WaitGroup

	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Reuse buffers for this worker
			frameBuffer := make([]float64, windowSize)
			re := make([]float64, freqBins)
			im := make([]float64, freqBins)
			mag := make([]float64, freqBins)

			for frameIdx := range jobs {
				start := frameIdx * hopSize
				copy(frameBuffer, framed[start:start+windowSize])

				if window != nil {
					if err := window.ApplyInPlace(frameBuffer); err != nil {
						errs <- fmt.Errorf("frame %d: %w", frameIdx, err)
						return
					}
				}

				spectrum := s.fft.Compute(frameBuffer)
				for k := range freqBins {
					re[k] = real(spectrum[k])
					im[k] = imag(spectrum[k])
				}
				vecmath.Magnitude(mag, re, im)

				for k, v := range mag {
					data[k*numFrames+frameIdx] = v
				}
			}
		}()
	}

	for frameIdx := range numFrames {
		jobs <- frameIdx
	}
	close(jobs)

	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return nil, err
	}

	return &STFTResult{
		Magnitude:      mat.NewDense(freqBins, numFrames, data),
		TimeFrames:     numFrames,
		FreqBins:       freqBins,
		SampleRate:     sampleRate,
		WindowSize:     windowSize,
		HopSize:        hopSize,
		Centered:       s.center,
		FreqResolution: float64(sampleRate) / float64(windowSize),
		TimeResolution: float64(hopSize) / float64(sampleRate),
	}, nil
}

// workerCount determines the number of workers based on workload
func (s *STFT) workerCount(numFrames int) int {
	if s.workers > 0 {
		return max(1, min(s.workers, numFrames))
	}

	numCPU := runtime.NumCPU()

	// For small workloads, don't over-parallelize
	if numFrames < 100 {
		return max(1, min(numCPU/2, numFrames))
	}

	// For medium workloads, use most CPUs
	if numFrames < 1000 {
		return min(numCPU, 8)
	}

	return numCPU
}
