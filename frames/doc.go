// Package frames converts a mono waveform into a sequence of fixed-width,
// normalized spectral frames.
//
// The pipeline runs in order: crop to a time range, short-time Fourier
// transform, restrict to a frequency band, average into NumFrequencyBins
// bins, Gaussian-smooth along the bin axis, normalize, clip and scale into
// [0, 1], and round. The result is an OutputMatrix indexed [time][bin].
//
//	e, err := frames.NewExtractor(frames.DefaultConfig(), frames.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	out, err := e.Run(ctx, samples, sampleRate, 30, 60)
package frames
