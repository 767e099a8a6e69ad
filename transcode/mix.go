package transcode

import "fmt"

// MixToMono averages interleaved channels into a single channel. Trailing
// samples that do not form a whole frame are dropped. Mono input is
// returned unchanged.
func MixToMono(interleaved []float64, channels int) ([]float64, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count: %d", channels)
	}
	if channels == 1 {
		return interleaved, nil
	}

	frames := len(interleaved) / channels
	mono := make([]float64, frames)
	inv := 1.0 / float64(channels)

	switch channels {
	case 2:
		for f := range frames {
			idx := f << 1
			mono[f] = (interleaved[idx] + interleaved[idx+1]) * 0.5
		}
	default:
		for f := range frames {
			sum := 0.0
			base := f * channels
			for c := range channels {
				sum += interleaved[base+c]
			}
			mono[f] = sum * inv
		}
	}

	return mono, nil
}
