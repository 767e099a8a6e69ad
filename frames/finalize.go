package frames

import (
	"fmt"

	"github.com/RyanBlaney/sonido-frames/algorithms/common"
	"gonum.org/v1/gonum/mat"
)

// OutputMatrix is the time-major result of the pipeline: OutputMatrix[t][b]
// is the value of frequency bin b at time step t.
type OutputMatrix [][]float64

// Frames returns the number of time steps.
func (o OutputMatrix) Frames() int {
	return len(o)
}

// Bins returns the number of values per frame, or 0 for an empty matrix.
func (o OutputMatrix) Bins() int {
	if len(o) == 0 {
		return 0
	}
	return len(o[0])
}

// Validate checks that every frame has the same length.
func (o OutputMatrix) Validate() error {
	bins := o.Bins()
	for t, frame := range o {
		if len(frame) != bins {
			return fmt.Errorf("frame %d has %d bins, want %d", t, len(frame), bins)
		}
	}
	return nil
}

// Round returns a copy of o with every value rounded half-to-even to the
// given number of decimals.
func (o OutputMatrix) Round(decimals int) OutputMatrix {
	out := make(OutputMatrix, len(o))
	for t, frame := range o {
		out[t] = make([]float64, len(frame))
		for b, v := range frame {
			out[t][b] = common.RoundHalfEven(v, decimals)
		}
	}
	return out
}

// Finalize rounds every entry of the (bin, time) matrix m half-to-even to
// decimals places and transposes it into a time-major OutputMatrix.
func Finalize(m *mat.Dense, decimals int) OutputMatrix {
	bins, steps := m.Dims()

	out := make(OutputMatrix, steps)
	for t := range steps {
		frame := make([]float64, bins)
		for b := range bins {
			frame[b] = common.RoundHalfEven(m.At(b, t), decimals)
		}
		out[t] = frame
	}
	return out
}
