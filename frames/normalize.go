package frames

import (
	"fmt"

	"github.com/RyanBlaney/sonido-frames/algorithms/common"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Normalize returns a copy of m scaled according to mode:
//
//	global:  m / (max(m) + GlobalEpsilon)
//	per_bin: row b / (max(row b) + PerBinEpsilon)
//	none:    m
//
// The epsilons keep all-zero input at zero instead of dividing by zero.
func Normalize(m *mat.Dense, mode NormalizationMode) (*mat.Dense, error) {
	out := mat.DenseCopyOf(m)

	switch mode {
	case NormalizeNone, "":
	case NormalizeGlobal:
		out.Scale(1/(mat.Max(out)+GlobalEpsilon), out)
	case NormalizePerBin:
		rows, _ := out.Dims()
		for b := range rows {
			row := out.RawRowView(b)
			floats.Scale(1/(floats.Max(row)+PerBinEpsilon), row)
		}
	default:
		return nil, fmt.Errorf("%w: unknown normalization mode %q", ErrInvalidConfig, mode)
	}

	return out, nil
}

// ClipScale bounds m to [0, 1], multiplies by factor and bounds it again,
// in place. Clipping first means amplification can only push values toward
// 1, never past it.
func ClipScale(m *mat.Dense, factor float64) {
	rows, _ := m.Dims()
	for b := range rows {
		row := m.RawRowView(b)
		common.ClipInPlace(row, 0, 1)
		floats.Scale(factor, row)
		common.ClipInPlace(row, 0, 1)
	}
}
