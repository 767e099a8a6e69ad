package frames

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNormalizeGlobal(t *testing.T) {
	in := mat.NewDense(2, 2, []float64{0, 2, 1, 4})

	out, err := Normalize(in, NormalizeGlobal)
	require.NoError(t, err)

	d := 4 + GlobalEpsilon
	assert.InDeltaSlice(t, []float64{0, 2 / d, 1 / d, 4 / d}, out.RawMatrix().Data, 1e-15)
	assert.Less(t, mat.Max(out), 1.0)

	// input untouched
	assert.Equal(t, 4.0, in.At(1, 1))
}

func TestNormalizePerBin(t *testing.T) {
	in := mat.NewDense(2, 3, []float64{
		0, 2, 1,
		8, 4, 0,
	})

	out, err := Normalize(in, NormalizePerBin)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{0, 1, 0.5}, out.RawRowView(0), 1e-7)
	assert.InDeltaSlice(t, []float64{1, 0.5, 0}, out.RawRowView(1), 1e-7)
	for b := range 2 {
		for _, v := range out.RawRowView(b) {
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestNormalizeAllZero(t *testing.T) {
	in := mat.NewDense(3, 2, nil)

	for _, mode := range []NormalizationMode{NormalizeGlobal, NormalizePerBin, NormalizeNone} {
		out, err := Normalize(in, mode)
		require.NoError(t, err)
		assert.Equal(t, 0.0, mat.Max(out), "mode %s", mode)
	}
}

func TestNormalizeNonePassesThrough(t *testing.T) {
	in := mat.NewDense(1, 3, []float64{-1, 0.5, 7})

	out, err := Normalize(in, NormalizeNone)
	require.NoError(t, err)
	assert.True(t, mat.Equal(in, out))
}

func TestNormalizeUnknownMode(t *testing.T) {
	_, err := Normalize(mat.NewDense(1, 1, nil), NormalizationMode("max"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestClipScale(t *testing.T) {
	m := mat.NewDense(1, 5, []float64{-0.5, 0.3, 0.8, 1.7, 0})

	ClipScale(m, 2)
	assert.InDeltaSlice(t, []float64{0, 0.6, 1, 1, 0}, m.RawRowView(0), 1e-15)

	m = mat.NewDense(1, 3, []float64{-2, 0.5, 3})
	ClipScale(m, 0)
	assert.Equal(t, []float64{0, 0, 0}, m.RawRowView(0))
}
