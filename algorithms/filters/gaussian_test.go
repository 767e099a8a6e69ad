package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestGaussianMatchesScipyReference(t *testing.T) {
	// scipy.ndimage.gaussian_filter1d([1, 2, 3, 4, 5], 1)
	want := []float64{1.42704095, 2.06782203, 3.0, 3.93217797, 4.57295905}

	got := NewGaussianSmoother(1).Smooth(nil, []float64{1, 2, 3, 4, 5})
	assert.InDeltaSlice(t, want, got, 1e-6)
}

func TestGaussianKernel(t *testing.T) {
	g := NewGaussianSmoother(2)
	assert.Equal(t, 8, g.Radius())
	assert.Equal(t, 2.0, g.Sigma())

	k := g.Kernel()
	require.Len(t, k, 17)
	assert.InDelta(t, 1.0, floats.Sum(k), 1e-12)
	for i := range k {
		assert.InDelta(t, k[i], k[len(k)-1-i], 1e-15)
	}
	assert.Equal(t, 8, floats.MaxIdx(k))
}

func TestGaussianIdentity(t *testing.T) {
	for _, sigma := range []float64{0, -1} {
		g := NewGaussianSmoother(sigma)
		assert.True(t, g.IsIdentity())

		src := []float64{3, 1, 4, 1, 5}
		assert.Equal(t, src, g.Smooth(nil, src))
	}
}

func TestGaussianPreservesConstantsAndMass(t *testing.T) {
	g := NewGaussianSmoother(1.5)

	constant := []float64{0.7, 0.7, 0.7, 0.7, 0.7, 0.7, 0.7, 0.7}
	assert.InDeltaSlice(t, constant, g.Smooth(nil, constant), 1e-12)

	impulse := make([]float64, 32)
	impulse[16] = 1
	out := g.Smooth(nil, impulse)
	assert.InDelta(t, 1.0, floats.Sum(out), 1e-12)
	assert.Equal(t, 16, floats.MaxIdx(out))
}

func TestGaussianWideKernelOnShortSignal(t *testing.T) {
	// radius far larger than the signal exercises repeated reflection
	out := NewGaussianSmoother(10).Smooth(nil, []float64{1, 0})
	require.Len(t, out, 2)
	for _, v := range out {
		assert.False(t, v < 0 || v > 1)
	}
}

func TestReflectIndex(t *testing.T) {
	tests := []struct{ i, n, want int }{
		{0, 4, 0},
		{3, 4, 3},
		{-1, 4, 0},
		{-2, 4, 1},
		{4, 4, 3},
		{5, 4, 2},
		{-5, 4, 3},
		{9, 4, 1},
		{-3, 1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, reflectIndex(tt.i, tt.n), "i=%d n=%d", tt.i, tt.n)
	}
}

func TestSmoothReusesDestination(t *testing.T) {
	g := NewGaussianSmoother(1)
	dst := make([]float64, 0, 16)
	out := g.Smooth(dst, []float64{1, 2, 3})
	assert.Len(t, out, 3)
	assert.Equal(t, 16, cap(out))
}
