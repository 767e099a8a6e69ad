package filters

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// GaussianSmoother convolves a 1-D signal with a normalized Gaussian kernel.
//
// The kernel radius is int(truncate*sigma + 0.5) with truncate = 4, and
// samples beyond either edge are mirrored including the edge sample
// (d c b a | a b c d | d c b a). Both choices match
// scipy.ndimage.gaussian_filter1d defaults, so edge bins come out the same.
type GaussianSmoother struct {
	sigma  float64
	radius int
	kernel []float64
}

// DefaultTruncate is the number of standard deviations covered by the kernel.
const DefaultTruncate = 4.0

// NewGaussianSmoother creates a smoother with the given standard deviation
// (in samples). sigma <= 0 yields an identity smoother.
func NewGaussianSmoother(sigma float64) *GaussianSmoother {
	g := &GaussianSmoother{sigma: sigma}
	if sigma <= 0 {
		return g
	}

	g.radius = int(DefaultTruncate*sigma + 0.5)
	g.kernel = make([]float64, 2*g.radius+1)

	twoSigmaSq := 2 * sigma * sigma
	for i := -g.radius; i <= g.radius; i++ {
		x := float64(i)
		g.kernel[i+g.radius] = math.Exp(-x * x / twoSigmaSq)
	}
	floats.Scale(1/floats.Sum(g.kernel), g.kernel)

	return g
}

// Sigma returns the configured standard deviation.
func (g *GaussianSmoother) Sigma() float64 {
	return g.sigma
}

// Radius returns the kernel half-width in samples.
func (g *GaussianSmoother) Radius() int {
	return g.radius
}

// Kernel returns a copy of the normalized kernel weights.
func (g *GaussianSmoother) Kernel() []float64 {
	k := make([]float64, len(g.kernel))
	copy(k, g.kernel)
	return k
}

// IsIdentity reports whether Smooth returns its input unchanged.
func (g *GaussianSmoother) IsIdentity() bool {
	return g.kernel == nil
}

// Smooth writes the smoothed signal into dst and returns it. dst is
// allocated when nil or too short; it must not alias src.
func (g *GaussianSmoother) Smooth(dst, src []float64) []float64 {
	n := len(src)
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]

	if g.IsIdentity() || n == 0 {
		copy(dst, src)
		return dst
	}

	for i := range n {
		acc := 0.0
		for j, w := range g.kernel {
			acc += w * src[reflectIndex(i+j-g.radius, n)]
		}
		dst[i] = acc
	}

	return dst
}

// reflectIndex maps an out-of-range index into [0, n) by half-sample
// symmetric reflection, repeating as often as needed for wide kernels.
func reflectIndex(i, n int) int {
	if i >= 0 && i < n {
		return i
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}
