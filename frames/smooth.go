package frames

import (
	"runtime"

	"github.com/RyanBlaney/sonido-frames/algorithms/filters"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// minColumnsPerWorker keeps small matrices on a single goroutine.
const minColumnsPerWorker = 64

// Smooth applies a Gaussian of standard deviation sigma along the bin axis of
// every time column independently. sigma <= 0 returns an unchanged copy.
// Columns are split into contiguous ranges smoothed concurrently by at most
// workers goroutines (workers <= 0 selects runtime.NumCPU()).
func Smooth(binned *mat.Dense, sigma float64, workers int) (*mat.Dense, error) {
	smoother := filters.NewGaussianSmoother(sigma)

	smoothed := mat.DenseCopyOf(binned)
	if smoother.IsIdentity() {
		return smoothed, nil
	}

	rows, cols := binned.Dims()

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = max(1, min(workers, (cols+minColumnsPerWorker-1)/minColumnsPerWorker))
	chunk := (cols + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)

	for start := 0; start < cols; start += chunk {
		end := min(start+chunk, cols)
		g.Go(func() error {
			column := make([]float64, rows)
			out := make([]float64, rows)
			for t := start; t < end; t++ {
				mat.Col(column, t, binned)
				smoothed.SetCol(t, smoother.Smooth(out, column))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return smoothed, nil
}
