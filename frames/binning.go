package frames

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// BandMask lists the rows of a magnitude matrix whose frequency lies inside
// the analysis band, in ascending order.
type BandMask []int

// Restrict selects the rows of freqs inside the closed band [low, high].
// A band of zero or negative width selects nothing.
func Restrict(freqs []float64, low, high float64) (BandMask, error) {
	if len(freqs) == 0 || !(high > low) {
		return nil, emptyBand(freqs, low, high)
	}

	var mask BandMask
	for i, f := range freqs {
		if f >= low && f <= high {
			mask = append(mask, i)
		}
	}

	if len(mask) == 0 {
		return nil, emptyBand(freqs, low, high)
	}
	return mask, nil
}

func emptyBand(freqs []float64, low, high float64) error {
	e := &EmptyBandError{Low: low, High: high}
	if len(freqs) > 0 {
		e.AxisMin = floats.Min(freqs)
		e.AxisMax = floats.Max(freqs)
	}
	return e
}

// edgeTolerance absorbs floating-point error before truncating a
// logarithmic edge, so that e.g. 1000^(1/3) lands on 10 rather than 9.
const edgeTolerance = 1e-9

// BinEdges partitions the restricted rows [0, rows) into numBins contiguous ranges.
// It returns numBins+1 non-decreasing edges with edges[0] = 0 and
// edges[numBins] = rows; bin i covers [edges[i], edges[i+1]).
//
// Linear edges are floor(rows*i/numBins). Logarithmic edges follow
// floor(rows^(i/numBins)), the log-spaced progression from row 1 to row
// rows, with the first edge pinned to 0 so that row 0 is covered. When rows is
// small relative to numBins the low logarithmic bins can be empty.
func BinEdges(rows, numBins int, logarithmic bool) []int {
	if numBins <= 0 {
		return nil
	}

	edges := make([]int, numBins+1)
	if rows <= 0 {
		return edges
	}

	for i := 1; i < numBins; i++ {
		var e int
		if logarithmic {
			e = int(math.Pow(float64(rows), float64(i)/float64(numBins)) + edgeTolerance)
		} else {
			e = rows * i / numBins
		}
		edges[i] = min(max(e, edges[i-1]), rows)
	}
	edges[numBins] = rows

	return edges
}

// Bin averages the masked rows of magnitude into len(edges)-1 bins. Row r of
// the restricted matrix is magnitude row mask[r]. Bins covering no rows are 0.
// The result is indexed (bin, time).
func Bin(magnitude *mat.Dense, mask BandMask, edges []int) *mat.Dense {
	_, cols := magnitude.Dims()
	numBins := len(edges) - 1

	binned := mat.NewDense(numBins, cols, nil)

	for b := range numBins {
		lo, hi := edges[b], edges[b+1]
		if hi <= lo {
			continue
		}

		acc := binned.RawRowView(b)
		for r := lo; r < hi; r++ {
			floats.Add(acc, magnitude.RawRowView(mask[r]))
		}
		floats.Scale(1/float64(hi-lo), acc)
	}

	return binned
}
