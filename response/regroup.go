package response

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-xspec/grouping"
)

// RegroupChannels returns a new Matrix with the channel axis collapsed by
// the given grouping flags, summing redistribution columns within each
// group. The receiver is unchanged. Each output channel keeps the id and
// lower energy bound of its group's first channel and the upper bound of its
// last, so channel edges stay contiguous whenever the input's were.
func (r *Matrix) RegroupChannels(flags []int) (*Matrix, error) {
	nchan := r.Channels()
	if len(flags) != nchan {
		return nil, fmt.Errorf("%w: flags=%d channels=%d", ErrShapeMismatch, len(flags), nchan)
	}

	bins := r.Bins()
	n := grouping.Count(flags)
	m := mat.NewDense(bins, n, nil)
	channels := make([]int, n)
	chanLow := make([]float64, n)
	chanHigh := make([]float64, n)

	for g := range grouping.Groups(flags) {
		k, lo, hi := g.Index-1, g.Start-1, g.End-1
		channels[k] = r.channels[lo]
		chanLow[k] = r.chanLow[lo]
		chanHigh[k] = r.chanHigh[hi]
		for e := 0; e < bins; e++ {
			sum := 0.0
			for c := lo; c <= hi; c++ {
				sum += r.m.At(e, c)
			}
			m.Set(e, k, sum)
		}
	}

	return &Matrix{
		energyLow:  r.energyLow,
		energyHigh: r.energyHigh,
		channels:   channels,
		chanLow:    chanLow,
		chanHigh:   chanHigh,
		m:          m,
	}, nil
}
