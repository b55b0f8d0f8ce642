// Package response holds the detector response matrix: the sparse-in-spirit
// redistribution of true photon energy into instrument channels, plus the
// energy bounds of both axes. The grouping core treats channels as opaque
// indices; this package is what gives those indices physical energies, and
// with them a contiguously-binned domain.
package response

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-xspec/internal/numeric"
)

// binEpsilon is loose enough for single-precision energies round-tripped
// through file formats.
const binEpsilon = 1e-6

var (
	ErrShapeMismatch = errors.New("response: matrix shape does not match bin and channel counts")
	ErrNotContiguous = errors.New("response: energy bins are not contiguous")
	ErrEmpty         = errors.New("response: at least one energy bin and one channel required")
	ErrFluxLength    = errors.New("response: flux length does not match energy bin count")
)

// Matrix maps true-energy bins to instrument channels.
//
// Rows index energy bins, columns index channels. EnergyLow/EnergyHigh bound
// each energy bin; ChannelLow/ChannelHigh bound the energy covered by each
// channel (the EBOUNDS extension in OGIP files).
type Matrix struct {
	energyLow  []float64
	energyHigh []float64
	channels   []int
	chanLow    []float64
	chanHigh   []float64
	m          *mat.Dense
}

// New validates the axes against the redistribution matrix and wraps them.
// All slices are retained, not copied; the caller hands over ownership.
func New(energyLow, energyHigh []float64, channels []int, chanLow, chanHigh []float64, m *mat.Dense) (*Matrix, error) {
	bins := len(energyLow)
	nchan := len(channels)
	if bins == 0 || nchan == 0 {
		return nil, ErrEmpty
	}
	if len(energyHigh) != bins {
		return nil, fmt.Errorf("%w: energy low=%d high=%d", ErrShapeMismatch, bins, len(energyHigh))
	}
	if len(chanLow) != nchan || len(chanHigh) != nchan {
		return nil, fmt.Errorf("%w: channels=%d bounds=%d/%d", ErrShapeMismatch, nchan, len(chanLow), len(chanHigh))
	}
	r, c := m.Dims()
	if r != bins || c != nchan {
		return nil, fmt.Errorf("%w: matrix %dx%d, want %dx%d", ErrShapeMismatch, r, c, bins, nchan)
	}
	return &Matrix{
		energyLow:  energyLow,
		energyHigh: energyHigh,
		channels:   channels,
		chanLow:    chanLow,
		chanHigh:   chanHigh,
		m:          m,
	}, nil
}

// Bins returns the number of energy bins.
func (r *Matrix) Bins() int { return len(r.energyLow) }

// Channels returns the number of instrument channels.
func (r *Matrix) Channels() int { return len(r.channels) }

// ChannelIDs returns a copy of the channel id column.
func (r *Matrix) ChannelIDs() []int {
	out := make([]int, len(r.channels))
	copy(out, r.channels)
	return out
}

// Fold redistributes a model flux, evaluated per energy bin, into channel
// space. The result is a fresh array of one value per channel.
func (r *Matrix) Fold(flux []float64) ([]float64, error) {
	if len(flux) != r.Bins() {
		return nil, fmt.Errorf("%w: flux=%d bins=%d", ErrFluxLength, len(flux), r.Bins())
	}
	out := mat.NewVecDense(r.Channels(), nil)
	out.MulVec(r.m.T(), mat.NewVecDense(len(flux), flux))
	folded := make([]float64, r.Channels())
	copy(folded, out.RawVector().Data)
	return folded, nil
}

// BinEdges returns the contiguous energy-bin edge array, length Bins()+1.
func (r *Matrix) BinEdges() ([]float64, error) {
	return edges(r.energyLow, r.energyHigh)
}

// ChannelEdges returns the contiguous channel energy-bound edge array,
// length Channels()+1.
func (r *Matrix) ChannelEdges() ([]float64, error) {
	return edges(r.chanLow, r.chanHigh)
}

// edges collapses per-bin low/high bounds into a shared edge array, failing
// when a bin's high bound does not meet the next bin's low bound.
func edges(low, high []float64) ([]float64, error) {
	out := make([]float64, len(low)+1)
	for i := range low {
		if i > 0 && !numeric.NearlyEqual(high[i-1], low[i], binEpsilon) {
			return nil, fmt.Errorf("%w: bin %d ends at %g, bin %d starts at %g",
				ErrNotContiguous, i-1, high[i-1], i, low[i])
		}
		out[i] = low[i]
	}
	out[len(low)] = high[len(high)-1]
	return out, nil
}
