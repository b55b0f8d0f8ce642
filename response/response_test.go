package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// testMatrix builds a 3-bin, 3-channel response with contiguous axes.
func testMatrix(t *testing.T, m *mat.Dense) *Matrix {
	t.Helper()
	r, err := New(
		[]float64{1, 2, 3}, []float64{2, 3, 4},
		[]int{1, 2, 3},
		[]float64{1, 2, 3}, []float64{2, 3, 4},
		m,
	)
	require.NoError(t, err)
	return r
}

func identity3() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
}

func TestFoldIdentity(t *testing.T) {
	r := testMatrix(t, identity3())

	flux := []float64{5, 7, 9}
	out, err := r.Fold(flux)
	require.NoError(t, err)
	assert.Equal(t, flux, out)

	// The result is fresh, not aliased to the input.
	out[0] = 99
	assert.Equal(t, 5.0, flux[0])
}

func TestFoldRedistributes(t *testing.T) {
	// Half of each energy bin leaks into the neighbouring channel.
	m := mat.NewDense(3, 3, []float64{
		0.5, 0.5, 0,
		0, 0.5, 0.5,
		0, 0, 1,
	})
	r := testMatrix(t, m)

	out, err := r.Fold([]float64{2, 2, 2})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2, 3}, out, 1e-12)
}

func TestFoldLengthMismatch(t *testing.T) {
	r := testMatrix(t, identity3())
	_, err := r.Fold([]float64{1, 2})
	require.ErrorIs(t, err, ErrFluxLength)
}

func TestBinEdges(t *testing.T) {
	r := testMatrix(t, identity3())

	edges, err := r.BinEdges()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, edges)

	edges, err = r.ChannelEdges()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, edges)
	assert.Len(t, edges, r.Channels()+1)
}

func TestBinEdgesGap(t *testing.T) {
	r, err := New(
		[]float64{1, 2.5, 3}, []float64{2, 3, 4}, // bin 0 ends at 2, bin 1 starts at 2.5
		[]int{1, 2, 3},
		[]float64{1, 2, 3}, []float64{2, 3, 4},
		identity3(),
	)
	require.NoError(t, err)

	_, err = r.BinEdges()
	require.ErrorIs(t, err, ErrNotContiguous)
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil, nil, nil, nil, nil, identity3())
	require.ErrorIs(t, err, ErrEmpty)

	_, err = New(
		[]float64{1, 2}, []float64{2, 3},
		[]int{1, 2, 3},
		[]float64{1, 2, 3}, []float64{2, 3, 4},
		identity3(),
	)
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = New(
		[]float64{1, 2, 3}, []float64{2, 3, 4},
		[]int{1, 2, 3},
		[]float64{1, 2, 3}, []float64{2, 3, 4},
		mat.NewDense(2, 3, nil),
	)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestChannelIDsCopy(t *testing.T) {
	r := testMatrix(t, identity3())
	ids := r.ChannelIDs()
	ids[0] = 42
	assert.Equal(t, []int{1, 2, 3}, r.ChannelIDs())
}
