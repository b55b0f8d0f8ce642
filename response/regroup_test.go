package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegroupChannels(t *testing.T) {
	r := testMatrix(t, identity3())

	out, err := r.RegroupChannels([]int{1, 0, 1})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Channels())
	assert.Equal(t, 3, out.Bins())
	assert.Equal(t, []int{1, 3}, out.ChannelIDs())

	// Columns 0 and 1 merge; the identity rows sum accordingly.
	folded, err := out.Fold([]float64{1, 1, 1})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 1}, folded, 1e-12)

	// Merged channel bounds span the whole group.
	edges, err := out.ChannelEdges()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 4}, edges)

	// The receiver is unchanged.
	assert.Equal(t, 3, r.Channels())
}

func TestRegroupChannelsFlagMismatch(t *testing.T) {
	r := testMatrix(t, identity3())
	_, err := r.RegroupChannels([]int{1, 0})
	require.ErrorIs(t, err, ErrShapeMismatch)
}
