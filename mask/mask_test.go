package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLabelGrid(t *testing.T) {
	g, err := NewLabelGrid([][]int{{0, 1}, {2, 3}})
	require.NoError(t, err)
	assert.Equal(t, 2, g.Height)
	assert.Equal(t, 2, g.Width)
	assert.Equal(t, []int{0, 1, 2, 3}, g.Labels)
	assert.Equal(t, 2, g.At(1, 0))
	require.NoError(t, g.Validate())

	_, err = NewLabelGrid([][]int{{0, 1}, {2}})
	require.ErrorIs(t, err, ErrInvalidGrid)

	empty, err := NewLabelGrid(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

func TestProbabilityGrid(t *testing.T) {
	g := NewProbabilityGrid(2, 1, 3)
	g.Set(1, 0, 2, 0.75)
	assert.Equal(t, []float64{0, 0, 0.75}, g.Plane(1))
	require.NoError(t, g.Validate())

	g.Values = g.Values[:5]
	require.ErrorIs(t, g.Validate(), ErrInvalidGrid)
}

func TestCheckPair(t *testing.T) {
	truth := MustLabelGrid([][]int{{0, 1}})
	scores := NewProbabilityGrid(2, 1, 2)
	require.NoError(t, CheckPair(truth, scores))

	wide := NewProbabilityGrid(2, 2, 2)
	require.ErrorIs(t, CheckPair(truth, wide), ErrShapeMismatch)

	bad := MustLabelGrid([][]int{{0, 2}})
	require.ErrorIs(t, CheckPair(bad, scores), ErrLabelOutOfRange)

	neg := MustLabelGrid([][]int{{-1, 0}})
	require.ErrorIs(t, CheckPair(neg, scores), ErrLabelOutOfRange)
}
