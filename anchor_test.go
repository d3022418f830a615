package paintbynumbers

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchorPoint_Center(t *testing.T) {
	g := NewLabelGrid(3, 3)
	regions, err := FindRegions(g)
	require.NoError(t, err)
	assert.Equal(t, image.Point{X: 1, Y: 1}, AnchorPoint(g, regions[0]))
}

func TestAnchorPoint_FirstMaximumWins(t *testing.T) {
	// scores along the row: 4, 6, 6, 4
	g := mustGrid(t, [][]int{{5, 5, 5, 5}})
	regions, err := FindRegions(g)
	require.NoError(t, err)
	assert.Equal(t, image.Point{X: 1, Y: 0}, AnchorPoint(g, regions[0]))
}

func TestAnchorPoint_RunsStopAtOtherLabels(t *testing.T) {
	g := mustGrid(t, [][]int{
		{1, 1, 1, 1, 1},
		{1, 0, 0, 0, 1},
		{1, 0, 0, 0, 1},
		{1, 0, 0, 0, 1},
		{1, 1, 1, 1, 1},
	})
	regions, err := FindRegions(g)
	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Equal(t, image.Point{X: 2, Y: 2}, AnchorPoint(g, regions[1]))
	assert.Equal(t, 1, runLength(g, 2, 2, 1, 0))
	assert.Equal(t, 0, runLength(g, 1, 1, -1, 0))
}

func TestAnchorPoint_LShape(t *testing.T) {
	g := mustGrid(t, [][]int{
		{1, 0, 0, 0},
		{1, 0, 0, 0},
		{1, 1, 1, 1},
	})
	regions, err := FindRegions(g)
	require.NoError(t, err)
	require.Len(t, regions, 2)
	// the corner has runs up 2 and right 3: (2+1)*(3+1) = 12
	assert.Equal(t, image.Point{X: 0, Y: 2}, AnchorPoint(g, regions[0]))
}

func TestFindAnchors_Interior(t *testing.T) {
	g := mustGrid(t, [][]int{
		{0, 0, 1},
		{0, 0, 1},
		{2, 2, 1},
	})
	regions, err := FindRegions(g)
	require.NoError(t, err)
	require.Len(t, regions, 3)

	anchors, err := FindAnchors(g, regions)
	require.NoError(t, err)
	require.Len(t, anchors, 3)
	for i, a := range anchors {
		assert.Equal(t, i, a.Region)
		assert.Equal(t, regions[i].Label, a.Label)
		assert.Equal(t, regions[i].Label, g.At(a.Point.X, a.Point.Y))
		assert.Contains(t, regions[i].Pixels, a.Point)
	}
}

func TestFindAnchors_RandomGridsStayInside(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		g := randomGrid(seed, 15, 12, 3)
		regions, err := FindRegions(g)
		require.NoError(t, err)
		anchors, err := FindAnchors(g, regions)
		require.NoError(t, err)
		for i, a := range anchors {
			require.Contains(t, regions[i].Pixels, a.Point)
		}
	}
}

func TestFindAnchors_Invalid(t *testing.T) {
	_, err := FindAnchors(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidGrid)
}
